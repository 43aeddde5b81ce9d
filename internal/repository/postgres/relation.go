package postgres

import (
	"context"

	"github.com/SocialApp/social-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type relationRepo struct {
	db *pgxpool.Pool
}

func newRelationRepo(db *pgxpool.Pool) Relation {
	return &relationRepo{
		db: db,
	}
}

// ON CONFLICT DO NOTHING makes re-sending an already-sent request a no-op
// instead of a duplicate or an error.
func (r *relationRepo) CreateFollowRequest(ctx context.Context, request model.FollowRequest) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO follow_requests(requester_id, target_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		request.RequesterID,
		request.TargetID,
	)
	return err
}

func (r *relationRepo) DeleteFollowRequest(ctx context.Context, request model.FollowRequest) error {
	_, err := r.db.Exec(
		ctx,
		"DELETE FROM follow_requests WHERE requester_id = $1 AND target_id = $2",
		request.RequesterID,
		request.TargetID,
	)
	return err
}

// AcceptFollowRequest clears the pending row and establishes the follow edge
// in one transaction, in that order, so "pending" and "following" are never
// both true for the pair once the transaction commits.
func (r *relationRepo) AcceptFollowRequest(ctx context.Context, request model.FollowRequest) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			"DELETE FROM follow_requests WHERE requester_id = $1 AND target_id = $2",
			request.RequesterID,
			request.TargetID,
		); err != nil {
			return err
		}

		_, err := tx.Exec(
			ctx,
			"INSERT INTO follows(follower_id, followee_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			request.RequesterID,
			request.TargetID,
		)
		return err
	})
}

func (r *relationRepo) DeleteFollow(ctx context.Context, follow model.Follow) error {
	_, err := r.db.Exec(
		ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		follow.FollowerID,
		follow.FolloweeID,
	)
	return err
}

func (r *relationRepo) FindFollowers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username
		FROM follows f
		JOIN users u ON f.follower_id = u.id
		WHERE f.followee_id = $1
		ORDER BY f.created_at
		LIMIT $2
		OFFSET $3
		`,
		id,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserPreviews(rows)
}

func (r *relationRepo) FindFollowing(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username
		FROM follows f
		JOIN users u ON f.followee_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at
		LIMIT $2
		OFFSET $3
		`,
		id,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserPreviews(rows)
}

func (r *relationRepo) FindReceivedFollowRequests(ctx context.Context, id uuid.UUID) ([]*model.UserPreview, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username
		FROM follow_requests fr
		JOIN users u ON fr.requester_id = u.id
		WHERE fr.target_id = $1
		ORDER BY fr.created_at
		`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserPreviews(rows)
}

func (r *relationRepo) FindSentFollowRequests(ctx context.Context, id uuid.UUID) ([]*model.UserPreview, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username
		FROM follow_requests fr
		JOIN users u ON fr.target_id = u.id
		WHERE fr.requester_id = $1
		ORDER BY fr.created_at
		`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserPreviews(rows)
}

func scanUserPreviews(rows pgx.Rows) ([]*model.UserPreview, error) {
	var previews []*model.UserPreview
	for rows.Next() {
		var preview model.UserPreview
		if err := rows.Scan(&preview.ID, &preview.Username); err != nil {
			return nil, err
		}

		previews = append(previews, &preview)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return previews, nil
}

package postgres

import (
	"context"
	"time"

	"github.com/SocialApp/social-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, title, description, author_id, created_at) VALUES($1, $2, $3, $4, $5)",
		post.ID,
		post.Title,
		post.Description,
		post.AuthorID,
		post.CreatedAt,
	)
	return &post, err
}

// FindTimelineForUser resolves the caller's follow graph into a feed: posts
// authored by the user or by anyone they follow, newest first. Ties on
// created_at break by id so the order is stable.
func (r *postRepo) FindTimelineForUser(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FeedPost, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT p.id, p.title, p.description, p.author_id, u.username, u.email, p.created_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.author_id = $1 OR p.author_id IN (
			SELECT f.followee_id FROM follows f WHERE f.follower_id = $1
		)
		ORDER BY p.created_at DESC, p.id
		LIMIT $2
		OFFSET $3
		`,
		userID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.FeedPost
	for rows.Next() {
		var post model.FeedPost
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Description,
			&post.AuthorID,
			&post.AuthorUsername,
			&post.AuthorEmail,
			&post.CreatedAt,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

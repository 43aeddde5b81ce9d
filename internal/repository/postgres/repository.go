package postgres

import (
	"context"

	"github.com/SocialApp/social-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*model.User, error)
	ExistsWithID(ctx context.Context, id uuid.UUID) (bool, error)
}

type Relation interface {
	CreateFollowRequest(ctx context.Context, request model.FollowRequest) error
	DeleteFollowRequest(ctx context.Context, request model.FollowRequest) error
	AcceptFollowRequest(ctx context.Context, request model.FollowRequest) error
	DeleteFollow(ctx context.Context, follow model.Follow) error
	FindFollowers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error)
	FindFollowing(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error)
	FindReceivedFollowRequests(ctx context.Context, id uuid.UUID) ([]*model.UserPreview, error)
	FindSentFollowRequests(ctx context.Context, id uuid.UUID) ([]*model.UserPreview, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindTimelineForUser(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FeedPost, error)
}

type PostgresRepository struct {
	User
	Relation
	Post
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User: newUserRepo(db),
		Relation: newRelationRepo(db),
		Post: newPostRepo(db),
	}
}

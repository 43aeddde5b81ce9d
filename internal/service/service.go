package service

import (
	"context"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/SocialApp/social-api/internal/model"
	"github.com/SocialApp/social-api/internal/rabbitmq"
	"github.com/SocialApp/social-api/internal/repository"
	"github.com/SocialApp/social-api/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Auth interface {
	SignUp(ctx context.Context, createUserDto dto.CreateUserDto) (*dto.GetUserDto, error)
	SignIn(ctx context.Context, signInDto dto.SignInDto) (*dto.GetUserDto, *utils.JWTPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error)
	Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileDto, error)
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*dto.GetUserDto, error)
}

type Relation interface {
	SendFollowRequest(ctx context.Context, targetID uuid.UUID, actorID uuid.UUID) error
	AcceptFollowRequest(ctx context.Context, requesterID uuid.UUID, acceptorID uuid.UUID) error
	CancelFollowRequest(ctx context.Context, targetID uuid.UUID, actorID uuid.UUID) error
	Unfollow(ctx context.Context, followeeID uuid.UUID, followerID uuid.UUID) error
	FindFollowers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error)
	FindFollowing(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error)
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, createPostDto dto.CreatePostDto) (*model.Post, error)
	GetTimeline(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FeedPost, error)
}

type Service struct {
	Auth
	User
	Relation
	Post
}

func New(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) *Service {
	return &Service{
		Auth: newAuthService(logger, repo),
		User: newUserService(logger, repo),
		Relation: newRelationService(logger, repo, mq),
		Post: newPostService(logger, repo, mq),
	}
}

package service

import (
	"context"
	"time"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/SocialApp/social-api/internal/model"
	"github.com/SocialApp/social-api/internal/repository"
	"github.com/SocialApp/social-api/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// User records are written once at signup, so the cache only has to bound
// how long a deleted account keeps resolving.
const userCacheTTL = time.Minute * 10

type userService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) User {
	return &userService{
		logger: logger,
		repo: repo,
	}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	userCache, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(id.String()))
	if err == nil && userCache != nil {
		return userCache, nil
	}

	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.UserKey(id.String()), user, userCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

func (s *userService) FindAll(ctx context.Context, limit int, offset int) ([]*dto.GetUserDto, error) {
	users, err := s.repo.Postgres.User.FindAll(ctx, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find users in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	dtos := make([]*dto.GetUserDto, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, dto.GetUserDtoFromUser(*user))
	}

	return dtos, nil
}

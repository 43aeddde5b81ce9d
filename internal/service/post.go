package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/SocialApp/social-api/internal/model"
	"github.com/SocialApp/social-api/internal/rabbitmq"
	"github.com/SocialApp/social-api/internal/repository"
	"github.com/SocialApp/social-api/internal/repository/postgres"
	"github.com/SocialApp/social-api/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	timelineCacheTTL = time.Minute

	// The cached first page always holds this many posts regardless of the
	// request's limit, so a small-limit read cannot truncate what a later,
	// larger read is served. The window bounds are part of the cache key.
	timelineCacheWindow = postgres.MAX_LIMIT
)

func timelineCacheKey(userID uuid.UUID) string {
	return redisrepo.TimelineKey(userID.String(), timelineCacheWindow, 0)
}

type postService struct {
	logger *zap.Logger
	repo *repository.Repository
	rabbitmq rabbitmq.Publisher
}

func newPostService(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) Post {
	return &postService{
		logger: logger,
		repo: repo,
		rabbitmq: mq,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, createPostDto dto.CreatePostDto) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.Create(ctx, model.Post{
		Title: createPostDto.Title,
		Description: createPostDto.Description,
		AuthorID: authorID,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post of user(%s) in postgres: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Del(ctx, timelineCacheKey(authorID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate timeline(%s) in redis: %s", authorID.String(), err.Error())
	}

	queueData, err := json.Marshal(post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
		return post, nil
	}
	if err := s.rabbitmq.Publish(rabbitmq.NEW_POSTS_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.NEW_POSTS_QUEUE, err.Error())
	}

	return post, nil
}

// GetTimeline resolves the user's follow graph into a feed, newest first.
// A user with no posts and no followed authors gets an empty feed, not an
// error. Followers' cached copies go stale for at most timelineCacheTTL.
func (s *postService) GetTimeline(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FeedPost, error) {
	exists, err := s.repo.Postgres.User.ExistsWithID(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check user(%s) existence in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	// Only the first page is cached; deeper pages always hit postgres.
	if offset == 0 && limit <= timelineCacheWindow {
		window, err := redisrepo.GetMany[model.FeedPost](s.repo.Redis.Default, ctx, timelineCacheKey(userID))
		if err == nil {
			return clampTimeline(window, limit), nil
		}
		if err != redis.Nil {
			s.logger.Sugar().Errorf("failed to get timeline(%s) from redis: %s", userID.String(), err.Error())
		}

		window, err = s.repo.Postgres.Post.FindTimelineForUser(ctx, userID, timelineCacheWindow, 0)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find timeline of user(%s) in postgres: %s", userID.String(), err.Error())
			return nil, ErrInternal
		}
		if window == nil {
			window = []*model.FeedPost{}
		}

		if err := s.repo.Redis.SetJSON(ctx, timelineCacheKey(userID), window, timelineCacheTTL); err != nil {
			s.logger.Sugar().Errorf("failed to set timeline(%s) in redis: %s", userID.String(), err.Error())
		}

		return clampTimeline(window, limit), nil
	}

	timeline, err := s.repo.Postgres.Post.FindTimelineForUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find timeline of user(%s) in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}
	if timeline == nil {
		timeline = []*model.FeedPost{}
	}

	return timeline, nil
}

func clampTimeline(timeline []*model.FeedPost, limit int) []*model.FeedPost {
	if timeline == nil {
		return []*model.FeedPost{}
	}
	if limit < len(timeline) {
		return timeline[:limit]
	}
	return timeline
}

package service

import (
	"context"
	"encoding/json"

	"github.com/SocialApp/social-api/internal/model"
	"github.com/SocialApp/social-api/internal/rabbitmq"
	"github.com/SocialApp/social-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// relationService owns the per-pair state machine:
// none -> pending (SendFollowRequest) -> following (AcceptFollowRequest),
// pending -> none (CancelFollowRequest), following -> none (Unfollow).
// Every mutation is idempotent, so concurrent operations on the same ordered
// pair converge instead of corrupting state, and a caller-driven retry after
// any failure is always safe.
type relationService struct {
	logger *zap.Logger
	repo *repository.Repository
	rabbitmq rabbitmq.Publisher
}

func newRelationService(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) Relation {
	return &relationService{
		logger: logger,
		repo: repo,
		rabbitmq: mq,
	}
}

type followEvent struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
}

func (s *relationService) SendFollowRequest(ctx context.Context, targetID uuid.UUID, actorID uuid.UUID) error {
	if targetID == actorID {
		return ErrCannotFollowSelf
	}

	exists, err := s.repo.Postgres.User.ExistsWithID(ctx, targetID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check user(%s) existence in postgres: %s", targetID.String(), err.Error())
		return ErrInternal
	}
	if !exists {
		return ErrUserNotFound
	}

	if err := s.repo.Postgres.Relation.CreateFollowRequest(ctx, model.FollowRequest{
		RequesterID: actorID,
		TargetID: targetID,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to create follow request(%s -> %s) in postgres: %s", actorID.String(), targetID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

// AcceptFollowRequest's acceptor must be the authenticated caller; the handler
// layer resolves it from the access token, never from the request body.
func (s *relationService) AcceptFollowRequest(ctx context.Context, requesterID uuid.UUID, acceptorID uuid.UUID) error {
	if requesterID == acceptorID {
		return ErrCannotFollowSelf
	}

	// The requester id comes from the URL path, so an unknown id must map to
	// a not-found, not to the follows FK violation the insert would hit.
	exists, err := s.repo.Postgres.User.ExistsWithID(ctx, requesterID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check user(%s) existence in postgres: %s", requesterID.String(), err.Error())
		return ErrInternal
	}
	if !exists {
		return ErrUserNotFound
	}

	if err := s.repo.Postgres.Relation.AcceptFollowRequest(ctx, model.FollowRequest{
		RequesterID: requesterID,
		TargetID: acceptorID,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to accept follow request(%s -> %s) in postgres: %s", requesterID.String(), acceptorID.String(), err.Error())
		return ErrInternal
	}

	// The requester's follow graph changed, so their cached timeline is stale.
	if err := s.repo.Redis.Del(ctx, timelineCacheKey(requesterID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate timeline(%s) in redis: %s", requesterID.String(), err.Error())
	}

	s.publishFollowEvent(followEvent{FollowerID: requesterID, FolloweeID: acceptorID})

	return nil
}

func (s *relationService) CancelFollowRequest(ctx context.Context, targetID uuid.UUID, actorID uuid.UUID) error {
	if err := s.repo.Postgres.Relation.DeleteFollowRequest(ctx, model.FollowRequest{
		RequesterID: actorID,
		TargetID: targetID,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow request(%s -> %s) in postgres: %s", actorID.String(), targetID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *relationService) Unfollow(ctx context.Context, followeeID uuid.UUID, followerID uuid.UUID) error {
	if err := s.repo.Postgres.Relation.DeleteFollow(ctx, model.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow(%s -> %s) in postgres: %s", followerID.String(), followeeID.String(), err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Del(ctx, timelineCacheKey(followerID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate timeline(%s) in redis: %s", followerID.String(), err.Error())
	}

	return nil
}

func (s *relationService) FindFollowers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error) {
	followers, err := s.repo.Postgres.Relation.FindFollowers(ctx, id, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followers of user(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return followers, nil
}

func (s *relationService) FindFollowing(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error) {
	following, err := s.repo.Postgres.Relation.FindFollowing(ctx, id, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find following of user(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return following, nil
}

// Event publishing is best-effort; a broker outage must not fail the follow.
func (s *relationService) publishFollowEvent(event followEvent) {
	queueData, err := json.Marshal(&event)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
		return
	}

	if err := s.rabbitmq.Publish(rabbitmq.FOLLOWS_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.FOLLOWS_QUEUE, err.Error())
	}
}

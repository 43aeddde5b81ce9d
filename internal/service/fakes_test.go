package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/SocialApp/social-api/internal/model"
	"github.com/SocialApp/social-api/internal/repository"
	"github.com/SocialApp/social-api/internal/repository/postgres"
	"github.com/SocialApp/social-api/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type pair struct {
	from uuid.UUID
	to   uuid.UUID
}

// memStore implements the postgres per-entity interfaces over maps so the
// relationship state machine and the timeline query can be exercised without
// a database.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*model.User
	follows  map[pair]struct{} // follower -> followee
	requests map[pair]struct{} // requester -> target
	posts    []*model.Post
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uuid.UUID]*model.User),
		follows: make(map[pair]struct{}),
		requests: make(map[pair]struct{}),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) Create(ctx context.Context, user model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = m.tick()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = &user
	return &user, nil
}

func (m *memStore) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *memStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) FindAll(ctx context.Context, limit int, offset int) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []*model.User
	for _, user := range m.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return paginate(users, limit, offset), nil
}

func (m *memStore) ExistsWithID(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.users[id]
	return ok, nil
}

func (m *memStore) CreateFollowRequest(ctx context.Context, request model.FollowRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests[pair{from: request.RequesterID, to: request.TargetID}] = struct{}{}
	return nil
}

func (m *memStore) DeleteFollowRequest(ctx context.Context, request model.FollowRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.requests, pair{from: request.RequesterID, to: request.TargetID})
	return nil
}

func (m *memStore) AcceptFollowRequest(ctx context.Context, request model.FollowRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.requests, pair{from: request.RequesterID, to: request.TargetID})
	m.follows[pair{from: request.RequesterID, to: request.TargetID}] = struct{}{}
	return nil
}

func (m *memStore) DeleteFollow(ctx context.Context, follow model.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.follows, pair{from: follow.FollowerID, to: follow.FolloweeID})
	return nil
}

func (m *memStore) FindFollowers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var previews []*model.UserPreview
	for edge := range m.follows {
		if edge.to == id {
			previews = append(previews, m.preview(edge.from))
		}
	}
	return paginate(previews, limit, offset), nil
}

func (m *memStore) FindFollowing(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.UserPreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var previews []*model.UserPreview
	for edge := range m.follows {
		if edge.from == id {
			previews = append(previews, m.preview(edge.to))
		}
	}
	return paginate(previews, limit, offset), nil
}

func (m *memStore) FindReceivedFollowRequests(ctx context.Context, id uuid.UUID) ([]*model.UserPreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var previews []*model.UserPreview
	for edge := range m.requests {
		if edge.to == id {
			previews = append(previews, m.preview(edge.from))
		}
	}
	return previews, nil
}

func (m *memStore) FindSentFollowRequests(ctx context.Context, id uuid.UUID) ([]*model.UserPreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var previews []*model.UserPreview
	for edge := range m.requests {
		if edge.from == id {
			previews = append(previews, m.preview(edge.to))
		}
	}
	return previews, nil
}

func (m *memStore) preview(id uuid.UUID) *model.UserPreview {
	preview := &model.UserPreview{ID: id}
	if user, ok := m.users[id]; ok {
		preview.Username = user.Username
	}
	return preview
}

func (m *memStore) CreatePost(ctx context.Context, post model.Post) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post.ID = uuid.New()
	post.CreatedAt = m.tick()
	m.posts = append(m.posts, &post)
	return &post, nil
}

func (m *memStore) FindTimelineForUser(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FeedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	authors := map[uuid.UUID]struct{}{userID: {}}
	for edge := range m.follows {
		if edge.from == userID {
			authors[edge.to] = struct{}{}
		}
	}

	var feed []*model.FeedPost
	for _, post := range m.posts {
		if _, ok := authors[post.AuthorID]; !ok {
			continue
		}
		item := &model.FeedPost{
			ID: post.ID,
			Title: post.Title,
			Description: post.Description,
			AuthorID: post.AuthorID,
			CreatedAt: post.CreatedAt,
		}
		if author, ok := m.users[post.AuthorID]; ok {
			item.AuthorUsername = author.Username
			item.AuthorEmail = author.Email
		}
		feed = append(feed, item)
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].CreatedAt.After(feed[j].CreatedAt) })
	return paginate(feed, limit, offset), nil
}

func paginate[T any](items []T, limit int, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// postStore adapts memStore to the postgres.Post interface, whose Create
// collides with the User one.
type postStore struct {
	*memStore
}

func (p postStore) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	return p.memStore.CreatePost(ctx, post)
}

type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (r *fakeRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = string(valueJSON)
	return nil
}

func (r *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (r *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for _, key := range keys {
		if _, ok := r.values[key]; ok {
			delete(r.values, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

type fakePublisher struct {
	mu        sync.Mutex
	published map[string][][]byte
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(map[string][][]byte)}
}

func (p *fakePublisher) Publish(queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published[queue] = append(p.published[queue], body)
	return nil
}

type testEnv struct {
	store *memStore
	redis *fakeRedis
	mq    *fakePublisher
	svc   *Service
}

func newTestEnv() *testEnv {
	store := newMemStore()
	rdb := newFakeRedis()
	mq := newFakePublisher()

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User: store,
			Relation: store,
			Post: postStore{store},
		},
		Redis: &redisrepo.RedisRepository{Default: rdb},
	}

	return &testEnv{
		store: store,
		redis: rdb,
		mq: mq,
		svc: New(zap.NewNop(), repo, mq),
	}
}

func (e *testEnv) mustCreateUser(username string, email string) *model.User {
	user, err := e.store.Create(context.Background(), model.User{
		Email: email,
		Username: username,
		PasswordHash: "x",
	})
	if err != nil {
		panic(err)
	}
	return user
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestFindByIDCachesUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.mustCreateUser("alice", "alice@example.com")

	found, err := env.svc.User.FindByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Username != "alice" {
		t.Errorf("username = %s, want alice", found.Username)
	}
	if _, ok := env.redis.values["user:"+alice.ID.String()]; !ok {
		t.Fatal("user was not cached")
	}

	// Served from the cache even after the row vanished.
	env.store.mu.Lock()
	delete(env.store.users, alice.ID)
	env.store.mu.Unlock()

	cached, err := env.svc.User.FindByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if cached.ID != alice.ID {
		t.Errorf("cached id = %s, want %s", cached.ID, alice.ID)
	}
}

func TestFindByIDUnknown(t *testing.T) {
	env := newTestEnv()

	if _, err := env.svc.User.FindByID(context.Background(), uuid.New()); err != ErrUserNotFound {
		t.Fatalf("FindByID unknown = %v, want ErrUserNotFound", err)
	}
}

func TestFindAll(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.mustCreateUser("alice", "alice@example.com")
	env.mustCreateUser("bob", "bob@example.com")

	users, err := env.svc.User.FindAll(ctx, 50, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}
	if users[0].Username != "alice" || users[1].Username != "bob" {
		t.Errorf("order = [%s, %s], want [alice, bob]", users[0].Username, users[1].Username)
	}
}

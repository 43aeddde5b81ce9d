package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Relationship edges are stored once per ordered pair instead of being
// duplicated on both user records, so a single statement records (or clears)
// both sides of a follow or a pending request. The CHECK constraints reject
// self-edges at the store as well as at the service.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		username VARCHAR(20) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY,
		title VARCHAR(120) NOT NULL,
		description TEXT NOT NULL,
		author_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS follows (
		follower_id UUID NOT NULL REFERENCES users(id),
		followee_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (follower_id, followee_id),
		CHECK (follower_id <> followee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS follow_requests (
		requester_id UUID NOT NULL REFERENCES users(id),
		target_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (requester_id, target_id),
		CHECK (requester_id <> target_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_author_created ON posts(author_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_follows_followee ON follows(followee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_follow_requests_target ON follow_requests(target_id)`,
}

func Init(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

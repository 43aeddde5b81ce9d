package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is immutable after creation. The author is a weak reference by id; the
// post outlives any relationship the author is part of.
type Post struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    uuid.UUID `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedPost is a post with its author reference resolved for timeline reads.
type FeedPost struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	AuthorEmail    string    `json:"author_email"`
	CreatedAt      time.Time `json:"created_at"`
}

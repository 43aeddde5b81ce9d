package dto

import (
	"time"

	"github.com/SocialApp/social-api/internal/model"
	"github.com/google/uuid"
)

type CreatePostDto struct {
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description" binding:"required"`
}

type PostAuthorDto struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type TimelinePostDto struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Author      PostAuthorDto `json:"author"`
	CreatedAt   time.Time     `json:"created_at"`
}

func TimelinePostDtoFromFeedPost(post *model.FeedPost) *TimelinePostDto {
	return &TimelinePostDto{
		ID: post.ID,
		Title: post.Title,
		Description: post.Description,
		Author: PostAuthorDto{
			ID: post.AuthorID,
			Username: post.AuthorUsername,
			Email: post.AuthorEmail,
		},
		CreatedAt: post.CreatedAt,
	}
}

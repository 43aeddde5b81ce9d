package dto

import (
	"time"

	"github.com/SocialApp/social-api/internal/model"
	"github.com/google/uuid"
)

type CreateUserDto struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=20"`
	Password string `json:"password" binding:"required,min=8,max=48"`
}

type SignInDto struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=48"`
}

// GetUserDto is a user record with the credential stripped.
type GetUserDto struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func GetUserDtoFromUser(user model.User) *GetUserDto {
	return &GetUserDto{
		ID: user.ID,
		Email: user.Email,
		Username: user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ProfileDto is GetUserDto plus the pending requests on both sides, each
// resolved to {id, username}.
type ProfileDto struct {
	GetUserDto
	ReceivedFollowRequests []*model.UserPreview `json:"received_follow_requests"`
	SentFollowRequests     []*model.UserPreview `json:"sent_follow_requests"`
}

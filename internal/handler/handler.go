package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SocialApp/social-api/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "DELETE"},
		AllowCredentials: true,
	}))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.authSignUp)
		auth.POST("/login", h.authSignIn)
		auth.POST("/refresh", h.authRefresh)
		auth.GET("/profile", h.authMiddleware, h.authProfile)
	}

	users := r.Group("/users")
	{
		users.Use(h.authMiddleware)

		users.GET("", h.usersList)
		users.GET("/:id", h.userIDMiddleware, h.usersGetByID)
		users.POST("/:id/request-follow", h.userIDMiddleware, h.usersRequestFollow)
		users.POST("/:id/accept-follow", h.userIDMiddleware, h.usersAcceptFollow)
		users.DELETE("/:id/cancel-follow", h.userIDMiddleware, h.usersCancelFollow)
		users.DELETE("/:id/unfollow", h.userIDMiddleware, h.usersUnfollow)
		users.GET("/:id/followers", h.userIDMiddleware, h.usersGetFollowers)
		users.GET("/:id/following", h.userIDMiddleware, h.usersGetFollowing)
	}

	posts := r.Group("/posts")
	{
		posts.Use(h.authMiddleware)

		posts.POST("", h.postsCreate)
		posts.GET("/timeline", h.postsTimeline)
	}

	return r
}

// getUserID returns the authenticated caller's id placed into the context by
// authMiddleware. The acting identity is always threaded from here, never
// taken from a request body.
func (h *Handler) getUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get("userID")

	userID, ok := id.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return userID
}

func getPagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}

func errStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrCannotFollowSelf):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailOrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

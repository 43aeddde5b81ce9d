package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/SocialApp/social-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// authMiddleware verifies the Bearer access token and stores the caller's id
// in the context. It does not resolve the full user record; handlers that
// need it fetch it themselves so a vanished user surfaces as NotFound there.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	accessToken := strings.TrimPrefix(header, "Bearer ")
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	idString, ok := claims["id"].(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	userID, err := uuid.Parse(idString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("userID", userID)

	c.Next()
}

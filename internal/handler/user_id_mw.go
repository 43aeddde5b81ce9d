package handler

import (
	"net/http"
	"strings"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) userIDMiddleware(c *gin.Context) {
	idString := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(idString)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		c.Abort()
		return
	}

	c.Set("targetID", id)

	c.Next()
}

func (h *Handler) getTargetID(c *gin.Context) uuid.UUID {
	id, _ := c.Get("targetID")

	targetID, ok := id.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return targetID
}

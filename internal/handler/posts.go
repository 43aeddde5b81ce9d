package handler

import (
	"net/http"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsCreate(c *gin.Context) {
	var input dto.CreatePostDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), h.getUserID(c), input)
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) postsTimeline(c *gin.Context) {
	limit, offset := getPagination(c)

	timeline, err := h.services.Post.GetTimeline(c.Request.Context(), h.getUserID(c), limit, offset)
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	dtos := make([]*dto.TimelinePostDto, 0, len(timeline))
	for _, post := range timeline {
		dtos = append(dtos, dto.TimelinePostDtoFromFeedPost(post))
	}

	c.JSON(http.StatusOK, dtos)
}

package handler

import (
	"net/http"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) usersList(c *gin.Context) {
	limit, offset := getPagination(c)

	users, err := h.services.User.FindAll(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) usersGetByID(c *gin.Context) {
	user, err := h.services.User.FindByID(c.Request.Context(), h.getTargetID(c))
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.GetUserDtoFromUser(*user))
}

func (h *Handler) usersRequestFollow(c *gin.Context) {
	if err := h.services.Relation.SendFollowRequest(c.Request.Context(), h.getTargetID(c), h.getUserID(c)); err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Follow request sent."})
}

// The path id is the requester; the acceptor is always the caller resolved
// from the access token, so nobody can accept a request on someone else's
// behalf.
func (h *Handler) usersAcceptFollow(c *gin.Context) {
	if err := h.services.Relation.AcceptFollowRequest(c.Request.Context(), h.getTargetID(c), h.getUserID(c)); err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Follow request accepted."})
}

func (h *Handler) usersCancelFollow(c *gin.Context) {
	if err := h.services.Relation.CancelFollowRequest(c.Request.Context(), h.getTargetID(c), h.getUserID(c)); err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Follow request canceled."})
}

func (h *Handler) usersUnfollow(c *gin.Context) {
	if err := h.services.Relation.Unfollow(c.Request.Context(), h.getTargetID(c), h.getUserID(c)); err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully unfollowed user."})
}

func (h *Handler) usersGetFollowers(c *gin.Context) {
	limit, offset := getPagination(c)

	followers, err := h.services.Relation.FindFollowers(c.Request.Context(), h.getTargetID(c), limit, offset)
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, followers)
}

func (h *Handler) usersGetFollowing(c *gin.Context) {
	limit, offset := getPagination(c)

	following, err := h.services.Relation.FindFollowing(c.Request.Context(), h.getTargetID(c), limit, offset)
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, following)
}

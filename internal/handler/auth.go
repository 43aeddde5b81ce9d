package handler

import (
	"net/http"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.CreateUserDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, err := h.services.Auth.SignUp(c.Request.Context(), input)
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) authSignIn(c *gin.Context) {
	var input dto.SignInDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, tokenPair, err := h.services.Auth.SignIn(c.Request.Context(), input)
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", "localhost", true, true)

	c.JSON(http.StatusOK, dto.AuthResponse{Ok: true, AccessToken: tokenPair.AccessToken, User: *user})
}

func (h *Handler) authRefresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
		return
	}

	tokenPair, err := h.services.Auth.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", "localhost", true, true)

	c.JSON(http.StatusOK, dto.RefreshResponse{Ok: true, AccessToken: tokenPair.AccessToken})
}

func (h *Handler) authProfile(c *gin.Context) {
	profile, err := h.services.Auth.Profile(c.Request.Context(), h.getUserID(c))
	if err != nil {
		c.JSON(errStatusCode(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, profile)
}

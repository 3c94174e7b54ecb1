package auth

import (
	"net/http"

	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Refresh(c *gin.Context) {
	var request RefreshRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Refresh(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	var request ChangePasswordRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.ChangePassword(c.Request.Context(), userID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

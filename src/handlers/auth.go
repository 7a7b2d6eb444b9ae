package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/services"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CredentialRequest is the body of /registration and /login
type CredentialRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r CredentialRequest) credential() models.Credential {
	return models.Credential{Email: r.Email, Password: r.Password}
}

// HandleRegistration handles POST /registration
func (h *AuthHandler) HandleRegistration(c *gin.Context) {
	var req CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperror.MalformedBody(err))
		return
	}

	msg, err := h.authService.Register(c.Request.Context(), req.credential())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.String(http.StatusOK, msg)
}

// HandleLogin handles POST /login and replies with the token as a JSON string
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var req CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperror.MalformedBody(err))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.credential())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// abortWithError hands err to the error rendering middleware
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

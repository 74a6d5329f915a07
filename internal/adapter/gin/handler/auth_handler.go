package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webucket-api/internal/usecase/auth"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	uc  auth.Usecase
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(uc auth.Usecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Token handles POST /token. Credentials arrive form-encoded, matching the
// OAuth2 password flow the web client speaks.
func (h *AuthHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CurrentUser handles GET /api/v1/auth/current_user.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, u)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webucket-api/internal/adapter/gin/middleware"
	"webucket-api/internal/usecase/user"
	pkgerrors "webucket-api/pkg/errors"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// handleError converts usecase errors to HTTP responses using the status
// carried by the typed errors in pkg/errors.
func handleError(c *gin.Context, log *zap.Logger, err error) {
	var statuser pkgerrors.HTTPStatuser
	if errors.As(err, &statuser) {
		status := statuser.HTTPStatus()
		code := "error"
		message := err.Error()
		switch status {
		case http.StatusNotFound:
			code = "not_found"
		case http.StatusConflict:
			code = "already_exists"
		case http.StatusBadRequest:
			code = "validation_error"
		case http.StatusUnauthorized:
			code = "unauthorized"
			c.Header("WWW-Authenticate", "Bearer")
		case http.StatusInternalServerError:
			code = "internal_error"
			message = "An internal error occurred"
		}
		c.JSON(status, ErrorResponse{Error: code, Message: message})
		return
	}

	log.Error("unclassified handler error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// mustCurrentUser fetches the authenticated user placed on the context by
// the auth middleware, aborting with 401 when it is missing.
func mustCurrentUser(c *gin.Context) (*user.Response, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		})
		return nil, false
	}
	return u, true
}

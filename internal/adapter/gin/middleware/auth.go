package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webucket-api/internal/usecase/auth"
	"webucket-api/internal/usecase/user"
	"webucket-api/pkg/logger"
)

// CurrentUserKey is the gin context key under which the authenticated user
// is stored by RequireAuth.
const CurrentUserKey = "current_user"

// RequireAuth returns a middleware that validates the bearer token and
// stores the resolved user on the context. Requests without a valid token
// are rejected with 401.
func RequireAuth(authUC auth.Usecase, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			unauthorized(c)
			return
		}

		token := strings.TrimSpace(header[len("bearer "):])
		if token == "" {
			unauthorized(c)
			return
		}

		u, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("authentication failed", zap.Error(err))
			unauthorized(c)
			return
		}

		c.Set(CurrentUserKey, u)

		// Tag the request context so downstream logs carry the username
		ctx := context.WithValue(c.Request.Context(), logger.UsernameKey, u.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*user.Response, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.Response)
	return u, ok
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": "Could not validate credentials",
	})
}

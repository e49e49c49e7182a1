package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chempaper-backend/internal/shared/server/respond"
)

const sessionIDKey = "sessionId"

// TokenVerifier reports whether a session token is valid.
type TokenVerifier interface {
	Verify(token string) bool
}

// SessionAuth requires a valid X-Session-Token on all routes except the
// health check and the login endpoint.
func SessionAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api/v1/health" || path == "/api/v1/auth/login" {
			c.Next()
			return
		}

		token := strings.TrimSpace(c.GetHeader("X-Session-Token"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing session token", nil)
			return
		}
		if !verifier.Verify(token) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired session token", nil)
			return
		}

		c.Set(sessionIDKey, token)
		c.Next()
	}
}

// SessionFromContext returns the session token stored by SessionAuth.
func SessionFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

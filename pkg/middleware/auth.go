package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

// ClaimsKey is the gin context key holding verified token claims.
const ClaimsKey = "claims"

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			response.AbortError(c, http.StatusUnauthorized, "Missing Authorization header", "UNAUTHORIZED")
			return
		}
		scheme, token, ok := strings.Cut(auth, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "Invalid Authorization header", "UNAUTHORIZED")
			return
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", "UNAUTHORIZED")
			return
		}

		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Failed to parse token claims", "UNAUTHORIZED")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

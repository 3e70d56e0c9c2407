package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/response"
	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/token"
)

// TokenChecker reports whether an issued token row still exists. A revoked
// (logged out) token fails this check even if its signature is valid.
type TokenChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

func resolveUser(c *gin.Context, tokens *token.Service, checker TokenChecker) (int64, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		return 0, false
	}

	tokenStr := h
	for _, prefix := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(h, prefix) {
			tokenStr = strings.TrimSpace(strings.TrimPrefix(h, prefix))
			break
		}
	}
	if tokenStr == "" {
		return 0, false
	}

	claims, err := tokens.Validate(tokenStr)
	if err != nil {
		return 0, false
	}

	alive, err := checker.Exists(c.Request.Context(), claims.ID)
	if err != nil || !alive {
		return 0, false
	}
	return claims.UserID, true
}

// RequireAuth rejects requests without a valid live token.
func RequireAuth(tokens *token.Service, checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, tokens, checker)
		if !ok {
			response.Detail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is presented and
// leaves the request anonymous otherwise.
func OptionalAuth(tokens *token.Service, checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolveUser(c, tokens, checker); ok {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

// ViewerID returns the authenticated user id, or nil for anonymous callers.
func ViewerID(c *gin.Context) *int64 {
	if v, exists := c.Get("user_id"); exists {
		id := v.(int64)
		return &id
	}
	return nil
}

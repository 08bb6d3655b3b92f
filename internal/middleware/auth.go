package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fintrack/internal/logger"
	"fintrack/internal/token"
)

// ContextUserID is the Gin context key under which the authenticated user's
// ID is stored.
const ContextUserID = "userID"

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. Returns false when the header is absent or malformed.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Auth returns a Gin middleware that verifies the bearer access token and sets
// the user ID in the context. Verification is stateless; the token manager is
// passed in explicitly, never read from ambient state.
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			unauthorized(c)
			return
		}

		userID, err := tokens.ParseAccessToken(tokenString)
		if err != nil {
			// Expired and malformed tokens get the same response but are
			// logged differently.
			if errors.Is(err, token.ErrTokenExpired) {
				logger.Get().Debugw("expired access token", "path", c.Request.URL.Path)
			} else {
				logger.Get().Warnw("invalid access token", "path", c.Request.URL.Path)
			}
			unauthorized(c)
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		},
	})
}

package middleware

import (
	"errors"
	"strings"

	"notesapi/services"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "userID"
	UsernameKey = "username"
)

type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores the caller's
// identity in the gin context. Handlers read identity only from there.
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Access token required")
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			utils.TrackAuthAttempt("failure", "token")
			if errors.Is(err, services.ErrTokenExpired) {
				utils.Unauthorized(c, "Token expired")
				return
			}
			utils.Unauthorized(c, "Invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// Identity returns what AuthMiddleware stored. ok is false on routes that
// are not behind it.
func Identity(c *gin.Context) (userID, username string, ok bool) {
	userID = c.GetString(UserIDKey)
	username = c.GetString(UsernameKey)
	return userID, username, userID != ""
}

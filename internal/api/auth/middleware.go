package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key holding the logged in username.
const UserKey = "user"

// SessionSource reports the current user.
type SessionSource interface {
	Session() (string, bool)
}

// RequireSession aborts with 401 unless a user is logged in.
func RequireSession(src SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := src.Session()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "not logged in",
			})
			return
		}
		c.Set(UserKey, user)
		c.Next()
	}
}

// User returns the username set by RequireSession.
func User(c *gin.Context) string {
	return c.GetString(UserKey)
}

package middleware

import (
	"net/http"

	"backend/internal/app/session"

	"github.com/gin-gonic/gin"
)

const userIDKey = "auth.user_id"

// SessionAuth resolves the opaque session key into a user and aborts with
// 401 when it cannot. The key is taken from the X-Session-Key header with a
// query-param fallback for websocket upgrades.
func SessionAuth(sessionSvc session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey := c.GetHeader("X-Session-Key")
		if sessionKey == "" {
			sessionKey = c.Query("session_key")
		}
		if sessionKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session key is required"})
			return
		}

		usr, err := sessionSvc.GetUserBySessionKey(sessionKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
			return
		}

		c.Set(userIDKey, usr.ID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by SessionAuth. Zero means
// the middleware did not run, which is a routing bug.
func UserID(c *gin.Context) uint64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(uint64)
	return userID
}

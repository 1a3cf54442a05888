package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions" // Cookie sessions
	"github.com/gin-gonic/gin"
)

// Session value keys shared with the login/logout handlers
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
)

// SetSessionUser records the authenticated user in the cookie session
func SetSessionUser(c *gin.Context, userID uint, username string) error {
	s := sessions.Default(c)
	s.Set(SessionUserID, userID)
	s.Set(SessionUsername, username)
	return s.Save()
}

// ClearSession drops the cookie session
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// SessionAuthMiddleware admits requests carrying a logged-in cookie session.
// It stores the user id under the same context key as the JWT middleware so
// handlers serve both surfaces unchanged.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		userID, ok := s.Get(SessionUserID).(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		c.Set(UserIDKey, userID)
		if username, ok := s.Get(SessionUsername).(string); ok {
			c.Set(UsernameKey, username)
		}
		c.Next()
	}
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"balance_game/internal/board"
	"balance_game/internal/middleware"

	"github.com/gin-gonic/gin"
)

// popularCardCacheKey caches the most liked card between like toggles
const popularCardCacheKey = "board:popular"

// profileCacheKey builds the cache key for a user profile projection
func profileCacheKey(userID uint) string {
	return "user:profile:" + strconv.Itoa(int(userID))
}

// currentUserID reads the authenticated user's id set by the auth middleware
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok && userID != 0
}

// pathID parses a numeric path parameter.
// Malformed ids parse to zero, which downstream resolves as not found.
func pathID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// statusForError maps board errors to HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, board.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, board.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, board.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes the mapped status and a stable error payload
func errorResponse(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

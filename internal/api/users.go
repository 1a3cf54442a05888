package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"balance_game/internal/blob"
	"balance_game/internal/board"
	"balance_game/internal/domain"
	"balance_game/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProfileView is the user projection returned to clients.
// It never includes the password hash.
type ProfileView struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Nickname        string `json:"nickname"`
	Age             *int   `json:"age"`
	Intro           string `json:"intro"`
	HasProfileImage bool   `json:"has_profile_image"`
}

// newProfileView projects a stored user
func newProfileView(user domain.User) ProfileView {
	nickname := board.AnonymousName
	if user.Nickname != nil && *user.Nickname != "" {
		nickname = *user.Nickname
	}
	return ProfileView{
		ID:              user.ID,
		Username:        user.Username,
		Nickname:        nickname,
		Age:             user.Age,
		Intro:           user.Intro,
		HasProfileImage: user.ProfileImageRef != "",
	}
}

// loadProfile fetches a profile projection through the cache
func loadProfile(db *gorm.DB, rdb *redis.Client, userID uint) (ProfileView, error) {
	ctx := context.Background()
	key := profileCacheKey(userID)
	var view ProfileView
	if found, err := utils.GetCache(ctx, rdb, key, &view); err == nil && found {
		return view, nil
	}
	var user domain.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileView{}, board.ErrNotFound
		}
		return ProfileView{}, err
	}
	view = newProfileView(user)
	_ = utils.SetCache(ctx, rdb, key, view, 60*time.Second)
	return view, nil
}

// MeHandler returns the requester's own profile
func MeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		view, err := loadProfile(db, rdb, userID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// UserProfileHandler returns another user's profile
func UserProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		view, err := loadProfile(db, rdb, pathID(c, "id"))
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// RecentVotesHandler returns the newest cards a user has voted on
func RecentVotesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := pathID(c, "id")
		if _, err := board.LoadPrincipal(db, userID); err != nil {
			errorResponse(c, err)
			return
		}
		votes, err := board.RecentVotes(db, userID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"votes": votes})
	}
}

// ProfileImageHandler serves a user's profile image bytes.
// Any lookup failure falls back to the default asset; this route never errors.
func ProfileImageHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := ""
		var user domain.User
		if err := db.First(&user, pathID(c, "id")).Error; err == nil {
			ref = user.ProfileImageRef
		}
		c.Data(http.StatusOK, "image/png", blob.Retrieve(db, ref))
	}
}

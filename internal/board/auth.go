package board

import (
	"errors"
	"fmt"

	"balance_game/internal/domain"

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"
)

// Principal identifies the authenticated requester.
// It is passed explicitly into every component call instead of being read
// from ambient request state.
type Principal struct {
	ID       uint   // User id, the authorization identity
	Username string // Login name
	Nickname string // Display name, may be empty
}

// Authenticate verifies a username/password pair against the stored hash.
// Unknown users and wrong passwords both report ErrUnauthorized.
func Authenticate(db *gorm.DB, username, password string) (Principal, error) {
	var user domain.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, err
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Principal{}, ErrUnauthorized
	}
	return Principal{ID: user.ID, Username: user.Username, Nickname: nicknameOf(user)}, nil
}

// LoadPrincipal resolves a user id into a Principal
func LoadPrincipal(db *gorm.DB, userID uint) (Principal, error) {
	var user domain.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Principal{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return Principal{}, err
	}
	return Principal{ID: user.ID, Username: user.Username, Nickname: nicknameOf(user)}, nil
}

// nicknameOf flattens the nullable nickname column for display
func nicknameOf(user domain.User) string {
	if user.Nickname == nil {
		return ""
	}
	return *user.Nickname
}

package board

import (
	"testing"

	"balance_game/internal/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.ProfileImage{},
		&domain.Card{},
		&domain.CardVote{},
		&domain.CardLike{},
		&domain.Comment{},
	))
	return db
}

// createUser stores a user and returns its principal
func createUser(t *testing.T, db *gorm.DB, username, nickname string) Principal {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Username: username, Password: string(hash)}
	if nickname != "" {
		user.Nickname = &nickname
	}
	require.NoError(t, db.Create(&user).Error)
	return Principal{ID: user.ID, Username: user.Username, Nickname: nickname}
}

// createCard stores a card owned by the principal
func createCard(t *testing.T, db *gorm.DB, p Principal, option1, option2 string) *domain.Card {
	t.Helper()
	card, err := CreateCard(db, p, option1, option2, false)
	require.NoError(t, err)
	return card
}

// requireCounters asserts that a card's stored counters match the actual
// vote rows and like rows
func requireCounters(t *testing.T, db *gorm.DB, cardID uint) {
	t.Helper()
	var card domain.Card
	require.NoError(t, db.First(&card, cardID).Error)

	var votes1, votes2, likes int64
	require.NoError(t, db.Model(&domain.CardVote{}).Where("card_id = ? AND choice = ?", cardID, "1").Count(&votes1).Error)
	require.NoError(t, db.Model(&domain.CardVote{}).Where("card_id = ? AND choice = ?", cardID, "2").Count(&votes2).Error)
	require.NoError(t, db.Model(&domain.CardLike{}).Where("card_id = ?", cardID).Count(&likes).Error)

	require.Equal(t, int(votes1), card.Result1, "result1 must equal the count of option-1 votes")
	require.Equal(t, int(votes2), card.Result2, "result2 must equal the count of option-2 votes")
	require.Equal(t, int(likes), card.Likes, "likes must equal the liked-by cardinality")
}

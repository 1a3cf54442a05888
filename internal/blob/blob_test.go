package blob

import (
	"testing"

	"balance_game/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.ProfileImage{}))
	return db
}

func TestAllowedFile(t *testing.T) {
	assert.True(t, AllowedFile("me.png"))
	assert.True(t, AllowedFile("me.JPG"))
	assert.True(t, AllowedFile("photo.jpeg"))
	assert.True(t, AllowedFile("anim.gif"))
	assert.False(t, AllowedFile("script.exe"))
	assert.False(t, AllowedFile("notes.txt"))
	assert.False(t, AllowedFile("noextension"))
}

func TestStore_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	data := []byte{0x89, 0x50, 0x4e, 0x47}

	ref, err := Store(db, data, "profile.png")
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	assert.Equal(t, data, Retrieve(db, ref))
}

func TestStore_DisallowedExtensionIsSilentlySkipped(t *testing.T) {
	db := setupTestDB(t)

	ref, err := Store(db, []byte("MZ"), "malware.exe")
	require.NoError(t, err)
	assert.Empty(t, ref)

	var count int64
	require.NoError(t, db.Model(&domain.ProfileImage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRetrieve_FallsBackToDefault(t *testing.T) {
	db := setupTestDB(t)

	// Empty and unresolvable references both serve the default asset
	assert.Equal(t, DefaultImage(), Retrieve(db, ""))
	assert.Equal(t, DefaultImage(), Retrieve(db, "does-not-exist"))
	assert.NotEmpty(t, DefaultImage())
}

package board

import (
	"testing"

	"balance_game/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")

	principal, err := Authenticate(db, "usera", "password123")
	require.NoError(t, err)
	assert.Equal(t, userA.ID, principal.ID)
	assert.Equal(t, "usera", principal.Username)

	// Wrong password and unknown user report the same error
	_, err = Authenticate(db, "usera", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = Authenticate(db, "nobody", "password123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoadPrincipal(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "nick")

	principal, err := LoadPrincipal(db, userA.ID)
	require.NoError(t, err)
	assert.Equal(t, "nick", principal.Nickname)

	_, err = LoadPrincipal(db, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNicknameUniqueAtSchemaLevel(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "usera", "samename")

	// The unique index rejects a duplicate even when inserted directly
	nick := "samename"
	err := db.Create(&domain.User{Username: "userb", Password: "x", Nickname: &nick}).Error
	assert.Error(t, err)

	// Unset nicknames stay null and never collide
	require.NoError(t, db.Create(&domain.User{Username: "userc", Password: "x"}).Error)
	require.NoError(t, db.Create(&domain.User{Username: "userd", Password: "x"}).Error)
}

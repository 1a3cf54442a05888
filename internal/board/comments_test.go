package board

import (
	"testing"
	"time"

	"balance_game/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment_Validation(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")
	card := createCard(t, db, userA, "a", "b")

	_, err := AddComment(db, userA, card.ID, "", false)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = AddComment(db, userA, card.ID, "   ", false)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AddComment(db, userA, 9999, "hello", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment_FrozenNickname(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "oldname")
	card := createCard(t, db, userA, "a", "b")

	comment, err := AddComment(db, userA, card.ID, "first", false)
	require.NoError(t, err)
	assert.Equal(t, "oldname", comment.Nickname)

	// Renaming the user later must not change the stored display name
	require.NoError(t, db.Model(&domain.User{}).
		Where("id = ?", userA.ID).Update("nickname", "newname").Error)
	comments, err := ListComments(db, card.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "oldname", comments[0].Nickname)
}

func TestAddComment_Anonymous(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "visible")
	card := createCard(t, db, userA, "a", "b")

	comment, err := AddComment(db, userA, card.ID, "masked opinion", true)
	require.NoError(t, err)
	assert.Equal(t, AnonymousName, comment.Nickname)
	assert.True(t, comment.IsAnonymous)
	// Authorization identity is stored despite the mask
	assert.Equal(t, userA.ID, comment.WriterID)
}

func TestListComments_AscendingOrder(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")
	card := createCard(t, db, userA, "a", "b")

	first, err := AddComment(db, userA, card.ID, "first", false)
	require.NoError(t, err)
	require.NoError(t, db.Model(first).UpdateColumn("created_at", time.Now().Add(-time.Minute)).Error)
	second, err := AddComment(db, userA, card.ID, "second", false)
	require.NoError(t, err)

	comments, err := ListComments(db, card.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestDeleteComment_Authorization(t *testing.T) {
	db := setupTestDB(t)
	userX := createUser(t, db, "userx", "X")
	userY := createUser(t, db, "usery", "Y")
	card := createCard(t, db, userX, "a", "b")

	comment, err := AddComment(db, userX, card.ID, "anonymous remark", true)
	require.NoError(t, err)

	// Another user cannot delete, even though the comment displays as anonymous
	err = DeleteComment(db, comment.ID, userY.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The true author can
	require.NoError(t, DeleteComment(db, comment.ID, userX.ID))
	comments, err := ListComments(db, card.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	err = DeleteComment(db, comment.ID, userX.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

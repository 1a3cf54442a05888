package board

import (
	"fmt"
	"testing"
	"time"

	"balance_game/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCard_Validation(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")

	cases := []struct {
		name    string
		option1 string
		option2 string
	}{
		{"empty first option", "", "b"},
		{"empty second option", "a", ""},
		{"whitespace only", "   ", "b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateCard(db, userA, tc.option1, tc.option2, false)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateCard_AnonymousKeepsWriterID(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "kimcheolsu")

	card, err := CreateCard(db, userA, "a", "b", true)
	require.NoError(t, err)
	// Presentation is masked but the authorization identity stays recorded
	assert.Equal(t, AnonymousName, card.Writer)
	assert.Equal(t, userA.ID, card.WriterID)
	assert.True(t, card.IsAnonymous)
}

func TestCreateCard_DisplayNameFromNickname(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "kimcheolsu")
	userNoNick := createUser(t, db, "plain", "")

	card, err := CreateCard(db, userA, "a", "b", false)
	require.NoError(t, err)
	assert.Equal(t, "kimcheolsu", card.Writer)

	// A user without a nickname falls back to the anonymous label
	card, err = CreateCard(db, userNoNick, "a", "b", false)
	require.NoError(t, err)
	assert.Equal(t, AnonymousName, card.Writer)
	assert.Equal(t, userNoNick.ID, card.WriterID)
}

func TestDeleteCard_Authorization(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")
	userB := createUser(t, db, "userb", "B")
	card, err := CreateCard(db, userA, "a", "b", true)
	require.NoError(t, err)

	// A non-owner is rejected even though the card displays as anonymous
	err = DeleteCard(db, card.ID, userB.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, DeleteCard(db, card.ID, userA.ID))
	_, err = GetCard(db, card.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = DeleteCard(db, card.ID, userA.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCard_RemovesDependents(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")
	userB := createUser(t, db, "userb", "B")
	card := createCard(t, db, userA, "a", "b")

	_, err := ToggleVote(db, card.ID, userB.ID, "1")
	require.NoError(t, err)
	_, err = ToggleLike(db, card.ID, userB.ID)
	require.NoError(t, err)
	_, err = AddComment(db, userB, card.ID, "hello", false)
	require.NoError(t, err)

	require.NoError(t, DeleteCard(db, card.ID, userA.ID))

	var votes, likes, comments int64
	require.NoError(t, db.Model(&domain.CardVote{}).Where("card_id = ?", card.ID).Count(&votes).Error)
	require.NoError(t, db.Model(&domain.CardLike{}).Where("card_id = ?", card.ID).Count(&likes).Error)
	require.NoError(t, db.Model(&domain.Comment{}).Where("card_id = ?", card.ID).Count(&comments).Error)
	assert.Zero(t, votes)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func TestListCards_Pagination(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")
	for i := 0; i < 11; i++ {
		createCard(t, db, userA, fmt.Sprintf("left %d", i), fmt.Sprintf("right %d", i))
	}

	cards, total, err := ListCards(db, SearchFilter{}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 11, total)
	assert.Len(t, cards, PerPage)
	assert.Equal(t, 2, TotalPages(total))

	cards, _, err = ListCards(db, SearchFilter{}, 2)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	// Exactly ten matches fit on a single page
	require.NoError(t, DeleteCard(db, cards[0].ID, userA.ID))
	cards, total, err = ListCards(db, SearchFilter{}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
	assert.Len(t, cards, 10)
	assert.Equal(t, 1, TotalPages(total))

	// No matches still render as one empty page
	assert.Equal(t, 1, TotalPages(0))
}

func TestListCards_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")
	oldest := createCard(t, db, userA, "first", "card")
	require.NoError(t, db.Model(oldest).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	newest := createCard(t, db, userA, "second", "card")

	cards, _, err := ListCards(db, SearchFilter{}, 1)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, newest.ID, cards[0].ID)
	assert.Equal(t, oldest.ID, cards[1].ID)
}

func TestListCards_Search(t *testing.T) {
	db := setupTestDB(t)
	kim := createUser(t, db, "kim", "kimcheolsu")
	lee := createUser(t, db, "lee", "leeyoung")
	createCard(t, db, kim, "짜장면", "짬뽕")
	createCard(t, db, lee, "Mountain trip", "Beach trip")

	// Writer search is a case-insensitive substring match
	cards, total, err := ListCards(db, SearchFilter{Query: "Kim", Type: SearchWriter}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, cards, 1)
	assert.Equal(t, "kimcheolsu", cards[0].Writer)

	// Field-scoped search only hits the selected option
	cards, _, err = ListCards(db, SearchFilter{Query: "beach", Type: SearchOption2}, 1)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Beach trip", cards[0].Option2)

	_, total, err = ListCards(db, SearchFilter{Query: "beach", Type: SearchOption1}, 1)
	require.NoError(t, err)
	assert.Zero(t, total)

	// "all" matches across both options and the writer name
	_, total, err = ListCards(db, SearchFilter{Query: "짬뽕", Type: SearchAll}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestListCards_FilterLiked(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")
	userB := createUser(t, db, "userb", "B")
	liked := createCard(t, db, userA, "a", "b")
	createCard(t, db, userA, "c", "d")

	_, err := ToggleLike(db, liked.ID, userB.ID)
	require.NoError(t, err)

	cards, total, err := ListCards(db, SearchFilter{LikedBy: userB.ID}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, cards, 1)
	assert.Equal(t, liked.ID, cards[0].ID)

	// Unauthenticated requesters get the unfiltered listing
	_, total, err = ListCards(db, SearchFilter{LikedBy: 0}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestPopularCard(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")
	userB := createUser(t, db, "userb", "B")

	// No likes anywhere means no popular card
	createCard(t, db, userA, "quiet", "card")
	card, err := PopularCard(db)
	require.NoError(t, err)
	assert.Nil(t, card)

	once := createCard(t, db, userA, "liked", "once")
	twice := createCard(t, db, userA, "liked", "twice")
	_, err = ToggleLike(db, once.ID, userA.ID)
	require.NoError(t, err)
	_, err = ToggleLike(db, twice.ID, userA.ID)
	require.NoError(t, err)
	_, err = ToggleLike(db, twice.ID, userB.ID)
	require.NoError(t, err)

	card, err = PopularCard(db)
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, twice.ID, card.ID)
}

func TestRecentVotes(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "usera", "A")

	// Seven voted cards with distinct creation times
	for i := 0; i < 7; i++ {
		card := createCard(t, db, userA, fmt.Sprintf("q%d", i), "other")
		require.NoError(t, db.Model(card).
			UpdateColumn("created_at", time.Now().Add(time.Duration(i-10)*time.Minute)).Error)
		_, err := ToggleVote(db, card.ID, userA.ID, "1")
		require.NoError(t, err)
	}

	votes, err := RecentVotes(db, userA.ID)
	require.NoError(t, err)
	require.Len(t, votes, 5)
	// Newest voted card first
	assert.Equal(t, "q6", votes[0].Option1)
	assert.Equal(t, "1", votes[0].Voted)
	assert.True(t, votes[0].CreatedAt.After(votes[4].CreatedAt))

	// A user with no votes gets an empty list
	userB := createUser(t, db, "userb", "B")
	votes, err = RecentVotes(db, userB.ID)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

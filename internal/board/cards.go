package board

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"balance_game/internal/domain"

	"gorm.io/gorm"
)

// AnonymousName is the display name used when the author masks their identity
const AnonymousName = "익명"

// CreateCard validates the two options and stores a new card.
// The display writer name is resolved once, here: the anonymous label when the
// author masks their identity, otherwise the author's current nickname.
// WriterID is always stored regardless of the anonymity flag.
func CreateCard(db *gorm.DB, p Principal, option1, option2 string, anonymous bool) (*domain.Card, error) {
	option1 = strings.TrimSpace(option1)
	option2 = strings.TrimSpace(option2)
	if option1 == "" || option2 == "" {
		return nil, fmt.Errorf("both options are required: %w", ErrValidation)
	}

	writer := AnonymousName
	if !anonymous && p.Nickname != "" {
		writer = p.Nickname
	}

	card := domain.Card{
		Option1:     option1,
		Option2:     option2,
		Writer:      writer,
		WriterID:    p.ID,
		IsAnonymous: anonymous,
	}
	if err := db.Create(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// GetCard fetches a single card by id
func GetCard(db *gorm.DB, cardID uint) (*domain.Card, error) {
	var card domain.Card
	if err := db.First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card %d: %w", cardID, ErrNotFound)
		}
		return nil, err
	}
	return &card, nil
}

// ListCards returns one page of cards matching the filter, newest first,
// along with the total number of matching cards.
func ListCards(db *gorm.DB, filter SearchFilter, page int) ([]domain.Card, int64, error) {
	var total int64
	if err := filter.Apply(db.Model(&domain.Card{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := Paginate(page)
	var cards []domain.Card
	err := filter.Apply(db.Model(&domain.Card{})).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&cards).Error
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// DeleteCard removes a card and its votes, likes and comments.
// Only the stored writer id may delete, regardless of the anonymity flag.
func DeleteCard(db *gorm.DB, cardID, requesterID uint) error {
	card, err := GetCard(db, cardID)
	if err != nil {
		return err
	}
	if card.WriterID != requesterID {
		return fmt.Errorf("card %d: %w", cardID, ErrForbidden)
	}
	// Remove the card together with its dependent rows
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", cardID).Delete(&domain.CardVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", cardID).Delete(&domain.CardLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", cardID).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Card{}, cardID).Error
	})
}

// PopularCard returns the most liked card with at least one like,
// or nil when no card qualifies.
func PopularCard(db *gorm.DB) (*domain.Card, error) {
	var card domain.Card
	err := db.Where("likes >= ?", 1).Order("likes DESC").First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// RecentVote pairs a card with the option the user chose on it
type RecentVote struct {
	Option1   string    `json:"option1"`
	Option2   string    `json:"option2"`
	Votes1    int       `json:"votes1"`
	Votes2    int       `json:"votes2"`
	Voted     string    `json:"voted"`
	CreatedAt time.Time `json:"created_at"`
}

// RecentVotes returns the newest cards the user has voted on, at most five,
// each carrying the user's chosen option.
func RecentVotes(db *gorm.DB, userID uint) ([]RecentVote, error) {
	var votes []RecentVote
	err := db.Model(&domain.CardVote{}).
		Select("cards.option1, cards.option2, cards.result1 AS votes1, cards.result2 AS votes2, card_votes.choice AS voted, cards.created_at").
		Joins("JOIN cards ON cards.id = card_votes.card_id").
		Where("card_votes.user_id = ?", userID).
		Order("cards.created_at DESC").
		Limit(5).
		Scan(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// UserVotes returns the requester's current choice per card for a set of cards
func UserVotes(db *gorm.DB, userID uint, cardIDs []uint) (map[uint]string, error) {
	votes := make(map[uint]string, len(cardIDs))
	if userID == 0 || len(cardIDs) == 0 {
		return votes, nil
	}
	var rows []domain.CardVote
	if err := db.Where("user_id = ? AND card_id IN ?", userID, cardIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		votes[row.CardID] = row.Choice
	}
	return votes, nil
}

// UserLikes returns the requester's like membership per card for a set of cards
func UserLikes(db *gorm.DB, userID uint, cardIDs []uint) (map[uint]bool, error) {
	likes := make(map[uint]bool, len(cardIDs))
	if userID == 0 || len(cardIDs) == 0 {
		return likes, nil
	}
	var rows []domain.CardLike
	if err := db.Where("user_id = ? AND card_id IN ?", userID, cardIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		likes[row.CardID] = true
	}
	return likes, nil
}

package board

import (
	"errors"
	"fmt"

	"balance_game/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeResult reports the state after a like toggle
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// ToggleLike flips the user's membership in the card's liked-by set.
// Membership in the set and the likes counter move together in one
// transaction with the card row locked, so the counter always equals the
// set's cardinality.
func ToggleLike(db *gorm.DB, cardID, userID uint) (*LikeResult, error) {
	var result LikeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// Lock the card row for the duration of the toggle
		var card domain.Card
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&card, cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("card %d: %w", cardID, ErrNotFound)
			}
			return err
		}

		var like domain.CardLike
		err := tx.Where("card_id = ? AND user_id = ?", cardID, userID).First(&like).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Not in the set yet: add and count
			newLike := domain.CardLike{CardID: cardID, UserID: userID}
			if err := tx.Create(&newLike).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.Card{}).Where("id = ?", cardID).
				UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
				return err
			}
			result.Liked = true
		case err != nil:
			return err
		default:
			// Already in the set: remove and uncount
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.Card{}).Where("id = ?", cardID).
				UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error; err != nil {
				return err
			}
			result.Liked = false
		}

		// Read the counter back inside the same transaction
		var updated domain.Card
		if err := tx.First(&updated, cardID).Error; err != nil {
			return err
		}
		result.Likes = updated.Likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

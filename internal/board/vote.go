package board

import (
	"errors"
	"fmt"

	"balance_game/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteResult reports the state after a vote toggle.
// Voted is the user's current choice, empty when the vote was cleared.
type VoteResult struct {
	Result1 int    `json:"result1"`
	Result2 int    `json:"result2"`
	Voted   string `json:"voted"`
}

// resultColumn maps an option to its counter column
func resultColumn(option string) string {
	if option == "2" {
		return "result2"
	}
	return "result1"
}

// moveCounter shifts one of the card's vote counters by delta
func moveCounter(tx *gorm.DB, cardID uint, option string, delta int) error {
	col := resultColumn(option)
	return tx.Model(&domain.Card{}).
		Where("id = ?", cardID).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta)).Error
}

// ToggleVote applies one vote event for a user on a card:
// no vote yet records the option, the same option again clears the vote,
// a different option switches it. The vote row change and the counter math run
// in one transaction with the card row locked, so two users voting at the same
// time serialize per card and the counters always match the vote rows.
func ToggleVote(db *gorm.DB, cardID, userID uint, option string) (*VoteResult, error) {
	if option != "1" && option != "2" {
		return nil, fmt.Errorf("option must be \"1\" or \"2\": %w", ErrValidation)
	}

	var result VoteResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// Lock the card row for the duration of the toggle
		var card domain.Card
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&card, cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("card %d: %w", cardID, ErrNotFound)
			}
			return err
		}

		var vote domain.CardVote
		err := tx.Where("card_id = ? AND user_id = ?", cardID, userID).First(&vote).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No vote yet: record the choice and count it
			newVote := domain.CardVote{CardID: cardID, UserID: userID, Choice: option}
			if err := tx.Create(&newVote).Error; err != nil {
				return err
			}
			if err := moveCounter(tx, cardID, option, +1); err != nil {
				return err
			}
			result.Voted = option
		case err != nil:
			return err
		case vote.Choice == option:
			// Same option repeated: clear the vote
			if err := tx.Delete(&vote).Error; err != nil {
				return err
			}
			if err := moveCounter(tx, cardID, option, -1); err != nil {
				return err
			}
			result.Voted = ""
		default:
			// Different option: switch the vote
			previous := vote.Choice
			if err := tx.Model(&vote).Update("choice", option).Error; err != nil {
				return err
			}
			if err := moveCounter(tx, cardID, previous, -1); err != nil {
				return err
			}
			if err := moveCounter(tx, cardID, option, +1); err != nil {
				return err
			}
			result.Voted = option
		}

		// Read the counters back inside the same transaction
		var updated domain.Card
		if err := tx.First(&updated, cardID).Error; err != nil {
			return err
		}
		result.Result1 = updated.Result1
		result.Result2 = updated.Result2
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

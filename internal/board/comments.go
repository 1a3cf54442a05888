package board

import (
	"errors"
	"fmt"
	"strings"

	"balance_game/internal/domain"

	"gorm.io/gorm"
)

// AddComment stores a comment on a card.
// The display nickname is frozen at write time: the anonymous label when the
// author masks their identity, otherwise the author's current nickname.
// WriterID is always stored so the author can delete later, even anonymously.
func AddComment(db *gorm.DB, p Principal, cardID uint, content string, anonymous bool) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", ErrValidation)
	}
	if _, err := GetCard(db, cardID); err != nil {
		return nil, err
	}

	nickname := AnonymousName
	if !anonymous && p.Nickname != "" {
		nickname = p.Nickname
	}

	comment := domain.Comment{
		CardID:      cardID,
		Nickname:    nickname,
		WriterID:    p.ID,
		IsAnonymous: anonymous,
		Content:     content,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a card's comments ordered by creation time ascending
func ListComments(db *gorm.DB, cardID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := db.Where("card_id = ?", cardID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes a comment. Only the stored writer id may delete,
// the check applies even when the comment displays as anonymous.
func DeleteComment(db *gorm.DB, commentID, requesterID uint) error {
	var comment domain.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return err
	}
	if comment.WriterID != requesterID {
		return fmt.Errorf("comment %d: %w", commentID, ErrForbidden)
	}
	return db.Delete(&comment).Error
}

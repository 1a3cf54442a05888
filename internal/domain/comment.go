package domain

import "time"

// Comment Model
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`          // Primary key
	CardID      uint      `gorm:"index;not null" json:"card_id"` // Card the comment belongs to
	Nickname    string    `json:"nickname"`                      // Display name frozen at write time
	WriterID    uint      `gorm:"index;not null" json:"-"`       // Author id, always stored, used only for authorization
	IsAnonymous bool      `json:"is_anonymous"`                  // Whether the author display is masked
	Content     string    `gorm:"not null" json:"content"`       // Comment text
	CreatedAt   time.Time `json:"created_at"`                    // Timestamp of creation
}

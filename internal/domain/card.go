package domain

import "time"

// Card Model: a two-option poll with vote and like counters
type Card struct {
	ID          uint      `gorm:"primaryKey" json:"id"`              // Primary key
	Option1     string    `gorm:"not null" json:"option1"`           // First option text
	Option2     string    `gorm:"not null" json:"option2"`           // Second option text
	Result1     int       `gorm:"not null;default:0" json:"result1"` // Count of votes for option 1
	Result2     int       `gorm:"not null;default:0" json:"result2"` // Count of votes for option 2
	Likes       int       `gorm:"not null;default:0" json:"likes"`   // Count of likes, always len(card_likes rows)
	Writer      string    `json:"writer"`                            // Display name frozen at creation time
	WriterID    uint      `gorm:"index;not null" json:"-"`           // Author id, always stored, used only for authorization
	IsAnonymous bool      `json:"is_anonymous"`                      // Whether the writer display is masked
	CreatedAt   time.Time `json:"created_at"`                        // Timestamp of creation
}

// CardVote records a user's single current choice on a card.
// The composite unique index enforces at most one vote per user per card.
type CardVote struct {
	ID        uint   `gorm:"primaryKey"`
	CardID    uint   `gorm:"uniqueIndex:idx_card_user_vote;not null"`
	UserID    uint   `gorm:"uniqueIndex:idx_card_user_vote;not null"`
	Choice    string `gorm:"type:varchar(1);not null"` // "1" or "2"
	CreatedAt time.Time
}

// CardLike records set membership in a card's liked-by set.
// The composite unique index enforces at most one like per user per card.
type CardLike struct {
	ID        uint `gorm:"primaryKey"`
	CardID    uint `gorm:"uniqueIndex:idx_card_user_like;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_card_user_like;not null"`
	CreatedAt time.Time
}

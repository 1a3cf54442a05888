package board

import (
	"strings"

	"gorm.io/gorm"
)

// Search field selectors accepted from the query string
const (
	SearchAll     = "all"
	SearchOption1 = "option1"
	SearchOption2 = "option2"
	SearchWriter  = "writer"
)

// SearchFilter describes a card listing filter built from request parameters.
// LikedBy restricts results to cards liked by that user; zero means no restriction.
type SearchFilter struct {
	Query   string // Free-text query, matched as case-insensitive substring
	Type    string // Field selector: option1, option2, writer or all
	LikedBy uint   // Requesting user's id when the liked filter is on
}

// Apply appends the filter's WHERE clauses to a card query
func (f SearchFilter) Apply(q *gorm.DB) *gorm.DB {
	text := strings.TrimSpace(f.Query)
	if text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		switch f.Type {
		case SearchOption1:
			q = q.Where("LOWER(option1) LIKE ?", pattern)
		case SearchOption2:
			q = q.Where("LOWER(option2) LIKE ?", pattern)
		case SearchWriter:
			q = q.Where("LOWER(writer) LIKE ?", pattern)
		default:
			// "all" and anything unrecognized match any of the three fields
			q = q.Where("LOWER(option1) LIKE ? OR LOWER(option2) LIKE ? OR LOWER(writer) LIKE ?",
				pattern, pattern, pattern)
		}
	}
	if f.LikedBy != 0 {
		// Only cards whose liked-by set contains the requester
		q = q.Where("id IN (SELECT card_id FROM card_likes WHERE user_id = ?)", f.LikedBy)
	}
	return q
}

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"balance_game/internal/board"
	"balance_game/internal/domain"
	"balance_game/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CardView is the card projection returned to clients.
// WriterID is exposed only for non-anonymous cards; HasVoted carries the
// requester's current choice or null.
type CardView struct {
	ID          uint      `json:"id"`
	Writer      string    `json:"writer"`
	WriterID    *uint     `json:"writer_id"`
	Option1     string    `json:"option1"`
	Option2     string    `json:"option2"`
	Votes1      int       `json:"votes1"`
	Votes2      int       `json:"votes2"`
	Likes       int       `json:"likes"`
	HasVoted    *string   `json:"hasVoted"`
	HasLiked    bool      `json:"hasLiked"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// newCardView projects a card for one requester
func newCardView(card domain.Card, votes map[uint]string, likes map[uint]bool) CardView {
	view := CardView{
		ID:          card.ID,
		Writer:      card.Writer,
		Option1:     card.Option1,
		Option2:     card.Option2,
		Votes1:      card.Result1,
		Votes2:      card.Result2,
		Likes:       card.Likes,
		HasLiked:    likes[card.ID],
		IsAnonymous: card.IsAnonymous,
		CreatedAt:   card.CreatedAt,
	}
	if !card.IsAnonymous {
		writerID := card.WriterID
		view.WriterID = &writerID
	}
	if choice, ok := votes[card.ID]; ok {
		view.HasVoted = &choice
	}
	return view
}

// searchFilterFromQuery builds the listing filter from request parameters
func searchFilterFromQuery(c *gin.Context, userID uint) board.SearchFilter {
	filter := board.SearchFilter{
		Query: c.Query("search"),
		Type:  c.DefaultQuery("search_type", board.SearchAll),
	}
	// Both spellings are in use by clients
	liked := c.Query("filterLiked")
	if liked == "1" || liked == "true" {
		filter.LikedBy = userID
	}
	return filter
}

// CreateCardRequest accepts a new two-option card.
// Clients send the anonymity flag as bool or as the string "1".
type CreateCardRequest struct {
	Option1     string `json:"option1"`
	Option2     string `json:"option2"`
	IsAnonymous any    `json:"is_anonymous"`
}

// CreateCardHandler creates a card for the authenticated user
func CreateCardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		principal, err := board.LoadPrincipal(db, userID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		card, err := board.CreateCard(db, principal, req.Option1, req.Option2, anonymousFlag(req.IsAnonymous))
		if err != nil {
			errorResponse(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"card_id":   card.ID,
			"writer_id": card.WriterID,
			"anonymous": card.IsAnonymous,
		}).Info("Card created")
		c.JSON(http.StatusCreated, gin.H{"id": card.ID})
	}
}

// ListCardsHandler lists cards with search, liked filter and pagination
func ListCardsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page := 1
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		filter := searchFilterFromQuery(c, userID)
		cards, total, err := board.ListCards(db, filter, page)
		if err != nil {
			errorResponse(c, err)
			return
		}
		views, err := projectCards(db, cards, userID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cards":       views,
			"page":        page,
			"total":       total,
			"total_pages": board.TotalPages(total),
		})
	}
}

// projectCards builds requester-specific views for a page of cards
func projectCards(db *gorm.DB, cards []domain.Card, userID uint) ([]CardView, error) {
	cardIDs := make([]uint, len(cards))
	for i, card := range cards {
		cardIDs[i] = card.ID
	}
	votes, err := board.UserVotes(db, userID, cardIDs)
	if err != nil {
		return nil, err
	}
	likes, err := board.UserLikes(db, userID, cardIDs)
	if err != nil {
		return nil, err
	}
	views := make([]CardView, len(cards))
	for i, card := range cards {
		views[i] = newCardView(card, votes, likes)
	}
	return views, nil
}

// DeleteCardHandler deletes a card owned by the requester
func DeleteCardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cardID := pathID(c, "id")
		if err := board.DeleteCard(db, cardID, userID); err != nil {
			errorResponse(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"card_id": cardID,
			"user_id": userID,
		}).Info("Card deleted")
		// The deleted card may have been the popular one
		_ = utils.DeleteCache(context.Background(), rdb, popularCardCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
	}
}

// VoteHandler applies one vote toggle for the requester on a card
func VoteHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// The requester must resolve to a stored user
		if _, err := board.LoadPrincipal(db, userID); err != nil {
			errorResponse(c, err)
			return
		}
		var req struct {
			Option string `json:"option"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option"})
			return
		}
		result, err := board.ToggleVote(db, pathID(c, "id"), userID, req.Option)
		if err != nil {
			errorResponse(c, err)
			return
		}
		// The voted-on card may be the cached popular one
		_ = utils.DeleteCache(context.Background(), rdb, popularCardCacheKey)
		var voted *string
		if result.Voted != "" {
			voted = &result.Voted
		}
		c.JSON(http.StatusOK, gin.H{
			"result1": result.Result1,
			"result2": result.Result2,
			"voted":   voted,
		})
	}
}

// LikeHandler flips the requester's like on a card
func LikeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// The requester must resolve to a stored user
		if _, err := board.LoadPrincipal(db, userID); err != nil {
			errorResponse(c, err)
			return
		}
		result, err := board.ToggleLike(db, pathID(c, "id"), userID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		// Like counts changed, so the popular card may have too
		_ = utils.DeleteCache(context.Background(), rdb, popularCardCacheKey)
		c.JSON(http.StatusOK, gin.H{
			"likes": result.Likes,
			"liked": result.Liked,
		})
	}
}

// PopularCardHandler returns the most liked card with the requester's
// vote/like projection. The underlying card row is cached; the projection is
// computed per request.
func PopularCardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()
		var card domain.Card
		found, err := utils.GetCache(ctx, rdb, popularCardCacheKey, &card)
		if err != nil || !found {
			popular, err := board.PopularCard(db)
			if err != nil {
				errorResponse(c, err)
				return
			}
			if popular == nil {
				c.JSON(http.StatusOK, gin.H{"card": nil})
				return
			}
			card = *popular
			_ = utils.SetCache(ctx, rdb, popularCardCacheKey, card, 60*time.Second)
		}
		views, err := projectCards(db, []domain.Card{card}, userID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"card": views[0]})
	}
}

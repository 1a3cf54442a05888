package api

import (
	"net/http"
	"strconv"

	"balance_game/internal/board"
	"balance_game/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BoardCardView is the server-rendered board projection: a card plus its
// comments, oldest first, ready for template consumption.
type BoardCardView struct {
	CardView
	Comments []domain.Comment `json:"comments"`
}

// BoardPageHandler lists one page of cards for the session-authenticated
// board, mirroring the API listing semantics. The board page uses the
// query/type parameter names of the HTML form.
func BoardPageHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		page := 1
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		filter := board.SearchFilter{
			Query: c.Query("query"),
			Type:  c.DefaultQuery("type", board.SearchAll),
		}
		if c.Query("filterLiked") == "1" {
			filter.LikedBy = userID
		}
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
		// Attach each card's comment thread for inline rendering
		boardViews := make([]BoardCardView, len(views))
		for i, view := range views {
			comments, err := board.ListComments(db, view.ID)
			if err != nil {
				errorResponse(c, err)
				return
			}
			boardViews[i] = BoardCardView{CardView: view, Comments: comments}
		}
		c.JSON(http.StatusOK, gin.H{
			"cards":        boardViews,
			"page":         page,
			"total_pages":  board.TotalPages(total),
			"search_query": filter.Query,
			"search_type":  filter.Type,
		})
	}
}

// BoardCreateHandler creates a card from the board's HTML form fields
func BoardCreateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		principal, err := board.LoadPrincipal(db, userID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		anonymous := c.PostForm("is_anonymous") == "1"
		card, err := board.CreateCard(db, principal, c.PostForm("option1"), c.PostForm("option2"), anonymous)
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

package api

import (
	"net/http"

	"balance_game/internal/board"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddCommentRequest accepts a new comment on a card
type AddCommentRequest struct {
	Comment     string `json:"comment"`
	IsAnonymous any    `json:"is_anonymous"` // Clients send bool or "1"
}

// anonymousFlag normalizes the mixed bool/string anonymity field
func anonymousFlag(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}

// AddCommentHandler stores a comment on a card for the requester
func AddCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AddCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		principal, err := board.LoadPrincipal(db, userID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		comment, err := board.AddComment(db, principal, pathID(c, "id"), req.Comment, anonymousFlag(req.IsAnonymous))
		if err != nil {
			errorResponse(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"comment_id": comment.ID,
			"card_id":    comment.CardID,
			"writer_id":  comment.WriterID,
			"anonymous":  comment.IsAnonymous,
		}).Info("Comment added")
		c.JSON(http.StatusCreated, gin.H{"id": comment.ID, "message": "Comment added"})
	}
}

// ListCommentsHandler returns a card's comments, oldest first
func ListCommentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		comments, err := board.ListComments(db, pathID(c, "id"))
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}

// DeleteCommentHandler deletes a comment owned by the requester
func DeleteCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		commentID := pathID(c, "commentID")
		if err := board.DeleteComment(db, commentID, userID); err != nil {
			errorResponse(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"comment_id": commentID,
			"user_id":    userID,
		}).Info("Comment deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchpoint/backend/internal/auth"
)

type messageUsersRequest struct {
	MessageUserID string `json:"message_user_id" binding:"required"`
}

type unseenCountRequest struct {
	// RecipientID is the other participant, i.e. the sender of the unseen
	// messages being counted.
	RecipientID string `json:"recipient_id" binding:"required"`
}

// MessagesBetweenUsers returns the full two-way history with one user.
// This is the durable read path backing the best-effort socket delivery.
func (h *Handler) MessagesBetweenUsers(c *gin.Context) {
	var req messageUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messages, err := h.Store.MessagesBetween(c.Request.Context(), auth.UserID(c), req.MessageUserID)
	if err != nil {
		h.Log.Error("message history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while fetching messages."})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// UnseenMessagesCount counts unseen messages the other user has sent to the
// current user.
func (h *Handler) UnseenMessagesCount(c *gin.Context) {
	var req unseenCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.Store.CountUnseenMessages(c.Request.Context(), req.RecipientID, auth.UserID(c))
	if err != nil {
		h.Log.Error("unseen count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while counting messages."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": count})
}

// UpdateSeenMessages is the REST twin of the mark_messages_seen socket
// event: it bulk-flips the seen flag on messages from the other user.
func (h *Handler) UpdateSeenMessages(c *gin.Context) {
	var req unseenCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.Store.MarkMessagesSeen(c.Request.Context(), req.RecipientID, auth.UserID(c))
	if err != nil {
		h.Log.Error("seen update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while updating messages."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": count})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchpoint/backend/internal/auth"
	"matchpoint/backend/internal/models"
)

type matchRequest struct {
	User2ID string `json:"user2_id" binding:"required"`
}

// CreateMatch drives the pairing handshake. A first request creates an
// UNMATCHED row; the other side repeating the request flips it to ACTIVE.
func (h *Handler) CreateMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.UserID(c)
	if userID == req.User2ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a match request to yourself."})
		return
	}

	ctx := c.Request.Context()

	existing, err := h.Store.FindMatchBetween(ctx, userID, req.User2ID)
	if err != nil {
		h.Log.Error("match lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while processing match request."})
		return
	}

	if existing != nil {
		switch existing.Status {
		case models.MatchStatusUnmatched:
			if existing.User1ID == userID {
				c.JSON(http.StatusConflict, gin.H{"error": "Match request has already been sent. Awaiting response from the other user."})
				return
			}
			// The other side is responding: the pair becomes ACTIVE.
			existing.Status = models.MatchStatusActive
			if err := h.Store.SaveMatch(ctx, existing); err != nil {
				h.Log.Error("match update failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while processing match request."})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "You are now matched!", "match": existing})
			return

		case models.MatchStatusActive:
			c.JSON(http.StatusConflict, gin.H{"error": "You are already matched with this user."})
			return

		case models.MatchStatusRejected:
			c.JSON(http.StatusConflict, gin.H{"error": "The other user rejected your request."})
			return
		}
	}

	match := &models.Match{
		User1ID: userID,
		User2ID: req.User2ID,
		Status:  models.MatchStatusUnmatched,
	}
	if err := h.Store.SaveMatch(ctx, match); err != nil {
		h.Log.Error("match create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while processing match request."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "New match request sent with status UNMATCHED", "match": match})
}

// RejectMatch marks the pairing REJECTED, creating the row if none exists
// so the rejection is remembered.
func (h *Handler) RejectMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.UserID(c)
	ctx := c.Request.Context()

	existing, err := h.Store.FindMatchBetween(ctx, userID, req.User2ID)
	if err != nil {
		h.Log.Error("match lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while rejecting match request."})
		return
	}

	if existing != nil {
		if existing.Status == models.MatchStatusRejected {
			c.JSON(http.StatusOK, gin.H{"message": "You have already rejected this match request."})
			return
		}
		existing.Status = models.MatchStatusRejected
		if err := h.Store.SaveMatch(ctx, existing); err != nil {
			h.Log.Error("match update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while rejecting match request."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Match request rejected successfully.", "match": existing})
		return
	}

	match := &models.Match{
		User1ID: userID,
		User2ID: req.User2ID,
		Status:  models.MatchStatusRejected,
	}
	if err := h.Store.SaveMatch(ctx, match); err != nil {
		h.Log.Error("match create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while rejecting match request."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Match request rejected.", "match": match})
}

// MatchProfiles lists the profiles on the other side of the user's matches
// with the given status.
func (h *Handler) MatchProfiles(c *gin.Context) {
	status := models.MatchStatus(c.Query("match_status"))
	userID := auth.UserID(c)
	ctx := c.Request.Context()

	matches, err := h.Store.MatchesForUser(ctx, userID, status)
	if err != nil {
		h.Log.Error("match list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred while fetching matches."})
		return
	}

	profiles := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		otherID := m.Other(userID)

		user, err := h.Store.GetUserByID(ctx, otherID)
		if err != nil {
			h.Log.Warn("match profile lookup failed",
				zap.String("user_id", otherID), zap.Error(err))
			continue
		}

		profile := userResponse(user)
		if asset, err := h.Store.GetAssetByUserID(ctx, otherID); err == nil {
			profile["assets"] = asset
		}
		profile["match_id"] = m.ID
		profiles = append(profiles, profile)
	}

	c.JSON(http.StatusOK, gin.H{"matches": profiles})
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchpoint/backend/internal/auth"
	"matchpoint/backend/internal/storage"
)

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	DOB   string `json:"dob"`
}

// GetProfile returns the current user's profile and assets.
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.UserID(c)

	user, err := h.Store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		h.Log.Error("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred."})
		return
	}

	resp := userResponse(user)
	if asset, err := h.Store.GetAssetByUserID(ctx, userID); err == nil {
		resp["assets"] = asset
	}
	c.JSON(http.StatusOK, gin.H{"user": resp})
}

// UpdateProfile changes name, phone and/or date of birth. A phone change
// must not collide with another account.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	userID := auth.UserID(c)

	user, err := h.Store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		h.Log.Error("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred."})
		return
	}

	if req.Phone != "" && req.Phone != user.Phone {
		if _, err := h.Store.GetUserByPhone(ctx, req.Phone); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already in use by another user."})
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			h.Log.Error("phone conflict lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred."})
			return
		}
		user.Phone = req.Phone
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dob must be YYYY-MM-DD"})
			return
		}
		user.DOB = dob
	}

	if err := h.Store.UpdateUser(ctx, user); err != nil {
		h.Log.Error("profile update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile Updated", "user": userResponse(user)})
}

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchpoint/backend/internal/auth"
	"matchpoint/backend/internal/models"
	"matchpoint/backend/internal/storage"
)

const otpLength = 6

type signupRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	DOB    string `json:"dob" binding:"required"`
	Gender string `json:"gender" binding:"required"`
}

type phoneRequest struct {
	Phone       string `json:"phone" binding:"required"`
	CountryCode string `json:"country_code" binding:"required"`
}

type loginRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// Signup registers a new account. The phone number must be unused.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dob must be YYYY-MM-DD"})
		return
	}
	if req.Gender != models.GenderMale && req.Gender != models.GenderFemale {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be MALE or FEMALE"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.Store.GetUserByPhone(ctx, req.Phone); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this phone number already exists"})
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.Log.Error("signup lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred"})
		return
	}

	user := &models.User{
		Name:   req.Name,
		Phone:  req.Phone,
		DOB:    dob,
		Gender: req.Gender,
	}
	if err := h.Store.CreateUser(ctx, user); err != nil {
		h.Log.Error("signup create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Success", "user": userResponse(user)})
}

// GenerateOTP stores a short-lived code in Redis and delivers it over SMS.
func (h *Handler) GenerateOTP(c *gin.Context) {
	var req phoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.Store.GetUserByPhone(ctx, req.Phone); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.Log.Error("otp lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred"})
		return
	}

	code := auth.GenerateOTP(otpLength)
	if err := h.Store.StoreOTP(ctx, req.Phone, code, h.Cfg.OTPTTL); err != nil {
		h.Log.Error("otp store failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
		return
	}

	if h.SMS != nil {
		body := fmt.Sprintf("Your OTP code is %s.", code)
		if err := h.SMS.SendSMS(ctx, req.CountryCode+req.Phone, body); err != nil {
			h.Log.Error("otp delivery failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
			return
		}
	} else {
		h.Log.Warn("sms sender not configured, otp stored but not delivered",
			zap.String("phone", req.Phone))
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// Login exchanges a phone number and OTP for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	user, err := h.Store.GetUserByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User with this phone number does not exist!"})
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred"})
		return
	}

	ok, err := h.Store.VerifyOTP(ctx, req.Phone, req.OTP)
	if err != nil {
		h.Log.Error("otp verify failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	token, err := auth.GenerateToken([]byte(h.Cfg.JWTSecret), user.ID)
	if err != nil {
		h.Log.Error("token signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Success",
		"token":   token,
		"user":    userResponse(user),
	})
}

// TokenIsValid reports whether the x-auth-token header carries a valid
// token.
func (h *Handler) TokenIsValid(c *gin.Context) {
	token := c.GetHeader("x-auth-token")
	if token == "" {
		c.JSON(http.StatusOK, false)
		return
	}
	if _, err := auth.ParseToken([]byte(h.Cfg.JWTSecret), token); err != nil {
		c.JSON(http.StatusOK, false)
		return
	}
	c.JSON(http.StatusOK, true)
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"phone":      user.Phone,
		"gender":     user.Gender,
		"dob":        user.DOB,
		"age":        user.Age(),
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"matchpoint/backend/internal/models"
)

const otpKeyPrefix = "otp:"

// --- Users ---

func (s *Service) CreateUser(ctx context.Context, user *models.User) error {
	return s.DB.WithContext(ctx).Create(user).Error
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(ctx context.Context, user *models.User) error {
	return s.DB.WithContext(ctx).Save(user).Error
}

// --- Matches ---

// FindMatchBetween looks the pair up in both orderings; matches are
// undirected. Returns nil when no row exists, whatever its status.
func (s *Service) FindMatchBetween(ctx context.Context, userA, userB string) (*models.Match, error) {
	var match models.Match
	err := s.DB.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userA, userB, userB, userA).
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Service) SaveMatch(ctx context.Context, match *models.Match) error {
	return s.DB.WithContext(ctx).Save(match).Error
}

// MatchesForUser returns matches where the user is on either side,
// optionally filtered by status.
func (s *Service) MatchesForUser(ctx context.Context, userID string, status models.MatchStatus) ([]models.Match, error) {
	var matches []models.Match
	q := s.DB.WithContext(ctx).Where("user1_id = ? OR user2_id = ?", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("updated_at desc").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// --- Messages ---

func (s *Service) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.DB.WithContext(ctx).Create(msg).Error
}

func (s *Service) MessagesBetween(ctx context.Context, userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Service) CountUnseenMessages(ctx context.Context, senderID, recipientID string) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND seen = ?", senderID, recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkMessagesSeen bulk-flips the seen flag on every unseen message from
// senderID to recipientID. Idempotent: a second call reports zero rows.
func (s *Service) MarkMessagesSeen(ctx context.Context, senderID, recipientID string) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND seen = ?", senderID, recipientID, false).
		Update("seen", true)
	return res.RowsAffected, res.Error
}

// --- Assets ---

func (s *Service) SaveAsset(ctx context.Context, asset *models.Asset) error {
	return s.DB.WithContext(ctx).Save(asset).Error
}

func (s *Service) GetAssetByUserID(ctx context.Context, userID string) (*models.Asset, error) {
	var asset models.Asset
	err := s.DB.WithContext(ctx).First(&asset, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// --- OTP ---

func (s *Service) StoreOTP(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.Redis.SetEx(ctx, otpKeyPrefix+phone, code, ttl).Err()
}

// VerifyOTP checks the stored code and consumes it on success, so a code
// can be used at most once.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.Redis.Get(ctx, otpKeyPrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.Redis.Del(ctx, otpKeyPrefix+phone).Err(); err != nil {
		return false, err
	}
	return true, nil
}

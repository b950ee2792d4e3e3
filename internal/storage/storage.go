package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"matchpoint/backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary consumed by the socket router and the
// REST handlers. PostgreSQL holds users, matches, messages and assets;
// Redis holds short-lived OTP codes.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// Matches
	FindMatchBetween(ctx context.Context, userA, userB string) (*models.Match, error)
	SaveMatch(ctx context.Context, match *models.Match) error
	MatchesForUser(ctx context.Context, userID string, status models.MatchStatus) ([]models.Match, error)

	// Messages
	CreateMessage(ctx context.Context, msg *models.Message) error
	MessagesBetween(ctx context.Context, userA, userB string) ([]models.Message, error)
	CountUnseenMessages(ctx context.Context, senderID, recipientID string) (int64, error)
	MarkMessagesSeen(ctx context.Context, senderID, recipientID string) (int64, error)

	// Assets
	SaveAsset(ctx context.Context, asset *models.Asset) error
	GetAssetByUserID(ctx context.Context, userID string) (*models.Asset, error)

	// OTP
	StoreOTP(ctx context.Context, phone, code string, ttl time.Duration) error
	VerifyOTP(ctx context.Context, phone, code string) (bool, error)
}

// Service implements Store over gorm and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewService wraps the database handles.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{DB: db, Redis: rdb}
}

var _ Store = (*Service)(nil)

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchStatus is the lifecycle state of a pairing. Messaging between two
// users is permitted only while their match is ACTIVE.
type MatchStatus string

const (
	MatchStatusActive    MatchStatus = "ACTIVE"
	MatchStatusUnmatched MatchStatus = "UNMATCHED"
	MatchStatusRejected  MatchStatus = "REJECTED"
)

// Match is an undirected pairing between two users. User1 is the side that
// initiated the request; the pairing itself has no direction, so lookups must
// check both orderings.
type Match struct {
	ID        string      `gorm:"primaryKey;type:text" json:"id"`
	User1ID   string      `gorm:"type:text;not null;index" json:"user1_id"`
	User2ID   string      `gorm:"type:text;not null;index" json:"user2_id"`
	Status    MatchStatus `gorm:"type:text;not null;default:UNMATCHED" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// BeforeCreate generates a UUID for the match if the ID is not set.
func (m *Match) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// Other returns the participant that is not userID.
func (m *Match) Other(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

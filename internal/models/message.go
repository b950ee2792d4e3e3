package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Content types a message can carry.
const (
	ContentTypeText = "text"
	ContentTypeFile = "file"
)

// Message is a persisted chat message tied to a match. Immutable once
// created except for the Seen flag (and UpdatedAt alongside it).
type Message struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	MatchID     string    `gorm:"type:text;not null;index" json:"match_id"`
	SenderID    string    `gorm:"type:text;not null;index:idx_msg_route" json:"sender_id"`
	RecipientID string    `gorm:"type:text;not null;index:idx_msg_route" json:"recipient_id"`
	Content     *string   `gorm:"type:text" json:"content"`
	ContentType string    `gorm:"type:text;not null;default:text" json:"content_type"`
	FileURL     *string   `gorm:"type:text" json:"file_url"`
	Seen        bool      `gorm:"not null;default:false" json:"seen"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the message if the ID is not set.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// MessageRecord is the wire form of a Message, emitted on the broadcast
// "chat" event. Timestamps are ISO-8601 strings.
type MessageRecord struct {
	ID          string  `json:"id"`
	MatchID     string  `json:"match_id"`
	SenderID    string  `json:"sender_id"`
	RecipientID string  `json:"recipient_id"`
	Content     *string `json:"content"`
	ContentType string  `json:"content_type"`
	FileURL     *string `json:"file_url"`
	Seen        bool    `json:"seen"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Record converts the message to its wire form.
func (m *Message) Record() MessageRecord {
	return MessageRecord{
		ID:          m.ID,
		MatchID:     m.MatchID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		ContentType: m.ContentType,
		FileURL:     m.FileURL,
		Seen:        m.Seen,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339Nano),
	}
}

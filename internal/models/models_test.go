package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserBeforeCreateGeneratesID(t *testing.T) {
	u := &User{Name: "Alice", Phone: "1234567890"}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.NotEmpty(t, u.ID)

	existing := &User{ID: "fixed-id"}
	assert.NoError(t, existing.BeforeCreate(nil))
	assert.Equal(t, "fixed-id", existing.ID)
}

func TestUserAge(t *testing.T) {
	u := &User{DOB: time.Now().AddDate(-30, 0, 0)}
	assert.Equal(t, 30, u.Age())

	// Birthday has not happened yet this year.
	notYet := &User{DOB: time.Now().AddDate(-30, 0, 1)}
	assert.Equal(t, 29, notYet.Age())
}

func TestMatchOther(t *testing.T) {
	m := &Match{User1ID: "user-a", User2ID: "user-b"}
	assert.Equal(t, "user-b", m.Other("user-a"))
	assert.Equal(t, "user-a", m.Other("user-b"))
}

func TestMessageRecord(t *testing.T) {
	content := "hi"
	url := "https://example.com/f.jpg"
	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	m := &Message{
		ID:          "msg-1",
		MatchID:     "match-1",
		SenderID:    "user-a",
		RecipientID: "user-b",
		Content:     &content,
		ContentType: ContentTypeFile,
		FileURL:     &url,
		Seen:        true,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	rec := m.Record()
	assert.Equal(t, "msg-1", rec.ID)
	assert.Equal(t, "match-1", rec.MatchID)
	assert.Equal(t, "user-a", rec.SenderID)
	assert.Equal(t, "user-b", rec.RecipientID)
	assert.Equal(t, &content, rec.Content)
	assert.Equal(t, ContentTypeFile, rec.ContentType)
	assert.Equal(t, &url, rec.FileURL)
	assert.True(t, rec.Seen)
	assert.Equal(t, "2025-06-01T12:30:00Z", rec.CreatedAt)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Asset holds a user's uploaded media and profile extras. Image and passion
// lists are stored as PostgreSQL text arrays.
type Asset struct {
	ID             string         `gorm:"primaryKey;type:text" json:"id"`
	UserID         string         `gorm:"type:text;not null;uniqueIndex" json:"user_id"`
	ProfilePicture *string        `gorm:"type:text" json:"profile_picture"`
	ImageList      pq.StringArray `gorm:"type:text[]" json:"image_list"`
	PassionList    pq.StringArray `gorm:"type:text[]" json:"passion_list"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// BeforeCreate generates a UUID for the asset if the ID is not set.
func (a *Asset) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

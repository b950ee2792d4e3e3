package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted at signup.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// User represents a registered account. The phone number is the login
// identity; OTP verification happens against it.
type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(15);not null;uniqueIndex" json:"phone"`
	DOB       time.Time `gorm:"not null" json:"dob"`
	Gender    string    `gorm:"type:text;not null" json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the user if the ID is not set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Age is derived from the date of birth; it is not stored.
func (u *User) Age() int {
	now := time.Now()
	age := now.Year() - u.DOB.Year()
	if now.Month() < u.DOB.Month() ||
		(now.Month() == u.DOB.Month() && now.Day() < u.DOB.Day()) {
		age--
	}
	return age
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered reader. Passwords are stored as bcrypt hashes only.
// The first user ever created (id 1) is the blog admin.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:100;not null"`
	CreatedAt    time.Time
	Posts        []Post
	Comments     []Comment
}

// IsAdmin reports whether this user holds the single admin identity.
func (u *User) IsAdmin() bool {
	return u != nil && u.ID == 1
}

// BeforeCreate hook ensures the timestamp is set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return nil
}

package model

import "time"

// User represents a registered account in the system.
type User struct {
	UserID       uint      `json:"user_id" gorm:"column:user_id;primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	UserRole     int       `json:"user_role" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

package model

import "time"

// User is an account that owns selections, missions, projects and progress.
// Telegram-only users have no password and are created on first /start.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	TelegramID   *int64    `gorm:"uniqueIndex" json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	Level        int       `gorm:"default:1" json:"level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

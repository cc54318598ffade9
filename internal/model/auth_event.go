package model

import "time"

const (
	AuthEventSignup        = "signup"
	AuthEventLogin         = "login"
	AuthEventProfileUpdate = "profile_update"
)

type AuthEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:24;not null;index" json:"user_id"`
	Type      string    `gorm:"size:32;not null;index" json:"type"`
	IP        string    `gorm:"size:64" json:"ip"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// Notification severities.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
)

// Notification is a persisted in-app notification for an account
type Notification struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID uint64    `gorm:"not null;index" json:"account_id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	Severity  string    `gorm:"not null;default:info" json:"severity"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation represents an AI assistant conversation
type Conversation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   uint64    `gorm:"not null;index" json:"account_id"`
	Title       string    `json:"title"`
	TotalTokens uint64    `gorm:"not null;default:0" json:"total_tokens"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package dao

import (
	"time"

	"collabos-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageDAO handles message-related database operations
type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{db: db}
}

// CreateMessage adds a message to a conversation
func (d *MessageDAO) CreateMessage(conversationID uuid.UUID, role, content string) (*models.Message, error) {
	msg := &models.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if err := d.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// GetMessagesByConversationID retrieves all messages in a conversation
func (d *MessageDAO) GetMessagesByConversationID(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	if err := d.db.Where("conversation_id = ?", conversationID).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CountAccountMessagesSince counts "user" messages sent by an account across
// all of its conversations since the given time. Backs the free tier's daily
// assistant allowance.
func (d *MessageDAO) CountAccountMessagesSince(accountID uint64, since time.Time) (int64, error) {
	var count int64
	err := d.db.Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.account_id = ? AND messages.role = ? AND messages.created_at >= ?", accountID, "user", since).
		Count(&count).Error
	return count, err
}

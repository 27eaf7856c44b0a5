package dao

import (
	"collabos-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationDAO handles conversation-related database operations
type ConversationDAO struct {
	db *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{db: db}
}

// CreateConversation creates a new conversation for an account
func (d *ConversationDAO) CreateConversation(accountID uint64, title string) (*models.Conversation, error) {
	convo := &models.Conversation{
		ID:        uuid.New(),
		AccountID: accountID,
		Title:     title,
	}
	if err := d.db.Create(convo).Error; err != nil {
		return nil, err
	}
	return convo, nil
}

// GetConversationByID retrieves a conversation by ID
func (d *ConversationDAO) GetConversationByID(id uuid.UUID) (*models.Conversation, error) {
	var convo models.Conversation
	if err := d.db.Where("id = ?", id).First(&convo).Error; err != nil {
		return nil, err
	}
	return &convo, nil
}

// ListConversationsByAccount retrieves all conversations of an account
func (d *ConversationDAO) ListConversationsByAccount(accountID uint64) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := d.db.Where("account_id = ?", accountID).Order("updated_at DESC").Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// AddTokens increments the running token total of a conversation
func (d *ConversationDAO) AddTokens(id uuid.UUID, tokens uint64) error {
	return d.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("total_tokens", gorm.Expr("total_tokens + ?", tokens)).Error
}

package logic

import (
	"errors"
	"time"

	"collabos-backend/config"
	"collabos-backend/dao"
	"collabos-backend/models"
	"collabos-backend/pkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrContextLimit      = errors.New("conversation context limit exceeded")
	ErrDailyLimitReached = errors.New("daily assistant message limit reached")
)

// ChatCompleter is the streaming chat API surface the assistant flow needs
type ChatCompleter interface {
	CreateChatCompletionStream(request pkg.ChatCompletionRequest, handler func(pkg.ChatCompletionResponse) error) error
}

// ChatLogic handles AI assistant conversations billed in coins. Billing is
// a two-phase saga: the message cost is debited before the external call
// and credited back if the call fails. A crash between the debit and the
// failure handler leaves the debit standing; there is no automatic
// recovery for that window.
type ChatLogic struct {
	accountDAO *dao.AccountDAO
	convoDAO   *dao.ConversationDAO
	messageDAO *dao.MessageDAO
	ledger     *LedgerLogic
	chatClient ChatCompleter
}

func NewChatLogic(
	accountDAO *dao.AccountDAO,
	convoDAO *dao.ConversationDAO,
	messageDAO *dao.MessageDAO,
	ledger *LedgerLogic,
	chatClient ChatCompleter,
) *ChatLogic {
	return &ChatLogic{
		accountDAO: accountDAO,
		convoDAO:   convoDAO,
		messageDAO: messageDAO,
		ledger:     ledger,
		chatClient: chatClient,
	}
}

// CreateConversation creates a new conversation for an account
func (l *ChatLogic) CreateConversation(accountID uint64, title string) (*models.Conversation, error) {
	return l.convoDAO.CreateConversation(accountID, title)
}

// ListConversations retrieves all conversations of an account
func (l *ChatLogic) ListConversations(accountID uint64) ([]models.Conversation, error) {
	return l.convoDAO.ListConversationsByAccount(accountID)
}

func (l *ChatLogic) ownedConversation(accountID uint64, conversationID uuid.UUID) (*models.Conversation, error) {
	convo, err := l.convoDAO.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if convo.AccountID != accountID {
		return nil, ErrNotAuthorized
	}
	return convo, nil
}

// GetConversationMessages retrieves all messages in a conversation the
// account owns
func (l *ChatLogic) GetConversationMessages(accountID uint64, conversationID uuid.UUID) ([]models.Message, error) {
	if _, err := l.ownedConversation(accountID, conversationID); err != nil {
		return nil, err
	}
	return l.messageDAO.GetMessagesByConversationID(conversationID)
}

// SendMessage adds a message and calls the chat API. The coin cost is
// debited first; if the external call fails, a compensating credit of the
// same magnitude is issued under a distinct reference.
func (l *ChatLogic) SendMessage(accountID uint64, conversationID uuid.UUID, model, ask string, streamHandler func(string)) (*models.Message, error) {
	convo, err := l.ownedConversation(accountID, conversationID)
	if err != nil {
		return nil, err
	}
	account, err := l.accountDAO.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	maxContext := uint64(config.GlobalConfig.Chat.MaxContextTokens)
	if convo.TotalTokens >= maxContext {
		return nil, ErrContextLimit
	}

	// Free tier gets a daily allowance; paid tiers are unlimited.
	limits := LimitsForTier(account.Tier)
	if limits.DailyAssistantMessages >= 0 {
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		sent, err := l.messageDAO.CountAccountMessagesSince(accountID, midnight)
		if err != nil {
			return nil, err
		}
		if sent >= limits.DailyAssistantMessages {
			return nil, ErrDailyLimitReached
		}
	}

	// The ledger clamps at zero instead of rejecting, so sufficiency is
	// checked here, before the debit.
	if account.Coins < ChatMessageCost {
		return nil, ErrInsufficientCoins
	}

	sagaID := uuid.NewString()
	if _, err := l.ledger.AddCoins(accountID, -ChatMessageCost, "assistant message", "ai-debit-"+sagaID); err != nil {
		return nil, err
	}

	history, err := l.messageDAO.GetMessagesByConversationID(conversationID)
	if err != nil {
		l.refund(accountID, sagaID)
		return nil, err
	}

	var chatMessages []pkg.RequestMessage
	for _, msg := range history {
		chatMessages = append(chatMessages, pkg.RequestMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	chatMessages = append(chatMessages, pkg.RequestMessage{
		Role:    "user",
		Content: ask,
	})

	remaining := maxContext - convo.TotalTokens
	req := pkg.ChatCompletionRequest{
		Model:     model,
		Messages:  chatMessages,
		MaxTokens: uint32(remaining),
	}

	var fullResponse string
	err = l.chatClient.CreateChatCompletionStream(req, func(resp pkg.ChatCompletionResponse) error {
		for _, choice := range resp.Choices {
			if choice.Message.Content != "" {
				fullResponse += choice.Message.Content
				if streamHandler != nil {
					streamHandler(choice.Message.Content)
				}
			}
		}
		return nil
	})
	if err != nil {
		l.refund(accountID, sagaID)
		return nil, err
	}

	// Only save messages once the API call succeeded
	if _, err := l.messageDAO.CreateMessage(conversationID, "user", ask); err != nil {
		return nil, err
	}
	answer, err := l.messageDAO.CreateMessage(conversationID, "assistant", fullResponse)
	if err != nil {
		return nil, err
	}

	// Rough token accounting based on response length, as upstream usage
	// data is not guaranteed on streamed responses.
	if err := l.convoDAO.AddTokens(conversationID, uint64(len(fullResponse))); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("token accounting update failed")
	}

	return answer, nil
}

// refund issues the compensating credit for a failed assistant call
func (l *ChatLogic) refund(accountID uint64, sagaID string) {
	if _, err := l.ledger.AddCoins(accountID, ChatMessageCost, "assistant message refund", "ai-refund-"+sagaID); err != nil && !errors.Is(err, ErrDuplicateReference) {
		log.Error().Err(err).Uint64("account_id", accountID).Str("saga", sagaID).Msg("assistant refund failed; manual correction required")
	}
}

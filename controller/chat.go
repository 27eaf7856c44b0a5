package controller

import (
	"net/http"

	"collabos-backend/config"
	"collabos-backend/logic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatController handles HTTP requests for the AI assistant
type ChatController struct {
	chatLogic *logic.ChatLogic
}

func NewChatController(chatLogic *logic.ChatLogic) *ChatController {
	return &ChatController{chatLogic: chatLogic}
}

// CreateConversation handles POST /conversations
func (c *ChatController) CreateConversation(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	type Request struct {
		Title string `json:"title"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	convo, err := c.chatLogic.CreateConversation(accountID, req.Title)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, convo)
}

// ListConversations handles GET /conversations
func (c *ChatController) ListConversations(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	conversations, err := c.chatLogic.ListConversations(accountID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, conversations)
}

// GetMessages handles GET /conversations/:id/messages
func (c *ChatController) GetMessages(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation ID"})
		return
	}

	messages, err := c.chatLogic.GetConversationMessages(accountID, convoID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// SendMessage handles POST /conversations/:id/messages
func (c *ChatController) SendMessage(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation ID"})
		return
	}

	type Request struct {
		Ask string `json:"ask" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Stream response to client using Server-Sent Events
	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	msg, err := c.chatLogic.SendMessage(accountID, convoID, config.GlobalConfig.Chat.Model, req.Ask, func(content string) {
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.SSEvent("done", msg)
	ctx.Writer.Flush()
}

package controller

import (
	"encoding/json"
	"net/http"

	"collabos-backend/logic"

	"github.com/gin-gonic/gin"
)

// WebhookController handles HTTP requests from the payment provider.
// Signature verification happens in upstream middleware; by the time a
// request reaches this handler the event is authenticated.
type WebhookController struct {
	webhookLogic *logic.WebhookLogic
}

func NewWebhookController(webhookLogic *logic.WebhookLogic) *WebhookController {
	return &WebhookController{webhookLogic: webhookLogic}
}

// HandlePaymentEvent handles POST /webhooks/payment
func (c *WebhookController) HandlePaymentEvent(ctx *gin.Context) {
	type Request struct {
		EventID   string          `json:"event_id" binding:"required"`
		EventType string          `json:"event_type" binding:"required"`
		Payload   json.RawMessage `json:"payload" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.webhookLogic.HandlePaymentEvent(req.EventID, req.EventType, req.Payload); err != nil {
		// Non-2xx asks the provider to retry the delivery.
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package controller

import (
	"net/http"

	"collabos-backend/logic"

	"github.com/gin-gonic/gin"
)

// SubscriptionController handles HTTP requests for subscriptions
type SubscriptionController struct {
	subscriptionLogic *logic.SubscriptionLogic
}

func NewSubscriptionController(subscriptionLogic *logic.SubscriptionLogic) *SubscriptionController {
	return &SubscriptionController{subscriptionLogic: subscriptionLogic}
}

// GetSubscription handles GET /subscription. Reading reconciles lazily:
// an overdue coin-paid subscription is expired on the way out.
func (c *SubscriptionController) GetSubscription(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	sub, err := c.subscriptionLogic.GetSubscription(accountID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if sub == nil {
		ctx.JSON(http.StatusOK, gin.H{"subscription": nil})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"subscription": sub})
}

// RedeemSubscription handles POST /subscription/redeem
func (c *SubscriptionController) RedeemSubscription(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	type Request struct {
		Plan string `json:"plan" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := c.subscriptionLogic.RedeemWithCoins(accountID, req.Plan)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, sub)
}

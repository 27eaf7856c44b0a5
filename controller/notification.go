package controller

import (
	"net/http"

	"collabos-backend/logic"

	"github.com/gin-gonic/gin"
)

// NotificationController handles HTTP requests for notifications
type NotificationController struct {
	notificationLogic *logic.NotificationLogic
}

func NewNotificationController(notificationLogic *logic.NotificationLogic) *NotificationController {
	return &NotificationController{notificationLogic: notificationLogic}
}

// ListNotifications handles GET /notifications
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	unreadOnly := ctx.Query("unread") == "true"
	notifications, err := c.notificationLogic.ListNotifications(accountID, unreadOnly)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST /notifications/:id/read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	notificationID, err := parseUintParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.notificationLogic.MarkRead(accountID, notificationID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MarkAllRead handles POST /notifications/read-all
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	if err := c.notificationLogic.MarkAllRead(accountID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

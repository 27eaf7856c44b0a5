package logic

import (
	"collabos-backend/dao"
	"collabos-backend/models"
)

// NotificationLogic handles reading and acknowledging notifications
type NotificationLogic struct {
	notificationDAO *dao.NotificationDAO
}

func NewNotificationLogic(notificationDAO *dao.NotificationDAO) *NotificationLogic {
	return &NotificationLogic{notificationDAO: notificationDAO}
}

// ListNotifications retrieves an account's notifications, newest first
func (l *NotificationLogic) ListNotifications(accountID uint64, unreadOnly bool) ([]models.Notification, error) {
	return l.notificationDAO.ListNotificationsByAccount(accountID, unreadOnly)
}

// MarkRead acknowledges a single notification
func (l *NotificationLogic) MarkRead(accountID, notificationID uint64) error {
	return l.notificationDAO.MarkRead(accountID, notificationID)
}

// MarkAllRead acknowledges every notification of the account
func (l *NotificationLogic) MarkAllRead(accountID uint64) error {
	return l.notificationDAO.MarkAllRead(accountID)
}

package dao

import (
	"collabos-backend/models"

	"gorm.io/gorm"
)

// NotificationDAO handles notification database operations
type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{db: db}
}

// CreateNotification persists a notification for an account
func (d *NotificationDAO) CreateNotification(accountID uint64, title, message, severity string) (*models.Notification, error) {
	n := &models.Notification{
		AccountID: accountID,
		Title:     title,
		Message:   message,
		Severity:  severity,
	}
	if err := d.db.Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotificationsByAccount retrieves notifications for an account, newest first
func (d *NotificationDAO) ListNotificationsByAccount(accountID uint64, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	q := d.db.Where("account_id = ?", accountID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if err := q.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead marks a single notification as read
func (d *NotificationDAO) MarkRead(accountID, notificationID uint64) error {
	return d.db.Model(&models.Notification{}).
		Where("id = ? AND account_id = ?", notificationID, accountID).
		Update("read", true).Error
}

// MarkAllRead marks every notification of an account as read
func (d *NotificationDAO) MarkAllRead(accountID uint64) error {
	return d.db.Model(&models.Notification{}).
		Where("account_id = ? AND read = ?", accountID, false).
		Update("read", true).Error
}

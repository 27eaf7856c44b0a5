package dao

import (
	"errors"
	"time"

	"collabos-backend/models"

	"gorm.io/gorm"
)

// SubscriptionDAO handles subscription database operations
type SubscriptionDAO struct {
	db *gorm.DB
}

func NewSubscriptionDAO(db *gorm.DB) *SubscriptionDAO {
	return &SubscriptionDAO{db: db}
}

// WithTx returns a copy of the DAO bound to the given transaction
func (d *SubscriptionDAO) WithTx(tx *gorm.DB) *SubscriptionDAO {
	return &SubscriptionDAO{db: tx}
}

// GetByAccount retrieves the subscription for an account; gorm.ErrRecordNotFound when absent
func (d *SubscriptionDAO) GetByAccount(accountID uint64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := d.db.Where("account_id = ?", accountID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert creates or replaces the subscription row for an account
func (d *SubscriptionDAO) Upsert(accountID uint64, plan, status string, periodEnd *time.Time, externalID string) (*models.Subscription, error) {
	sub, err := d.GetByAccount(accountID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		sub = &models.Subscription{AccountID: accountID}
	}
	sub.Plan = plan
	sub.Status = status
	sub.CurrentPeriodEnd = periodEnd
	sub.ExternalSubscriptionID = externalID
	if err := d.db.Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateStatus updates the status of an account's subscription
func (d *SubscriptionDAO) UpdateStatus(accountID uint64, status string) error {
	return d.db.Model(&models.Subscription{}).
		Where("account_id = ?", accountID).
		Update("status", status).Error
}

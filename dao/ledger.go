package dao

import (
	"collabos-backend/models"

	"gorm.io/gorm"
)

// LedgerDAO handles coin ledger database operations
type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{db: db}
}

// WithTx returns a copy of the DAO bound to the given transaction
func (d *LedgerDAO) WithTx(tx *gorm.DB) *LedgerDAO {
	return &LedgerDAO{db: tx}
}

// ReferenceExists reports whether a ledger entry with the reference ID exists
func (d *LedgerDAO) ReferenceExists(referenceID string) (bool, error) {
	var count int64
	if err := d.db.Model(&models.LedgerEntry{}).
		Where("reference_id = ?", referenceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateEntry appends an immutable ledger entry
func (d *LedgerDAO) CreateEntry(accountID uint64, amount int64, reason, referenceID string) (*models.LedgerEntry, error) {
	entry := &models.LedgerEntry{
		AccountID:   accountID,
		Amount:      amount,
		Reason:      reason,
		ReferenceID: referenceID,
	}
	if err := d.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntriesByAccount retrieves the ledger history for an account, newest first
func (d *LedgerDAO) ListEntriesByAccount(accountID uint64, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	q := d.db.Where("account_id = ?", accountID).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

package models

import "time"

// LedgerEntry is an immutable coin transaction record. Entries are created
// once and never mutated or deleted; the full history is the audit log.
type LedgerEntry struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID   uint64    `gorm:"not null;index" json:"account_id"`
	Amount      int64     `gorm:"not null" json:"amount"` // signed: credits positive, debits negative
	Reason      string    `gorm:"not null" json:"reason"`
	ReferenceID string    `gorm:"uniqueIndex;not null" json:"reference_id"` // idempotency key, unique per logical event
	CreatedAt   time.Time `json:"created_at"`
}

package models

import "time"

// Subscription statuses.
const (
	SubscriptionActive   = "active"
	SubscriptionExpired  = "expired"
	SubscriptionCanceled = "canceled"
)

// Subscription is a per-account billing record. An empty
// ExternalSubscriptionID means the subscription was paid with coins and is
// subject to lazy expiry; a non-empty one means the payment provider's
// webhooks own all state transitions.
type Subscription struct {
	ID                     uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID              uint64     `gorm:"not null;uniqueIndex" json:"account_id"`
	Plan                   string     `gorm:"not null" json:"plan"`
	Status                 string     `gorm:"not null" json:"status"`
	CurrentPeriodEnd       *time.Time `json:"current_period_end,omitempty"`
	ExternalSubscriptionID string     `gorm:"index" json:"external_subscription_id,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

package models

import (
	"time"
)

// Tier is the gamification tier derived from an account's coin balance.
// It is cached on the account row for read efficiency and recomputed on
// every successful ledger mutation; the balance is the source of truth.
type Tier string

const (
	TierFree   Tier = "FREE"
	TierPro    Tier = "PRO"
	TierElite  Tier = "ELITE"
	TierLegend Tier = "LEGEND"
)

// Rank returns the position of the tier in the FREE < PRO < ELITE < LEGEND
// ordering. Unknown values rank below FREE.
func (t Tier) Rank() int {
	switch t {
	case TierFree:
		return 0
	case TierPro:
		return 1
	case TierElite:
		return 2
	case TierLegend:
		return 3
	}
	return -1
}

// Account represents a user identity with its coin balance
type Account struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Name          string    `gorm:"not null" json:"name"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	Coins         int64     `gorm:"not null;default:0" json:"coins"` // never persisted negative
	Tier          Tier      `gorm:"not null;default:FREE" json:"tier"`
	IsSystemAdmin bool      `gorm:"not null;default:false" json:"is_system_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

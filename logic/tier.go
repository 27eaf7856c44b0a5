package logic

import (
	"collabos-backend/models"
)

// Tier thresholds on the coin balance. Each tier covers
// [min, next tier's min); LEGEND is open-ended.
const (
	proThreshold    = 500
	eliteThreshold  = 1500
	legendThreshold = 3000
)

// ClassifyTier maps a coin balance to its tier. Deterministic and total;
// negative balances (which the ledger never persists) classify as FREE.
func ClassifyTier(coins int64) models.Tier {
	switch {
	case coins >= legendThreshold:
		return models.TierLegend
	case coins >= eliteThreshold:
		return models.TierElite
	case coins >= proThreshold:
		return models.TierPro
	default:
		return models.TierFree
	}
}

// TierProgress describes how far a balance has advanced through its
// current tier's span.
type TierProgress struct {
	CurrentTier     models.Tier  `json:"current_tier"`
	NextTier        *models.Tier `json:"next_tier,omitempty"`
	CoinsToNext     int64        `json:"coins_to_next"`
	ProgressPercent int          `json:"progress_percent"`
}

// ProgressInfo computes tier progress for a balance. The percentage is
// relative to the current tier's own span (coins earned since entering the
// tier over the span width), rounded half-up. The terminal tier reports no
// next tier and 100%.
func ProgressInfo(coins int64) TierProgress {
	current := ClassifyTier(coins)
	if current == models.TierLegend {
		return TierProgress{
			CurrentTier:     current,
			NextTier:        nil,
			CoinsToNext:     0,
			ProgressPercent: 100,
		}
	}

	var lower, upper int64
	var next models.Tier
	switch current {
	case models.TierFree:
		lower, upper, next = 0, proThreshold, models.TierPro
	case models.TierPro:
		lower, upper, next = proThreshold, eliteThreshold, models.TierElite
	case models.TierElite:
		lower, upper, next = eliteThreshold, legendThreshold, models.TierLegend
	}

	earned := coins - lower
	if earned < 0 {
		earned = 0
	}
	span := upper - lower
	// round-half-up of earned*100/span in integer arithmetic
	percent := int((earned*200 + span) / (2 * span))

	return TierProgress{
		CurrentTier:     current,
		NextTier:        &next,
		CoinsToNext:     upper - coins,
		ProgressPercent: percent,
	}
}

// TierLimits are the feature gates attached to a tier. -1 means unlimited.
type TierLimits struct {
	MaxOwnedWorkspaces      int64
	MaxProjectsPerWorkspace int64
	DailyAssistantMessages  int64
}

// LimitsForTier returns the feature gates for a tier
func LimitsForTier(t models.Tier) TierLimits {
	switch t {
	case models.TierLegend:
		return TierLimits{MaxOwnedWorkspaces: -1, MaxProjectsPerWorkspace: -1, DailyAssistantMessages: -1}
	case models.TierElite:
		return TierLimits{MaxOwnedWorkspaces: 20, MaxProjectsPerWorkspace: 100, DailyAssistantMessages: -1}
	case models.TierPro:
		return TierLimits{MaxOwnedWorkspaces: 5, MaxProjectsPerWorkspace: 20, DailyAssistantMessages: -1}
	default:
		return TierLimits{MaxOwnedWorkspaces: 1, MaxProjectsPerWorkspace: 3, DailyAssistantMessages: 10}
	}
}

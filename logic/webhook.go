package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"collabos-backend/dao"
	"collabos-backend/models"
	"collabos-backend/pkg"

	"github.com/rs/zerolog/log"
)

var ErrMissingEventID = errors.New("event id is required")

// WebhookLogic processes verified payment-provider events. Signature
// verification happens upstream; this layer only deduplicates deliveries
// and applies the state transition. The dedup cache is process-local best
// effort; coin credits additionally use the event ID as the ledger
// reference, which is the durable guard.
type WebhookLogic struct {
	dedup           *pkg.DedupCache
	subscriptionDAO *dao.SubscriptionDAO
	notificationDAO *dao.NotificationDAO
	ledger          *LedgerLogic
}

func NewWebhookLogic(
	dedup *pkg.DedupCache,
	subscriptionDAO *dao.SubscriptionDAO,
	notificationDAO *dao.NotificationDAO,
	ledger *LedgerLogic,
) *WebhookLogic {
	return &WebhookLogic{
		dedup:           dedup,
		subscriptionDAO: subscriptionDAO,
		notificationDAO: notificationDAO,
		ledger:          ledger,
	}
}

// HandlePaymentEvent applies one payment event. Replays within the dedup
// TTL are silently treated as already handled, which is what a retrying
// webhook sender expects. Unknown event types are logged and acknowledged.
func (l *WebhookLogic) HandlePaymentEvent(eventID, eventType string, payload json.RawMessage) error {
	if eventID == "" {
		return ErrMissingEventID
	}
	if l.dedup.Seen(eventID) {
		log.Debug().Str("event_id", eventID).Msg("duplicate webhook delivery ignored")
		return nil
	}

	var err error
	switch eventType {
	case "coins.purchased":
		err = l.handleCoinPurchase(eventID, payload)
	case "subscription.activated", "subscription.renewed":
		err = l.handleSubscriptionUpdate(payload)
	case "subscription.canceled":
		err = l.handleSubscriptionCanceled(payload)
	default:
		log.Info().Str("event_id", eventID).Str("event_type", eventType).Msg("unhandled webhook event type")
	}
	if err != nil {
		// Not marked as seen: the provider's retry should get another chance.
		return err
	}

	l.dedup.Mark(eventID)
	return nil
}

func (l *WebhookLogic) handleCoinPurchase(eventID string, payload json.RawMessage) error {
	var body struct {
		AccountID uint64 `json:"account_id"`
		Coins     int64  `json:"coins"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return err
	}

	// The event ID doubles as the ledger reference, so a replay that slips
	// past the cache still cannot credit twice.
	_, err := l.ledger.AddCoins(body.AccountID, body.Coins, "coin purchase", eventID)
	if errors.Is(err, ErrDuplicateReference) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := l.notificationDAO.CreateNotification(
		body.AccountID,
		"Coins added",
		fmt.Sprintf("%d coins were added to your balance.", body.Coins),
		models.SeveritySuccess,
	); err != nil {
		log.Warn().Err(err).Uint64("account_id", body.AccountID).Msg("coin purchase notification failed")
	}
	return nil
}

func (l *WebhookLogic) handleSubscriptionUpdate(payload json.RawMessage) error {
	var body struct {
		AccountID              uint64 `json:"account_id"`
		Plan                   string `json:"plan"`
		ExternalSubscriptionID string `json:"external_subscription_id"`
		CurrentPeriodEnd       int64  `json:"current_period_end"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return err
	}

	var periodEnd *time.Time
	if body.CurrentPeriodEnd > 0 {
		t := time.Unix(body.CurrentPeriodEnd, 0)
		periodEnd = &t
	}
	if _, err := l.subscriptionDAO.Upsert(
		body.AccountID, body.Plan, models.SubscriptionActive, periodEnd, body.ExternalSubscriptionID,
	); err != nil {
		return err
	}

	if _, err := l.notificationDAO.CreateNotification(
		body.AccountID,
		"Subscription active",
		fmt.Sprintf("Your %s plan is active.", body.Plan),
		models.SeveritySuccess,
	); err != nil {
		log.Warn().Err(err).Uint64("account_id", body.AccountID).Msg("subscription notification failed")
	}
	return nil
}

func (l *WebhookLogic) handleSubscriptionCanceled(payload json.RawMessage) error {
	var body struct {
		AccountID uint64 `json:"account_id"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return err
	}

	if err := l.subscriptionDAO.UpdateStatus(body.AccountID, models.SubscriptionCanceled); err != nil {
		return err
	}

	if _, err := l.notificationDAO.CreateNotification(
		body.AccountID,
		"Subscription canceled",
		"Your subscription has been canceled.",
		models.SeverityWarning,
	); err != nil {
		log.Warn().Err(err).Uint64("account_id", body.AccountID).Msg("cancellation notification failed")
	}
	return nil
}

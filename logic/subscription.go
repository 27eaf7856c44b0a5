package logic

import (
	"errors"
	"fmt"
	"time"

	"collabos-backend/dao"
	"collabos-backend/models"
	"collabos-backend/pkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrUnknownPlan = errors.New("unknown plan")
	// ErrProviderManaged means the account's subscription is governed by
	// payment-provider webhooks and cannot be replaced with a coin-paid one.
	ErrProviderManaged = errors.New("subscription is managed by the payment provider")
)

// Coin prices and period for coin-paid subscription plans.
var planCoinPrices = map[string]int64{
	"pro":   400,
	"elite": 900,
}

const coinPlanPeriod = 30 * 24 * time.Hour

// SubscriptionLogic handles subscription state, including lazy expiry of
// coin-paid subscriptions. Subscriptions carrying an external provider ID
// are governed entirely by payment webhooks and are never mutated here.
type SubscriptionLogic struct {
	db              *gorm.DB
	accountDAO      *dao.AccountDAO
	subscriptionDAO *dao.SubscriptionDAO
	notificationDAO *dao.NotificationDAO
	ledger          *LedgerLogic
	mailer          pkg.Mailer
}

func NewSubscriptionLogic(
	db *gorm.DB,
	accountDAO *dao.AccountDAO,
	subscriptionDAO *dao.SubscriptionDAO,
	notificationDAO *dao.NotificationDAO,
	ledger *LedgerLogic,
	mailer pkg.Mailer,
) *SubscriptionLogic {
	return &SubscriptionLogic{
		db:              db,
		accountDAO:      accountDAO,
		subscriptionDAO: subscriptionDAO,
		notificationDAO: notificationDAO,
		ledger:          ledger,
		mailer:          mailer,
	}
}

// Reconcile lazily expires a coin-paid subscription whose period has
// passed. No-op when there is no subscription, the subscription is not
// active, it has no period end, or it has an external provider ID. Returns
// whether an expiry was applied. There is no background scheduler; callers
// invoke this on the subscription read path.
func (l *SubscriptionLogic) Reconcile(accountID uint64) (bool, error) {
	sub, err := l.subscriptionDAO.GetByAccount(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if sub.Status != models.SubscriptionActive ||
		sub.CurrentPeriodEnd == nil ||
		sub.ExternalSubscriptionID != "" {
		return false, nil
	}
	if sub.CurrentPeriodEnd.After(time.Now()) {
		return false, nil
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := l.subscriptionDAO.WithTx(tx).UpdateStatus(accountID, models.SubscriptionExpired); err != nil {
			return err
		}
		return l.accountDAO.WithTx(tx).UpdateTier(accountID, models.TierFree)
	})
	if err != nil {
		return false, err
	}

	if _, err := l.notificationDAO.CreateNotification(
		accountID,
		"Subscription expired",
		fmt.Sprintf("Your %s plan has expired. Renew it to keep your benefits.", sub.Plan),
		models.SeverityWarning,
	); err != nil {
		log.Warn().Err(err).Uint64("account_id", accountID).Msg("subscription expiry notification failed")
	}
	l.sendSubscriptionEmail(accountID, "Your subscription has expired",
		fmt.Sprintf("Your %s plan ended on %s.", sub.Plan, sub.CurrentPeriodEnd.Format(time.RFC1123)))

	return true, nil
}

// GetSubscription reconciles and then returns the subscription for an
// account; nil when the account has none.
func (l *SubscriptionLogic) GetSubscription(accountID uint64) (*models.Subscription, error) {
	if _, err := l.Reconcile(accountID); err != nil {
		return nil, err
	}
	sub, err := l.subscriptionDAO.GetByAccount(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// RedeemWithCoins buys a plan period with coins. The resulting
// subscription has no external ID and is therefore subject to lazy expiry.
// An active provider-managed subscription is never replaced here; its state
// belongs to the payment webhooks alone.
func (l *SubscriptionLogic) RedeemWithCoins(accountID uint64, plan string) (*models.Subscription, error) {
	price, ok := planCoinPrices[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	if existing, err := l.subscriptionDAO.GetByAccount(accountID); err == nil {
		if existing.Status == models.SubscriptionActive && existing.ExternalSubscriptionID != "" {
			return nil, ErrProviderManaged
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	account, err := l.accountDAO.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if account.Coins < price {
		return nil, ErrInsufficientCoins
	}

	referenceID := "sub-redeem-" + uuid.NewString()
	if _, err := l.ledger.AddCoins(accountID, -price, fmt.Sprintf("%s plan redemption", plan), referenceID); err != nil {
		return nil, err
	}

	periodEnd := time.Now().Add(coinPlanPeriod)
	sub, err := l.subscriptionDAO.Upsert(accountID, plan, models.SubscriptionActive, &periodEnd, "")
	if err != nil {
		// The debit stands; surface the failure rather than guessing at
		// compensation here.
		return nil, err
	}

	if _, err := l.notificationDAO.CreateNotification(
		accountID,
		"Subscription active",
		fmt.Sprintf("Your %s plan is active until %s.", plan, periodEnd.Format("Jan 2, 2006")),
		models.SeveritySuccess,
	); err != nil {
		log.Warn().Err(err).Uint64("account_id", accountID).Msg("subscription notification failed")
	}
	l.sendSubscriptionEmail(accountID, "Subscription confirmed",
		fmt.Sprintf("Your %s plan is active until %s.", plan, periodEnd.Format(time.RFC1123)))

	return sub, nil
}

// sendSubscriptionEmail is fire-and-forget; failures are logged, never escalated.
func (l *SubscriptionLogic) sendSubscriptionEmail(accountID uint64, subject, body string) {
	account, err := l.accountDAO.GetAccountByID(accountID)
	if err != nil {
		log.Warn().Err(err).Uint64("account_id", accountID).Msg("subscription email skipped")
		return
	}
	if err := l.mailer.Send(account.Email, subject, body); err != nil {
		log.Warn().Err(err).Str("email", account.Email).Msg("subscription email failed")
	}
}

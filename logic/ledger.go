package logic

import (
	"errors"

	"collabos-backend/dao"
	"collabos-backend/models"

	"gorm.io/gorm"
)

// Coin amounts for the built-in reward and billing flows.
const (
	SignupBonus              = 100
	TaskCompletionReward     = 25
	AutomationCreationReward = 50
	ChatMessageCost          = 5
)

var (
	// ErrDuplicateReference means a ledger entry with the reference ID
	// already exists; the call did not mutate the balance.
	ErrDuplicateReference = errors.New("duplicate reference")
	// ErrMissingReference means the caller passed an empty reference ID.
	// Callers that genuinely don't need duplicate protection must pass an
	// explicitly random ID so the unprotected case stays visible.
	ErrMissingReference = errors.New("reference id is required")
	ErrAccountNotFound  = errors.New("account not found")
	ErrOperationFailed  = errors.New("operation failed")
	// ErrInsufficientCoins is returned by callers that pre-check the
	// balance; the ledger itself clamps at zero instead of rejecting.
	ErrInsufficientCoins = errors.New("insufficient coins")
)

// CoinResult is the outcome of a ledger mutation
type CoinResult struct {
	Success    bool                `json:"success"`
	NewBalance int64               `json:"new_balance"`
	NewTier    models.Tier         `json:"new_tier"`
	Entry      *models.LedgerEntry `json:"transaction,omitempty"`
}

// LedgerLogic handles atomic coin balance mutations with an immutable
// transaction log. The balance update, tier recompute and log insert are
// applied in one database transaction; a reader never observes one without
// the others.
type LedgerLogic struct {
	db         *gorm.DB
	accountDAO *dao.AccountDAO
	ledgerDAO  *dao.LedgerDAO
}

func NewLedgerLogic(db *gorm.DB, accountDAO *dao.AccountDAO, ledgerDAO *dao.LedgerDAO) *LedgerLogic {
	return &LedgerLogic{
		db:         db,
		accountDAO: accountDAO,
		ledgerDAO:  ledgerDAO,
	}
}

// AddCoins applies a signed coin delta to an account. The new balance is
// floored at zero; debits are not checked for sufficiency. referenceID is
// the idempotency key: a second call with the same reference is rejected
// without mutating anything and returns the current balance and tier with
// ErrDuplicateReference.
func (l *LedgerLogic) AddCoins(accountID uint64, amount int64, reason, referenceID string) (CoinResult, error) {
	if referenceID == "" {
		return CoinResult{NewTier: models.TierFree}, ErrMissingReference
	}

	var result CoinResult
	err := l.db.Transaction(func(tx *gorm.DB) error {
		accounts := l.accountDAO.WithTx(tx)
		ledger := l.ledgerDAO.WithTx(tx)

		exists, err := ledger.ReferenceExists(referenceID)
		if err != nil {
			return err
		}
		if exists {
			account, err := accounts.GetAccountByID(accountID)
			if err != nil {
				return err
			}
			result = CoinResult{NewBalance: account.Coins, NewTier: account.Tier}
			return ErrDuplicateReference
		}

		// Single guarded UPDATE so concurrent mutations serialize on the row.
		if err := accounts.ApplyCoinDelta(accountID, amount); err != nil {
			return err
		}
		account, err := accounts.GetAccountByID(accountID)
		if err != nil {
			return err
		}

		newTier := ClassifyTier(account.Coins)
		if newTier != account.Tier {
			if err := accounts.UpdateTier(accountID, newTier); err != nil {
				return err
			}
		}

		entry, err := ledger.CreateEntry(accountID, amount, reason, referenceID)
		if err != nil {
			return err
		}

		result = CoinResult{
			Success:    true,
			NewBalance: account.Coins,
			NewTier:    newTier,
			Entry:      entry,
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateReference):
			return result, ErrDuplicateReference
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Lost the race on the unique reference index to a concurrent
			// call; report duplicate with the committed state.
			if account, aerr := l.accountDAO.GetAccountByID(accountID); aerr == nil {
				return CoinResult{NewBalance: account.Coins, NewTier: account.Tier}, ErrDuplicateReference
			}
			return CoinResult{NewTier: models.TierFree}, ErrDuplicateReference
		case errors.Is(err, gorm.ErrRecordNotFound):
			return CoinResult{NewBalance: 0, NewTier: models.TierFree}, ErrAccountNotFound
		default:
			return CoinResult{NewTier: models.TierFree}, ErrOperationFailed
		}
	}
	return result, nil
}

// History retrieves the ledger audit log for an account, newest first
func (l *LedgerLogic) History(accountID uint64, limit int) ([]models.LedgerEntry, error) {
	return l.ledgerDAO.ListEntriesByAccount(accountID, limit)
}

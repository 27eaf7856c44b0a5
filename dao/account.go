package dao

import (
	"collabos-backend/models"

	"gorm.io/gorm"
)

// AccountDAO handles account-related database operations
type AccountDAO struct {
	db *gorm.DB
}

func NewAccountDAO(db *gorm.DB) *AccountDAO {
	return &AccountDAO{db: db}
}

// WithTx returns a copy of the DAO bound to the given transaction
func (d *AccountDAO) WithTx(tx *gorm.DB) *AccountDAO {
	return &AccountDAO{db: tx}
}

// CreateAccount creates a new account
func (d *AccountDAO) CreateAccount(email, name, passwordHash string) (*models.Account, error) {
	account := &models.Account{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Tier:         models.TierFree,
	}
	if err := d.db.Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccountByID retrieves an account by ID
func (d *AccountDAO) GetAccountByID(id uint64) (*models.Account, error) {
	var account models.Account
	if err := d.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByEmail retrieves an account by email
func (d *AccountDAO) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := d.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ApplyCoinDelta applies a signed coin delta to the account balance,
// clamping the result at zero in a single UPDATE so concurrent mutations
// serialize on the row. Returns gorm.ErrRecordNotFound if no row matched.
func (d *AccountDAO) ApplyCoinDelta(id uint64, delta int64) error {
	res := d.db.Model(&models.Account{}).
		Where("id = ?", id).
		Update("coins", gorm.Expr(
			"CASE WHEN coins + ? < 0 THEN 0 ELSE coins + ? END", delta, delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateTier persists the cached tier for an account
func (d *AccountDAO) UpdateTier(id uint64, tier models.Tier) error {
	return d.db.Model(&models.Account{}).
		Where("id = ?", id).
		Update("tier", tier).Error
}

package logic

import (
	"errors"
	"fmt"
	"time"

	"collabos-backend/config"
	"collabos-backend/dao"
	"collabos-backend/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AccountLogic handles registration, login and profile reads
type AccountLogic struct {
	accountDAO *dao.AccountDAO
	ledger     *LedgerLogic
}

func NewAccountLogic(accountDAO *dao.AccountDAO, ledger *LedgerLogic) *AccountLogic {
	return &AccountLogic{
		accountDAO: accountDAO,
		ledger:     ledger,
	}
}

// Register creates an account and credits the one-time signup bonus
func (l *AccountLogic) Register(email, name, password string) (*models.Account, error) {
	if _, err := l.accountDAO.GetAccountByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account, err := l.accountDAO.CreateAccount(email, name, string(hash))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	referenceID := fmt.Sprintf("signup-bonus-%d", account.ID)
	if _, err := l.ledger.AddCoins(account.ID, SignupBonus, "signup bonus", referenceID); err != nil {
		log.Warn().Err(err).Uint64("account_id", account.ID).Msg("signup bonus failed")
		return account, nil
	}

	return l.accountDAO.GetAccountByID(account.ID)
}

// Login verifies credentials and issues a JWT
func (l *AccountLogic) Login(email, password string) (*models.Account, string, time.Time, error) {
	account, err := l.accountDAO.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expireAt, err := l.generateJWT(account.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, expireAt, nil
}

func (l *AccountLogic) generateJWT(accountID uint64) (string, time.Time, error) {
	expireAt := time.Now().Add(time.Duration(config.GlobalConfig.Auth.ExpHour) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"exp":        expireAt.Unix(),
	})
	tokenString, err := token.SignedString([]byte(config.GlobalConfig.Auth.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expireAt, nil
}

// Profile is an account together with its tier progress
type Profile struct {
	Account  *models.Account `json:"account"`
	Progress TierProgress    `json:"progress"`
}

// GetProfile retrieves an account and its progress toward the next tier
func (l *AccountLogic) GetProfile(accountID uint64) (*Profile, error) {
	account, err := l.accountDAO.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &Profile{
		Account:  account,
		Progress: ProgressInfo(account.Coins),
	}, nil
}

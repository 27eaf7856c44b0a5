package controller

import (
	"net/http"

	"collabos-backend/logic"

	"github.com/gin-gonic/gin"
)

// AccountController handles HTTP requests for accounts and auth
type AccountController struct {
	accountLogic *logic.AccountLogic
	ledgerLogic  *logic.LedgerLogic
}

func NewAccountController(accountLogic *logic.AccountLogic, ledgerLogic *logic.LedgerLogic) *AccountController {
	return &AccountController{
		accountLogic: accountLogic,
		ledgerLogic:  ledgerLogic,
	}
}

// Register handles POST /auth/register
func (c *AccountController) Register(ctx *gin.Context) {
	type Request struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := c.accountLogic.Register(req.Email, req.Name, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, account)
}

// Login handles POST /auth/login
func (c *AccountController) Login(ctx *gin.Context) {
	type Request struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, expireAt, err := c.accountLogic.Login(req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"account":   account,
		"token":     token,
		"expire_at": expireAt,
	})
}

// GetProfile handles GET /account
func (c *AccountController) GetProfile(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	profile, err := c.accountLogic.GetProfile(accountID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// GetLedger handles GET /account/ledger
func (c *AccountController) GetLedger(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	entries, err := c.ledgerLogic.History(accountID, 100)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

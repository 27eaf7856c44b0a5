package controller

import (
	"errors"
	"net/http"
	"strconv"

	"collabos-backend/logic"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parseUintParam parses a numeric path parameter, writing the 400 itself
func parseUintParam(ctx *gin.Context, name string) (uint64, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, err
	}
	return v, nil
}

// extractAccountID reads the authenticated account ID placed in the
// context by the auth middleware
func extractAccountID(c *gin.Context) (uint64, error) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
		return 0, errors.New("user not found in context")
	}

	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user claims"})
		return 0, errors.New("invalid user claims")
	}

	accountID, ok := claims["account_id"].(float64)
	if !ok || accountID <= 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "account_id not found in token"})
		return 0, errors.New("account_id not found in token")
	}

	return uint64(accountID), nil
}

// respondError maps logic-layer errors to HTTP responses
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrNotAuthorized):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, logic.ErrAccountNotFound),
		errors.Is(err, logic.ErrMembershipNotFound),
		errors.Is(err, logic.ErrAutomationNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrInsufficientCoins):
		ctx.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrDuplicateReference),
		errors.Is(err, logic.ErrAlreadyMember),
		errors.Is(err, logic.ErrAutomationExists),
		errors.Is(err, logic.ErrProviderManaged),
		errors.Is(err, logic.ErrEmailTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrSelfRoleChange),
		errors.Is(err, logic.ErrSelfRemoval),
		errors.Is(err, logic.ErrOwnerImmutable),
		errors.Is(err, logic.ErrInvalidRole),
		errors.Is(err, logic.ErrUnknownPlan),
		errors.Is(err, logic.ErrWorkspaceLimit),
		errors.Is(err, logic.ErrProjectLimit),
		errors.Is(err, logic.ErrContextLimit),
		errors.Is(err, logic.ErrDailyLimitReached):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package controller

import (
	"net/http"

	"collabos-backend/logic"
	"collabos-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AutomationController handles HTTP requests for workspace automations
type AutomationController struct {
	automationLogic *logic.AutomationLogic
}

func NewAutomationController(automationLogic *logic.AutomationLogic) *AutomationController {
	return &AutomationController{automationLogic: automationLogic}
}

// CreateAutomation handles POST /workspaces/:id/automations
func (c *AutomationController) CreateAutomation(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	type Request struct {
		Type string `json:"type" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := c.automationLogic.CreateSetting(workspaceID, models.AutomationType(req.Type), accountID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, setting)
}

// ToggleAutomation handles PATCH /workspaces/:id/automations/:type
func (c *AutomationController) ToggleAutomation(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	type Request struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	automationType := models.AutomationType(ctx.Param("type"))
	if err := c.automationLogic.ToggleSetting(workspaceID, automationType, accountID, *req.Enabled); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListAutomations handles GET /workspaces/:id/automations
func (c *AutomationController) ListAutomations(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	settings, err := c.automationLogic.ListSettings(workspaceID, accountID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

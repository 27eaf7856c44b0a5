package controller

import (
	"net/http"

	"collabos-backend/logic"
	"collabos-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkspaceController handles HTTP requests for workspaces and members
type WorkspaceController struct {
	workspaceLogic *logic.WorkspaceLogic
}

func NewWorkspaceController(workspaceLogic *logic.WorkspaceLogic) *WorkspaceController {
	return &WorkspaceController{workspaceLogic: workspaceLogic}
}

// CreateWorkspace handles POST /workspaces
func (c *WorkspaceController) CreateWorkspace(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	type Request struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := c.workspaceLogic.CreateWorkspace(accountID, req.Name, req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, ws)
}

// ListWorkspaces handles GET /workspaces
func (c *WorkspaceController) ListWorkspaces(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaces, err := c.workspaceLogic.ListWorkspaces(accountID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, workspaces)
}

// GetWorkspace handles GET /workspaces/:id
func (c *WorkspaceController) GetWorkspace(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	ws, err := c.workspaceLogic.GetWorkspace(accountID, workspaceID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ws)
}

// ListMembers handles GET /workspaces/:id/members
func (c *WorkspaceController) ListMembers(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	members, err := c.workspaceLogic.ListMembers(accountID, workspaceID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// AddMember handles POST /workspaces/:id/members
func (c *WorkspaceController) AddMember(ctx *gin.Context) {
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
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	membership, err := c.workspaceLogic.AddMember(accountID, workspaceID, req.Email, models.Role(req.Role))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, membership)
}

// ChangeMemberRole handles PATCH /workspaces/:id/members/:accountId
func (c *WorkspaceController) ChangeMemberRole(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}
	targetID, err := parseUintParam(ctx, "accountId")
	if err != nil {
		return
	}

	type Request struct {
		Role string `json:"role" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.workspaceLogic.ChangeMemberRole(accountID, workspaceID, targetID, models.Role(req.Role)); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RemoveMember handles DELETE /workspaces/:id/members/:accountId
func (c *WorkspaceController) RemoveMember(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}
	targetID, err := parseUintParam(ctx, "accountId")
	if err != nil {
		return
	}

	if err := c.workspaceLogic.RemoveMember(accountID, workspaceID, targetID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

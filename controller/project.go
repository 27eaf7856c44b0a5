package controller

import (
	"net/http"

	"collabos-backend/logic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectController handles HTTP requests for projects
type ProjectController struct {
	projectLogic *logic.ProjectLogic
}

func NewProjectController(projectLogic *logic.ProjectLogic) *ProjectController {
	return &ProjectController{projectLogic: projectLogic}
}

// CreateProject handles POST /workspaces/:id/projects
func (c *ProjectController) CreateProject(ctx *gin.Context) {
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
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := c.projectLogic.CreateProject(accountID, workspaceID, req.Name, req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// ListProjects handles GET /workspaces/:id/projects
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	projects, err := c.projectLogic.ListProjects(accountID, workspaceID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// GetProject handles GET /projects/:id
func (c *ProjectController) GetProject(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	project, err := c.projectLogic.GetProject(accountID, projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

package controller

import (
	"net/http"

	"collabos-backend/logic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskController handles HTTP requests for tasks
type TaskController struct {
	taskLogic *logic.TaskLogic
}

func NewTaskController(taskLogic *logic.TaskLogic) *TaskController {
	return &TaskController{taskLogic: taskLogic}
}

// CreateTask handles POST /projects/:id/tasks
func (c *TaskController) CreateTask(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	type Request struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		AssigneeID  *uint64 `json:"assignee_id"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskLogic.CreateTask(accountID, projectID, req.Title, req.Description, req.AssigneeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

// ListTasks handles GET /projects/:id/tasks
func (c *TaskController) ListTasks(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	tasks, err := c.taskLogic.ListTasks(accountID, projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

// CompleteTask handles POST /tasks/:id/complete
func (c *TaskController) CompleteTask(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	task, err := c.taskLogic.CompleteTask(accountID, taskID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// AssignTask handles PATCH /tasks/:id/assignee
func (c *TaskController) AssignTask(ctx *gin.Context) {
	accountID, err := extractAccountID(ctx)
	if err != nil {
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	type Request struct {
		AssigneeID *uint64 `json:"assignee_id"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskLogic.AssignTask(accountID, taskID, req.AssigneeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

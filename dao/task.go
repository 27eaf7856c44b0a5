package dao

import (
	"time"

	"collabos-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskDAO handles task-related database operations
type TaskDAO struct {
	db *gorm.DB
}

func NewTaskDAO(db *gorm.DB) *TaskDAO {
	return &TaskDAO{db: db}
}

// CreateTask creates a new task in a project
func (d *TaskDAO) CreateTask(projectID, workspaceID uuid.UUID, title, description string, assigneeID *uint64, createdBy uint64) (*models.Task, error) {
	t := &models.Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		WorkspaceID: workspaceID,
		Title:       title,
		Description: description,
		Status:      models.TaskTodo,
		AssigneeID:  assigneeID,
		CreatedBy:   createdBy,
	}
	if err := d.db.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTaskByID retrieves a task by ID
func (d *TaskDAO) GetTaskByID(id uuid.UUID) (*models.Task, error) {
	var t models.Task
	if err := d.db.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasksByProject retrieves all tasks in a project
func (d *TaskDAO) ListTasksByProject(projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := d.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus updates the status of a task, stamping CompletedAt when done
func (d *TaskDAO) UpdateTaskStatus(id uuid.UUID, status models.TaskStatus) error {
	updates := map[string]interface{}{"status": status}
	if status == models.TaskDone {
		now := time.Now()
		updates["completed_at"] = &now
	}
	return d.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateTaskAssignee reassigns a task
func (d *TaskDAO) UpdateTaskAssignee(id uuid.UUID, assigneeID *uint64) error {
	return d.db.Model(&models.Task{}).Where("id = ?", id).Update("assignee_id", assigneeID).Error
}

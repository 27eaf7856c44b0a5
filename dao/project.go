package dao

import (
	"collabos-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectDAO handles project-related database operations
type ProjectDAO struct {
	db *gorm.DB
}

func NewProjectDAO(db *gorm.DB) *ProjectDAO {
	return &ProjectDAO{db: db}
}

// CreateProject creates a new project in a workspace
func (d *ProjectDAO) CreateProject(workspaceID uuid.UUID, name, description string, createdBy uint64) (*models.Project, error) {
	p := &models.Project{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
	}
	if err := d.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetProjectByID retrieves a project by ID
func (d *ProjectDAO) GetProjectByID(id uuid.UUID) (*models.Project, error) {
	var p models.Project
	if err := d.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProjectsByWorkspace retrieves all projects in a workspace
func (d *ProjectDAO) ListProjectsByWorkspace(workspaceID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	if err := d.db.Where("workspace_id = ?", workspaceID).Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// CountProjectsByWorkspace counts projects in a workspace
func (d *ProjectDAO) CountProjectsByWorkspace(workspaceID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Project{}).Where("workspace_id = ?", workspaceID).Count(&count).Error
	return count, err
}

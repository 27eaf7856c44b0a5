package dao

import (
	"collabos-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkspaceDAO handles workspace and membership database operations
type WorkspaceDAO struct {
	db *gorm.DB
}

func NewWorkspaceDAO(db *gorm.DB) *WorkspaceDAO {
	return &WorkspaceDAO{db: db}
}

// WithTx returns a copy of the DAO bound to the given transaction
func (d *WorkspaceDAO) WithTx(tx *gorm.DB) *WorkspaceDAO {
	return &WorkspaceDAO{db: tx}
}

// CreateWorkspace creates a new workspace
func (d *WorkspaceDAO) CreateWorkspace(name, description string, createdBy uint64) (*models.Workspace, error) {
	ws := &models.Workspace{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
	}
	if err := d.db.Create(ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

// GetWorkspaceByID retrieves a workspace by ID
func (d *WorkspaceDAO) GetWorkspaceByID(id uuid.UUID) (*models.Workspace, error) {
	var ws models.Workspace
	if err := d.db.Where("id = ?", id).First(&ws).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListWorkspacesByAccount retrieves all workspaces the account is a member of
func (d *WorkspaceDAO) ListWorkspacesByAccount(accountID uint64) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := d.db.
		Joins("JOIN workspace_memberships ON workspace_memberships.workspace_id = workspaces.id").
		Where("workspace_memberships.account_id = ?", accountID).
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// CountOwnedWorkspaces counts workspaces where the account holds the OWNER role
func (d *WorkspaceDAO) CountOwnedWorkspaces(accountID uint64) (int64, error) {
	var count int64
	err := d.db.Model(&models.WorkspaceMembership{}).
		Where("account_id = ? AND role = ?", accountID, models.RoleOwner).
		Count(&count).Error
	return count, err
}

// CreateMembership adds an account to a workspace with the given role
func (d *WorkspaceDAO) CreateMembership(workspaceID uuid.UUID, accountID uint64, role models.Role) (*models.WorkspaceMembership, error) {
	m := &models.WorkspaceMembership{
		WorkspaceID: workspaceID,
		AccountID:   accountID,
		Role:        role,
	}
	if err := d.db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// GetMembership retrieves the membership of an account in a workspace
func (d *WorkspaceDAO) GetMembership(workspaceID uuid.UUID, accountID uint64) (*models.WorkspaceMembership, error) {
	var m models.WorkspaceMembership
	err := d.db.Where("workspace_id = ? AND account_id = ?", workspaceID, accountID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMemberships retrieves all memberships of a workspace
func (d *WorkspaceDAO) ListMemberships(workspaceID uuid.UUID) ([]models.WorkspaceMembership, error) {
	var memberships []models.WorkspaceMembership
	if err := d.db.Where("workspace_id = ?", workspaceID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// UpdateMembershipRole changes the role on a membership row
func (d *WorkspaceDAO) UpdateMembershipRole(workspaceID uuid.UUID, accountID uint64, role models.Role) error {
	return d.db.Model(&models.WorkspaceMembership{}).
		Where("workspace_id = ? AND account_id = ?", workspaceID, accountID).
		Update("role", role).Error
}

// DeleteMembership removes an account from a workspace
func (d *WorkspaceDAO) DeleteMembership(workspaceID uuid.UUID, accountID uint64) error {
	return d.db.
		Where("workspace_id = ? AND account_id = ?", workspaceID, accountID).
		Delete(&models.WorkspaceMembership{}).Error
}

package dao

import (
	"collabos-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AutomationDAO handles automation-setting database operations
type AutomationDAO struct {
	db *gorm.DB
}

func NewAutomationDAO(db *gorm.DB) *AutomationDAO {
	return &AutomationDAO{db: db}
}

// GetSetting retrieves the setting for (workspace, type); gorm.ErrRecordNotFound when absent
func (d *AutomationDAO) GetSetting(workspaceID uuid.UUID, automationType models.AutomationType) (*models.AutomationSetting, error) {
	var s models.AutomationSetting
	err := d.db.Where("workspace_id = ? AND type = ?", workspaceID, automationType).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSetting creates the first setting row for (workspace, type)
func (d *AutomationDAO) CreateSetting(workspaceID uuid.UUID, automationType models.AutomationType, enabled bool, createdBy uint64) (*models.AutomationSetting, error) {
	s := &models.AutomationSetting{
		WorkspaceID: workspaceID,
		Type:        automationType,
		Enabled:     enabled,
		CreatedBy:   createdBy,
	}
	if err := d.db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateEnabled toggles an existing setting
func (d *AutomationDAO) UpdateEnabled(workspaceID uuid.UUID, automationType models.AutomationType, enabled bool) error {
	return d.db.Model(&models.AutomationSetting{}).
		Where("workspace_id = ? AND type = ?", workspaceID, automationType).
		Update("enabled", enabled).Error
}

// ListSettings retrieves all automation settings of a workspace
func (d *AutomationDAO) ListSettings(workspaceID uuid.UUID) ([]models.AutomationSetting, error) {
	var settings []models.AutomationSetting
	if err := d.db.Where("workspace_id = ?", workspaceID).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

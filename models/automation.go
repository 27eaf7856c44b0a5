package models

import (
	"time"

	"github.com/google/uuid"
)

// AutomationType identifies a workspace event that can fan notifications
// out to members.
type AutomationType string

const (
	AutomationTaskCompleted  AutomationType = "TASK_COMPLETED"
	AutomationMemberJoined   AutomationType = "MEMBER_JOINED"
	AutomationProjectCreated AutomationType = "PROJECT_CREATED"
)

// AutomationSetting is a per-(workspace, type) toggle. Absent rows mean
// disabled; the row is first created by the workspace OWNER.
type AutomationSetting struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkspaceID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_automation" json:"workspace_id"`
	Type        AutomationType `gorm:"not null;uniqueIndex:idx_workspace_automation" json:"type"`
	Enabled     bool           `gorm:"not null;default:true" json:"enabled"`
	CreatedBy   uint64         `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

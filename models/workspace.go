package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a workspace membership role. OWNER > ADMIN > MEMBER, no sub-roles.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Workspace represents a tenant workspace
type Workspace struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedBy   uint64    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkspaceMembership relates an account to a workspace with exactly one
// role. Unique per (workspace, account) pair; a workspace has exactly one
// OWNER, assigned at creation and never reassigned.
type WorkspaceMembership struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_account" json:"workspace_id"`
	AccountID   uint64    `gorm:"not null;uniqueIndex:idx_workspace_account;index" json:"account_id"`
	Role        Role      `gorm:"not null" json:"role"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

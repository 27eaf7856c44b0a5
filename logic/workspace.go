package logic

import (
	"errors"
	"fmt"

	"collabos-backend/dao"
	"collabos-backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceLimit = errors.New("workspace limit reached for tier")
	ErrAlreadyMember  = errors.New("account is already a member")
	ErrInvalidRole    = errors.New("role must be ADMIN or MEMBER")
)

// WorkspaceLogic handles workspace lifecycle and membership management
type WorkspaceLogic struct {
	db              *gorm.DB
	accountDAO      *dao.AccountDAO
	workspaceDAO    *dao.WorkspaceDAO
	notificationDAO *dao.NotificationDAO
	permissions     *PermissionLogic
	automations     *AutomationLogic
}

func NewWorkspaceLogic(
	db *gorm.DB,
	accountDAO *dao.AccountDAO,
	workspaceDAO *dao.WorkspaceDAO,
	notificationDAO *dao.NotificationDAO,
	permissions *PermissionLogic,
	automations *AutomationLogic,
) *WorkspaceLogic {
	return &WorkspaceLogic{
		db:              db,
		accountDAO:      accountDAO,
		workspaceDAO:    workspaceDAO,
		notificationDAO: notificationDAO,
		permissions:     permissions,
		automations:     automations,
	}
}

// CreateWorkspace creates a workspace with the creator as its sole OWNER.
// The number of workspaces an account can own is gated by its tier.
func (l *WorkspaceLogic) CreateWorkspace(actorID uint64, name, description string) (*models.Workspace, error) {
	account, err := l.accountDAO.GetAccountByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	limits := LimitsForTier(account.Tier)
	if limits.MaxOwnedWorkspaces >= 0 {
		owned, err := l.workspaceDAO.CountOwnedWorkspaces(actorID)
		if err != nil {
			return nil, err
		}
		if owned >= limits.MaxOwnedWorkspaces {
			return nil, ErrWorkspaceLimit
		}
	}

	var ws *models.Workspace
	err = l.db.Transaction(func(tx *gorm.DB) error {
		workspaces := l.workspaceDAO.WithTx(tx)
		created, err := workspaces.CreateWorkspace(name, description, actorID)
		if err != nil {
			return err
		}
		if _, err := workspaces.CreateMembership(created.ID, actorID, models.RoleOwner); err != nil {
			return err
		}
		ws = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// ListWorkspaces retrieves all workspaces the account belongs to
func (l *WorkspaceLogic) ListWorkspaces(actorID uint64) ([]models.Workspace, error) {
	return l.workspaceDAO.ListWorkspacesByAccount(actorID)
}

// GetWorkspace retrieves a workspace, member-gated
func (l *WorkspaceLogic) GetWorkspace(actorID uint64, workspaceID uuid.UUID) (*models.Workspace, error) {
	access, err := l.permissions.RequireMember(workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}
	return l.workspaceDAO.GetWorkspaceByID(workspaceID)
}

// ListMembers retrieves the memberships of a workspace, member-gated
func (l *WorkspaceLogic) ListMembers(actorID uint64, workspaceID uuid.UUID) ([]models.WorkspaceMembership, error) {
	access, err := l.permissions.RequireMember(workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}
	return l.workspaceDAO.ListMemberships(workspaceID)
}

// AddMember adds an account (by email) to a workspace as ADMIN or MEMBER.
// Requires ADMIN or OWNER. Fires the MEMBER_JOINED fan-out (excluding the
// actor) and notifies the new member directly.
func (l *WorkspaceLogic) AddMember(actorID uint64, workspaceID uuid.UUID, email string, role models.Role) (*models.WorkspaceMembership, error) {
	if role == "" {
		role = models.RoleMember
	}
	if role != models.RoleAdmin && role != models.RoleMember {
		return nil, ErrInvalidRole
	}

	access, err := l.permissions.RequireAdminOrOwner(workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}

	target, err := l.accountDAO.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if _, err := l.workspaceDAO.GetMembership(workspaceID, target.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	membership, err := l.workspaceDAO.CreateMembership(workspaceID, target.ID, role)
	if err != nil {
		return nil, err
	}

	ws, err := l.workspaceDAO.GetWorkspaceByID(workspaceID)
	if err != nil {
		return membership, nil
	}

	if _, err := l.notificationDAO.CreateNotification(
		target.ID,
		"Added to workspace",
		fmt.Sprintf("You were added to %q as %s.", ws.Name, role),
		models.SeverityInfo,
	); err != nil {
		log.Warn().Err(err).Uint64("account_id", target.ID).Msg("member welcome notification failed")
	}

	if _, err := l.automations.NotifyWorkspaceMembers(
		workspaceID,
		models.AutomationMemberJoined,
		"New member",
		fmt.Sprintf("%s joined %q.", target.Name, ws.Name),
		actorID,
	); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("member joined fan-out failed")
	}

	return membership, nil
}

// ChangeMemberRole changes another member's role, per the role rules
func (l *WorkspaceLogic) ChangeMemberRole(actorID uint64, workspaceID uuid.UUID, targetID uint64, role models.Role) error {
	return l.permissions.ChangeRole(workspaceID, actorID, targetID, role)
}

// RemoveMember removes a member, per the removal rules
func (l *WorkspaceLogic) RemoveMember(actorID uint64, workspaceID uuid.UUID, targetID uint64) error {
	return l.permissions.RemoveMember(workspaceID, actorID, targetID)
}

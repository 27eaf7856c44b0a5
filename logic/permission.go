package logic

import (
	"errors"

	"collabos-backend/dao"
	"collabos-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotAuthorized      = errors.New("not authorized")
	ErrSelfRoleChange     = errors.New("cannot change own role")
	ErrOwnerImmutable     = errors.New("owner role cannot be changed or removed")
	ErrSelfRemoval        = errors.New("cannot remove yourself")
	ErrMembershipNotFound = errors.New("membership not found")
)

// Access is the outcome of a workspace permission check
type Access struct {
	Allowed       bool
	Membership    *models.WorkspaceMembership
	IsSystemAdmin bool
}

// PermissionLogic resolves workspace role checks. Role comparisons live
// here and nowhere else; callers only see the three Require checks and the
// role-change/removal rules.
type PermissionLogic struct {
	accountDAO   *dao.AccountDAO
	workspaceDAO *dao.WorkspaceDAO
}

func NewPermissionLogic(accountDAO *dao.AccountDAO, workspaceDAO *dao.WorkspaceDAO) *PermissionLogic {
	return &PermissionLogic{
		accountDAO:   accountDAO,
		workspaceDAO: workspaceDAO,
	}
}

func (l *PermissionLogic) resolve(workspaceID uuid.UUID, accountID uint64) (Access, error) {
	account, err := l.accountDAO.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Access{}, nil
		}
		return Access{}, err
	}

	access := Access{IsSystemAdmin: account.IsSystemAdmin}
	membership, err := l.workspaceDAO.GetMembership(workspaceID, accountID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Access{}, err
		}
	} else {
		access.Membership = membership
	}
	return access, nil
}

// RequireMember allows any member of the workspace, or a system admin
func (l *PermissionLogic) RequireMember(workspaceID uuid.UUID, accountID uint64) (Access, error) {
	access, err := l.resolve(workspaceID, accountID)
	if err != nil {
		return access, err
	}
	access.Allowed = access.IsSystemAdmin || access.Membership != nil
	return access, nil
}

// RequireAdminOrOwner allows OWNER or ADMIN members, or a system admin
func (l *PermissionLogic) RequireAdminOrOwner(workspaceID uuid.UUID, accountID uint64) (Access, error) {
	access, err := l.resolve(workspaceID, accountID)
	if err != nil {
		return access, err
	}
	if access.IsSystemAdmin {
		access.Allowed = true
		return access, nil
	}
	if m := access.Membership; m != nil {
		access.Allowed = m.Role == models.RoleOwner || m.Role == models.RoleAdmin
	}
	return access, nil
}

// RequireOwner allows only the workspace OWNER, or a system admin
func (l *PermissionLogic) RequireOwner(workspaceID uuid.UUID, accountID uint64) (Access, error) {
	access, err := l.resolve(workspaceID, accountID)
	if err != nil {
		return access, err
	}
	if access.IsSystemAdmin {
		access.Allowed = true
		return access, nil
	}
	if m := access.Membership; m != nil {
		access.Allowed = m.Role == models.RoleOwner
	}
	return access, nil
}

// ChangeRole changes another member's role. Only the OWNER (or a system
// admin) may do this; nobody changes their own role, and the OWNER role is
// never assigned or taken away through this path.
func (l *PermissionLogic) ChangeRole(workspaceID uuid.UUID, actorID, targetID uint64, newRole models.Role) error {
	if actorID == targetID {
		return ErrSelfRoleChange
	}
	if newRole != models.RoleAdmin && newRole != models.RoleMember {
		return ErrOwnerImmutable
	}

	access, err := l.RequireOwner(workspaceID, actorID)
	if err != nil {
		return err
	}
	if !access.Allowed {
		return ErrNotAuthorized
	}

	target, err := l.workspaceDAO.GetMembership(workspaceID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return err
	}
	if target.Role == models.RoleOwner {
		return ErrOwnerImmutable
	}

	return l.workspaceDAO.UpdateMembershipRole(workspaceID, targetID, newRole)
}

// RemoveMember removes another member from the workspace. OWNER removes
// ADMIN or MEMBER; ADMIN removes only MEMBER; the OWNER is never removable
// and nobody removes themselves through this path.
func (l *PermissionLogic) RemoveMember(workspaceID uuid.UUID, actorID, targetID uint64) error {
	if actorID == targetID {
		return ErrSelfRemoval
	}

	access, err := l.resolve(workspaceID, actorID)
	if err != nil {
		return err
	}

	target, err := l.workspaceDAO.GetMembership(workspaceID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return err
	}
	if target.Role == models.RoleOwner {
		return ErrOwnerImmutable
	}

	allowed := access.IsSystemAdmin
	if !allowed && access.Membership != nil {
		switch access.Membership.Role {
		case models.RoleOwner:
			allowed = true
		case models.RoleAdmin:
			allowed = target.Role == models.RoleMember
		}
	}
	if !allowed {
		return ErrNotAuthorized
	}

	return l.workspaceDAO.DeleteMembership(workspaceID, targetID)
}

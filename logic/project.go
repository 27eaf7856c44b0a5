package logic

import (
	"errors"
	"fmt"

	"collabos-backend/dao"
	"collabos-backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrProjectLimit = errors.New("project limit reached for tier")

// ProjectLogic handles project management inside workspaces
type ProjectLogic struct {
	accountDAO  *dao.AccountDAO
	projectDAO  *dao.ProjectDAO
	permissions *PermissionLogic
	automations *AutomationLogic
}

func NewProjectLogic(
	accountDAO *dao.AccountDAO,
	projectDAO *dao.ProjectDAO,
	permissions *PermissionLogic,
	automations *AutomationLogic,
) *ProjectLogic {
	return &ProjectLogic{
		accountDAO:  accountDAO,
		projectDAO:  projectDAO,
		permissions: permissions,
		automations: automations,
	}
}

// CreateProject creates a project in a workspace, member-gated. The number
// of projects per workspace is gated by the acting account's tier.
func (l *ProjectLogic) CreateProject(actorID uint64, workspaceID uuid.UUID, name, description string) (*models.Project, error) {
	access, err := l.permissions.RequireMember(workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}

	account, err := l.accountDAO.GetAccountByID(actorID)
	if err != nil {
		return nil, err
	}
	limits := LimitsForTier(account.Tier)
	if limits.MaxProjectsPerWorkspace >= 0 {
		count, err := l.projectDAO.CountProjectsByWorkspace(workspaceID)
		if err != nil {
			return nil, err
		}
		if count >= limits.MaxProjectsPerWorkspace {
			return nil, ErrProjectLimit
		}
	}

	project, err := l.projectDAO.CreateProject(workspaceID, name, description, actorID)
	if err != nil {
		return nil, err
	}

	if _, err := l.automations.NotifyWorkspaceMembers(
		workspaceID,
		models.AutomationProjectCreated,
		"New project",
		fmt.Sprintf("Project %q was created.", name),
		actorID,
	); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("project created fan-out failed")
	}

	return project, nil
}

// ListProjects retrieves the projects of a workspace, member-gated
func (l *ProjectLogic) ListProjects(actorID uint64, workspaceID uuid.UUID) ([]models.Project, error) {
	access, err := l.permissions.RequireMember(workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}
	return l.projectDAO.ListProjectsByWorkspace(workspaceID)
}

// GetProject retrieves a single project, member-gated
func (l *ProjectLogic) GetProject(actorID uint64, projectID uuid.UUID) (*models.Project, error) {
	project, err := l.projectDAO.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	access, err := l.permissions.RequireMember(project.WorkspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}
	return project, nil
}

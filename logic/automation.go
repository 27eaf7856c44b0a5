package logic

import (
	"errors"
	"fmt"
	"sync/atomic"

	"collabos-backend/dao"
	"collabos-backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrAutomationExists   = errors.New("automation already configured")
	ErrAutomationNotFound = errors.New("automation not configured")
)

// AutomationLogic handles per-workspace automation settings and the
// notification fan-out they drive.
type AutomationLogic struct {
	workspaceDAO    *dao.WorkspaceDAO
	automationDAO   *dao.AutomationDAO
	notificationDAO *dao.NotificationDAO
	ledger          *LedgerLogic
	permissions     *PermissionLogic
}

func NewAutomationLogic(
	workspaceDAO *dao.WorkspaceDAO,
	automationDAO *dao.AutomationDAO,
	notificationDAO *dao.NotificationDAO,
	ledger *LedgerLogic,
	permissions *PermissionLogic,
) *AutomationLogic {
	return &AutomationLogic{
		workspaceDAO:    workspaceDAO,
		automationDAO:   automationDAO,
		notificationDAO: notificationDAO,
		ledger:          ledger,
		permissions:     permissions,
	}
}

// NotifyWorkspaceMembers delivers one notification per workspace member,
// excluding excludeAccountID (0 excludes nobody). A no-op unless an enabled
// setting row exists for (workspace, type); an absent row means disabled.
// Deliveries are independent: each failure is logged and never aborts the
// others. Returns the number of successful deliveries.
func (l *AutomationLogic) NotifyWorkspaceMembers(
	workspaceID uuid.UUID,
	automationType models.AutomationType,
	title, message string,
	excludeAccountID uint64,
) (int, error) {
	setting, err := l.automationDAO.GetSetting(workspaceID, automationType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if !setting.Enabled {
		return 0, nil
	}

	memberships, err := l.workspaceDAO.ListMemberships(workspaceID)
	if err != nil {
		return 0, err
	}

	var delivered atomic.Int64
	g := new(errgroup.Group)
	for _, m := range memberships {
		if m.AccountID == excludeAccountID {
			continue
		}
		accountID := m.AccountID
		g.Go(func() error {
			if _, err := l.notificationDAO.CreateNotification(accountID, title, message, models.SeverityInfo); err != nil {
				log.Warn().Err(err).
					Uint64("account_id", accountID).
					Str("workspace_id", workspaceID.String()).
					Str("automation", string(automationType)).
					Msg("automation notification delivery failed")
				return nil
			}
			delivered.Add(1)
			return nil
		})
	}
	g.Wait()

	return int(delivered.Load()), nil
}

// CreateSetting creates the first setting row for (workspace, type). OWNER
// only. Creation awards a one-time coin bonus to the creator; the reference
// ID is derived from the workspace and type, so re-creating the same
// automation after a failure can never award twice.
func (l *AutomationLogic) CreateSetting(workspaceID uuid.UUID, automationType models.AutomationType, actorID uint64) (*models.AutomationSetting, error) {
	access, err := l.permissions.RequireOwner(workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}

	if _, err := l.automationDAO.GetSetting(workspaceID, automationType); err == nil {
		return nil, ErrAutomationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	setting, err := l.automationDAO.CreateSetting(workspaceID, automationType, true, actorID)
	if err != nil {
		return nil, err
	}

	referenceID := fmt.Sprintf("automation-reward-%s-%s", workspaceID, automationType)
	if _, err := l.ledger.AddCoins(actorID, AutomationCreationReward, "automation setup reward", referenceID); err != nil && !errors.Is(err, ErrDuplicateReference) {
		log.Warn().Err(err).Uint64("account_id", actorID).Msg("automation setup reward failed")
	}

	// The setting didn't exist before, so there is nobody subscribed to
	// fan out to; notify just the creator.
	if _, err := l.notificationDAO.CreateNotification(
		actorID,
		"Automation enabled",
		fmt.Sprintf("The %s automation is now active for this workspace.", automationType),
		models.SeveritySuccess,
	); err != nil {
		log.Warn().Err(err).Uint64("account_id", actorID).Msg("automation setup notification failed")
	}

	return setting, nil
}

// ToggleSetting enables or disables an existing automation. OWNER only.
func (l *AutomationLogic) ToggleSetting(workspaceID uuid.UUID, automationType models.AutomationType, actorID uint64, enabled bool) error {
	access, err := l.permissions.RequireOwner(workspaceID, actorID)
	if err != nil {
		return err
	}
	if !access.Allowed {
		return ErrNotAuthorized
	}

	if _, err := l.automationDAO.GetSetting(workspaceID, automationType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAutomationNotFound
		}
		return err
	}

	return l.automationDAO.UpdateEnabled(workspaceID, automationType, enabled)
}

// ListSettings retrieves the automation settings of a workspace, member-gated
func (l *AutomationLogic) ListSettings(workspaceID uuid.UUID, actorID uint64) ([]models.AutomationSetting, error) {
	access, err := l.permissions.RequireMember(workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}
	return l.automationDAO.ListSettings(workspaceID)
}

package logic

import (
	"fmt"
	"testing"

	"collabos-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyWorkspaceMembersExcludesActor(t *testing.T) {
	db := newTestDB(t)
	automations := newTestAutomations(db)

	owner := seedAccount(t, db, "a@test.io", 0)
	b := seedAccount(t, db, "b@test.io", 0)
	c := seedAccount(t, db, "c@test.io", 0)
	ws := seedWorkspace(t, db, owner.ID)
	addMembership(t, db, ws, b.ID, models.RoleMember)
	addMembership(t, db, ws, c.ID, models.RoleMember)

	_, err := automations.CreateSetting(ws.ID, models.AutomationTaskCompleted, owner.ID)
	require.NoError(t, err)

	delivered, err := automations.NotifyWorkspaceMembers(
		ws.ID, models.AutomationTaskCompleted, "Task completed", "a task was finished", b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)

	assert.Empty(t, filterByTitle(notificationsFor(t, db, b.ID), "Task completed"))
	assert.Len(t, filterByTitle(notificationsFor(t, db, owner.ID), "Task completed"), 1)
	assert.Len(t, filterByTitle(notificationsFor(t, db, c.ID), "Task completed"), 1)
}

func TestNotifyWorkspaceMembersRequiresEnabledSetting(t *testing.T) {
	db := newTestDB(t)
	automations := newTestAutomations(db)

	owner := seedAccount(t, db, "a@test.io", 0)
	b := seedAccount(t, db, "b@test.io", 0)
	ws := seedWorkspace(t, db, owner.ID)
	addMembership(t, db, ws, b.ID, models.RoleMember)

	// No setting row at all: silently does nothing
	delivered, err := automations.NotifyWorkspaceMembers(
		ws.ID, models.AutomationMemberJoined, "New member", "welcome", 0)
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.Empty(t, notificationsFor(t, db, b.ID))

	// Disabled setting row: same outcome
	_, err = automations.CreateSetting(ws.ID, models.AutomationMemberJoined, owner.ID)
	require.NoError(t, err)
	require.NoError(t, automations.ToggleSetting(ws.ID, models.AutomationMemberJoined, owner.ID, false))

	delivered, err = automations.NotifyWorkspaceMembers(
		ws.ID, models.AutomationMemberJoined, "New member", "welcome", 0)
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.Empty(t, filterByTitle(notificationsFor(t, db, b.ID), "New member"))
}

func TestCreateSettingOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	automations := newTestAutomations(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	admin := seedAccount(t, db, "admin@test.io", 0)
	ws := seedWorkspace(t, db, owner.ID)
	addMembership(t, db, ws, admin.ID, models.RoleAdmin)

	_, err := automations.CreateSetting(ws.ID, models.AutomationProjectCreated, admin.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	setting, err := automations.CreateSetting(ws.ID, models.AutomationProjectCreated, owner.ID)
	require.NoError(t, err)
	assert.True(t, setting.Enabled)

	_, err = automations.CreateSetting(ws.ID, models.AutomationProjectCreated, owner.ID)
	assert.ErrorIs(t, err, ErrAutomationExists)
}

func TestCreateSettingRewardIsOneTime(t *testing.T) {
	db := newTestDB(t)
	automations := newTestAutomations(db)
	ledger := newTestLedger(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	ws := seedWorkspace(t, db, owner.ID)

	_, err := automations.CreateSetting(ws.ID, models.AutomationTaskCompleted, owner.ID)
	require.NoError(t, err)

	account, err := ledger.accountDAO.GetAccountByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(AutomationCreationReward), account.Coins)

	// A direct replay of the reward reference cannot credit again
	referenceID := fmt.Sprintf("automation-reward-%s-%s", ws.ID, models.AutomationTaskCompleted)
	_, err = ledger.AddCoins(owner.ID, AutomationCreationReward, "automation setup reward", referenceID)
	assert.ErrorIs(t, err, ErrDuplicateReference)

	account, err = ledger.accountDAO.GetAccountByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(AutomationCreationReward), account.Coins)
}

func TestToggleSettingUnknownAutomation(t *testing.T) {
	db := newTestDB(t)
	automations := newTestAutomations(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	ws := seedWorkspace(t, db, owner.ID)

	err := automations.ToggleSetting(ws.ID, models.AutomationMemberJoined, owner.ID, true)
	assert.ErrorIs(t, err, ErrAutomationNotFound)
}

func TestListSettingsMemberGated(t *testing.T) {
	db := newTestDB(t)
	automations := newTestAutomations(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	outsider := seedAccount(t, db, "outsider@test.io", 0)
	ws := seedWorkspace(t, db, owner.ID)

	_, err := automations.CreateSetting(ws.ID, models.AutomationTaskCompleted, owner.ID)
	require.NoError(t, err)

	_, err = automations.ListSettings(ws.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	settings, err := automations.ListSettings(ws.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}

func filterByTitle(notifications []models.Notification, title string) []models.Notification {
	var out []models.Notification
	for _, n := range notifications {
		if n.Title == title {
			out = append(out, n)
		}
	}
	return out
}

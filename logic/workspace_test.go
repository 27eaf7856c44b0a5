package logic

import (
	"testing"

	"collabos-backend/dao"
	"collabos-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestWorkspaces(db *gorm.DB) *WorkspaceLogic {
	return NewWorkspaceLogic(
		db,
		dao.NewAccountDAO(db),
		dao.NewWorkspaceDAO(db),
		dao.NewNotificationDAO(db),
		newTestPermissions(db),
		newTestAutomations(db),
	)
}

func TestCreateWorkspaceAssignsOwner(t *testing.T) {
	db := newTestDB(t)
	workspaces := newTestWorkspaces(db)
	account := seedAccount(t, db, "creator@test.io", 0)

	ws, err := workspaces.CreateWorkspace(account.ID, "my space", "a place")
	require.NoError(t, err)
	assert.Equal(t, account.ID, ws.CreatedBy)

	m, err := dao.NewWorkspaceDAO(db).GetMembership(ws.ID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, m.Role)
}

func TestCreateWorkspaceTierLimit(t *testing.T) {
	db := newTestDB(t)
	workspaces := newTestWorkspaces(db)

	free := seedAccount(t, db, "free@test.io", 0)
	_, err := workspaces.CreateWorkspace(free.ID, "first", "")
	require.NoError(t, err)
	_, err = workspaces.CreateWorkspace(free.ID, "second", "")
	assert.ErrorIs(t, err, ErrWorkspaceLimit)

	// Membership in someone else's workspace does not count against the cap
	pro := seedAccount(t, db, "pro@test.io", 600)
	other, err := workspaces.CreateWorkspace(pro.ID, "pro space", "")
	require.NoError(t, err)
	addMembership(t, db, other, free.ID, models.RoleMember)
	_, err = workspaces.CreateWorkspace(free.ID, "still second", "")
	assert.ErrorIs(t, err, ErrWorkspaceLimit)

	// PRO owns up to five
	for i := 0; i < 4; i++ {
		_, err = workspaces.CreateWorkspace(pro.ID, "another", "")
		require.NoError(t, err)
	}
	_, err = workspaces.CreateWorkspace(pro.ID, "sixth", "")
	assert.ErrorIs(t, err, ErrWorkspaceLimit)
}

func TestAddMemberByEmail(t *testing.T) {
	db := newTestDB(t)
	workspaces := newTestWorkspaces(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	joiner := seedAccount(t, db, "joiner@test.io", 0)
	ws, err := workspaces.CreateWorkspace(owner.ID, "team", "")
	require.NoError(t, err)

	m, err := workspaces.AddMember(owner.ID, ws.ID, "joiner@test.io", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, m.Role)
	assert.Equal(t, joiner.ID, m.AccountID)

	// The new member gets a direct welcome notification
	assert.Len(t, filterByTitle(notificationsFor(t, db, joiner.ID), "Added to workspace"), 1)

	_, err = workspaces.AddMember(owner.ID, ws.ID, "joiner@test.io", models.RoleMember)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	_, err = workspaces.AddMember(owner.ID, ws.ID, "nobody@test.io", models.RoleMember)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = workspaces.AddMember(owner.ID, ws.ID, "joiner@test.io", models.RoleOwner)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAddMemberRequiresAdminOrOwner(t *testing.T) {
	db := newTestDB(t)
	workspaces := newTestWorkspaces(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	member := seedAccount(t, db, "member@test.io", 0)
	seedAccount(t, db, "new@test.io", 0)
	ws, err := workspaces.CreateWorkspace(owner.ID, "team", "")
	require.NoError(t, err)
	addMembership(t, db, ws, member.ID, models.RoleMember)

	_, err = workspaces.AddMember(member.ID, ws.ID, "new@test.io", models.RoleMember)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAddMemberFiresMemberJoinedFanOut(t *testing.T) {
	db := newTestDB(t)
	workspaces := newTestWorkspaces(db)
	automations := newTestAutomations(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	admin := seedAccount(t, db, "admin@test.io", 0)
	seedAccount(t, db, "new@test.io", 0)
	ws, err := workspaces.CreateWorkspace(owner.ID, "team", "")
	require.NoError(t, err)
	addMembership(t, db, ws, admin.ID, models.RoleAdmin)

	_, err = automations.CreateSetting(ws.ID, models.AutomationMemberJoined, owner.ID)
	require.NoError(t, err)

	// The admin adds the member; the admin is excluded from the fan-out
	_, err = workspaces.AddMember(admin.ID, ws.ID, "new@test.io", models.RoleMember)
	require.NoError(t, err)

	assert.Len(t, filterByTitle(notificationsFor(t, db, owner.ID), "New member"), 1)
	assert.Empty(t, filterByTitle(notificationsFor(t, db, admin.ID), "New member"))
}

func TestListWorkspacesByMembership(t *testing.T) {
	db := newTestDB(t)
	workspaces := newTestWorkspaces(db)

	a := seedAccount(t, db, "a@test.io", 600)
	b := seedAccount(t, db, "b@test.io", 0)

	ws1, err := workspaces.CreateWorkspace(a.ID, "one", "")
	require.NoError(t, err)
	_, err = workspaces.CreateWorkspace(a.ID, "two", "")
	require.NoError(t, err)
	addMembership(t, db, ws1, b.ID, models.RoleMember)

	mine, err := workspaces.ListWorkspaces(b.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ws1.ID, mine[0].ID)

	theirs, err := workspaces.ListWorkspaces(a.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 2)
}

func TestProjectLimitFollowsActorTier(t *testing.T) {
	db := newTestDB(t)
	workspaces := newTestWorkspaces(db)
	projects := NewProjectLogic(
		dao.NewAccountDAO(db),
		dao.NewProjectDAO(db),
		newTestPermissions(db),
		newTestAutomations(db),
	)

	free := seedAccount(t, db, "free@test.io", 0)
	pro := seedAccount(t, db, "pro@test.io", 600)
	ws, err := workspaces.CreateWorkspace(free.ID, "team", "")
	require.NoError(t, err)
	addMembership(t, db, ws, pro.ID, models.RoleMember)

	for i := 0; i < 3; i++ {
		_, err = projects.CreateProject(free.ID, ws.ID, "p", "")
		require.NoError(t, err)
	}
	_, err = projects.CreateProject(free.ID, ws.ID, "p4", "")
	assert.ErrorIs(t, err, ErrProjectLimit)

	// The cap is keyed to the acting account's tier, not the owner's
	_, err = projects.CreateProject(pro.ID, ws.ID, "p4", "")
	require.NoError(t, err)
}

func TestGetWorkspaceMemberGated(t *testing.T) {
	db := newTestDB(t)
	workspaces := newTestWorkspaces(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	outsider := seedAccount(t, db, "outsider@test.io", 0)
	ws, err := workspaces.CreateWorkspace(owner.ID, "team", "")
	require.NoError(t, err)

	_, err = workspaces.GetWorkspace(outsider.ID, ws.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	got, err := workspaces.GetWorkspace(owner.ID, ws.ID)
	require.NoError(t, err)
	assert.Equal(t, ws.ID, got.ID)
}

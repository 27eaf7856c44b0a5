package logic

import (
	"testing"

	"collabos-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireChecksByRole(t *testing.T) {
	db := newTestDB(t)
	perms := newTestPermissions(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	admin := seedAccount(t, db, "admin@test.io", 0)
	member := seedAccount(t, db, "member@test.io", 0)
	outsider := seedAccount(t, db, "outsider@test.io", 0)

	ws := seedWorkspace(t, db, owner.ID)
	addMembership(t, db, ws, admin.ID, models.RoleAdmin)
	addMembership(t, db, ws, member.ID, models.RoleMember)

	cases := []struct {
		name      string
		accountID uint64
		member    bool
		adminUp   bool
		ownerOnly bool
	}{
		{"owner", owner.ID, true, true, true},
		{"admin", admin.ID, true, true, false},
		{"member", member.ID, true, false, false},
		{"outsider", outsider.ID, false, false, false},
	}
	for _, c := range cases {
		access, err := perms.RequireMember(ws.ID, c.accountID)
		require.NoError(t, err)
		assert.Equal(t, c.member, access.Allowed, "%s RequireMember", c.name)

		access, err = perms.RequireAdminOrOwner(ws.ID, c.accountID)
		require.NoError(t, err)
		assert.Equal(t, c.adminUp, access.Allowed, "%s RequireAdminOrOwner", c.name)

		access, err = perms.RequireOwner(ws.ID, c.accountID)
		require.NoError(t, err)
		assert.Equal(t, c.ownerOnly, access.Allowed, "%s RequireOwner", c.name)
	}
}

func TestSystemAdminBypassesMembership(t *testing.T) {
	db := newTestDB(t)
	perms := newTestPermissions(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	sysadmin := seedAdmin(t, db, "root@test.io")
	ws := seedWorkspace(t, db, owner.ID)

	access, err := perms.RequireOwner(ws.ID, sysadmin.ID)
	require.NoError(t, err)
	assert.True(t, access.Allowed)
	assert.True(t, access.IsSystemAdmin)
	assert.Nil(t, access.Membership)
}

func TestChangeRoleRules(t *testing.T) {
	db := newTestDB(t)
	perms := newTestPermissions(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	admin := seedAccount(t, db, "admin@test.io", 0)
	member := seedAccount(t, db, "member@test.io", 0)
	ws := seedWorkspace(t, db, owner.ID)
	addMembership(t, db, ws, admin.ID, models.RoleAdmin)
	addMembership(t, db, ws, member.ID, models.RoleMember)

	// Owner promotes a member
	require.NoError(t, perms.ChangeRole(ws.ID, owner.ID, member.ID, models.RoleAdmin))
	m, err := perms.workspaceDAO.GetMembership(ws.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, m.Role)

	// Admins may not change roles
	err = perms.ChangeRole(ws.ID, admin.ID, member.ID, models.RoleMember)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// Nobody changes their own role
	err = perms.ChangeRole(ws.ID, owner.ID, owner.ID, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrSelfRoleChange)

	// OWNER is never assigned through this path
	err = perms.ChangeRole(ws.ID, owner.ID, member.ID, models.RoleOwner)
	assert.ErrorIs(t, err, ErrOwnerImmutable)

	// The owner's own role is never taken away
	err = perms.ChangeRole(ws.ID, admin.ID, owner.ID, models.RoleMember)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// Unknown target
	err = perms.ChangeRole(ws.ID, owner.ID, 9999, models.RoleMember)
	assert.ErrorIs(t, err, ErrMembershipNotFound)
}

func TestRemoveMemberRules(t *testing.T) {
	db := newTestDB(t)
	perms := newTestPermissions(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	admin := seedAccount(t, db, "admin@test.io", 0)
	admin2 := seedAccount(t, db, "admin2@test.io", 0)
	member := seedAccount(t, db, "member@test.io", 0)
	ws := seedWorkspace(t, db, owner.ID)
	addMembership(t, db, ws, admin.ID, models.RoleAdmin)
	addMembership(t, db, ws, admin2.ID, models.RoleAdmin)
	addMembership(t, db, ws, member.ID, models.RoleMember)

	// Admin cannot remove another admin
	err := perms.RemoveMember(ws.ID, admin.ID, admin2.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// Nobody removes the owner
	err = perms.RemoveMember(ws.ID, admin.ID, owner.ID)
	assert.ErrorIs(t, err, ErrOwnerImmutable)

	// Nobody removes themselves through this path
	err = perms.RemoveMember(ws.ID, member.ID, member.ID)
	assert.ErrorIs(t, err, ErrSelfRemoval)

	// Admin removes a plain member
	require.NoError(t, perms.RemoveMember(ws.ID, admin.ID, member.ID))

	// Owner removes an admin
	require.NoError(t, perms.RemoveMember(ws.ID, owner.ID, admin2.ID))

	memberships, err := perms.workspaceDAO.ListMemberships(ws.ID)
	require.NoError(t, err)
	assert.Len(t, memberships, 2)
}

func TestRemoveMemberSystemAdminOverride(t *testing.T) {
	db := newTestDB(t)
	perms := newTestPermissions(db)

	owner := seedAccount(t, db, "owner@test.io", 0)
	admin := seedAccount(t, db, "admin@test.io", 0)
	sysadmin := seedAdmin(t, db, "root@test.io")
	ws := seedWorkspace(t, db, owner.ID)
	addMembership(t, db, ws, admin.ID, models.RoleAdmin)

	// A system admin removes an admin without holding any membership,
	// but still cannot remove the owner.
	require.NoError(t, perms.RemoveMember(ws.ID, sysadmin.ID, admin.ID))
	err := perms.RemoveMember(ws.ID, sysadmin.ID, owner.ID)
	assert.ErrorIs(t, err, ErrOwnerImmutable)
}

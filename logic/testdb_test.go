package logic

import (
	"testing"

	"collabos-backend/dao"
	"collabos-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the in-memory database alive and shared
	// across goroutines.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.LedgerEntry{},
		&models.Workspace{},
		&models.WorkspaceMembership{},
		&models.Project{},
		&models.Task{},
		&models.AutomationSetting{},
		&models.Notification{},
		&models.Subscription{},
		&models.Conversation{},
		&models.Message{},
	))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email string, coins int64) *models.Account {
	t.Helper()
	account := &models.Account{
		Email:        email,
		Name:         email,
		PasswordHash: "test-hash",
		Coins:        coins,
		Tier:         ClassifyTier(coins),
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func seedAdmin(t *testing.T, db *gorm.DB, email string) *models.Account {
	t.Helper()
	account := &models.Account{
		Email:         email,
		Name:          email,
		PasswordHash:  "test-hash",
		Tier:          models.TierFree,
		IsSystemAdmin: true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func newTestLedger(db *gorm.DB) *LedgerLogic {
	return NewLedgerLogic(db, dao.NewAccountDAO(db), dao.NewLedgerDAO(db))
}

func newTestPermissions(db *gorm.DB) *PermissionLogic {
	return NewPermissionLogic(dao.NewAccountDAO(db), dao.NewWorkspaceDAO(db))
}

func newTestAutomations(db *gorm.DB) *AutomationLogic {
	return NewAutomationLogic(
		dao.NewWorkspaceDAO(db),
		dao.NewAutomationDAO(db),
		dao.NewNotificationDAO(db),
		newTestLedger(db),
		newTestPermissions(db),
	)
}

func seedWorkspace(t *testing.T, db *gorm.DB, ownerID uint64) *models.Workspace {
	t.Helper()
	workspaceDAO := dao.NewWorkspaceDAO(db)
	ws, err := workspaceDAO.CreateWorkspace("test workspace", "", ownerID)
	require.NoError(t, err)
	_, err = workspaceDAO.CreateMembership(ws.ID, ownerID, models.RoleOwner)
	require.NoError(t, err)
	return ws
}

func addMembership(t *testing.T, db *gorm.DB, ws *models.Workspace, accountID uint64, role models.Role) {
	t.Helper()
	_, err := dao.NewWorkspaceDAO(db).CreateMembership(ws.ID, accountID, role)
	require.NoError(t, err)
}

func notificationsFor(t *testing.T, db *gorm.DB, accountID uint64) []models.Notification {
	t.Helper()
	notifications, err := dao.NewNotificationDAO(db).ListNotificationsByAccount(accountID, false)
	require.NoError(t, err)
	return notifications
}

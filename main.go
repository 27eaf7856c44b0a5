package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"collabos-backend/config"
	"collabos-backend/controller"
	"collabos-backend/dao"
	"collabos-backend/logic"
	"collabos-backend/middleware"
	"collabos-backend/models"
	"collabos-backend/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}

	// Initialize database
	db, err := gorm.Open(postgres.Open(config.GlobalConfig.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// External clients and process-local state
	chatClient := pkg.NewChatClient(config.GlobalConfig.Chat.BaseURL, config.GlobalConfig.Chat.APIKey)
	dedup := pkg.NewDedupCache(
		time.Duration(config.GlobalConfig.Webhook.DedupTTLMinutes)*time.Minute,
		config.GlobalConfig.Webhook.DedupSoftCap,
	)
	mailer := pkg.LogMailer{}

	// Initialize DAOs
	accountDAO := dao.NewAccountDAO(db)
	ledgerDAO := dao.NewLedgerDAO(db)
	workspaceDAO := dao.NewWorkspaceDAO(db)
	projectDAO := dao.NewProjectDAO(db)
	taskDAO := dao.NewTaskDAO(db)
	automationDAO := dao.NewAutomationDAO(db)
	notificationDAO := dao.NewNotificationDAO(db)
	subscriptionDAO := dao.NewSubscriptionDAO(db)
	convoDAO := dao.NewConversationDAO(db)
	messageDAO := dao.NewMessageDAO(db)

	// Initialize Logics
	ledgerLogic := logic.NewLedgerLogic(db, accountDAO, ledgerDAO)
	permissionLogic := logic.NewPermissionLogic(accountDAO, workspaceDAO)
	automationLogic := logic.NewAutomationLogic(workspaceDAO, automationDAO, notificationDAO, ledgerLogic, permissionLogic)
	accountLogic := logic.NewAccountLogic(accountDAO, ledgerLogic)
	workspaceLogic := logic.NewWorkspaceLogic(db, accountDAO, workspaceDAO, notificationDAO, permissionLogic, automationLogic)
	projectLogic := logic.NewProjectLogic(accountDAO, projectDAO, permissionLogic, automationLogic)
	taskLogic := logic.NewTaskLogic(taskDAO, projectDAO, notificationDAO, ledgerLogic, permissionLogic, automationLogic)
	notificationLogic := logic.NewNotificationLogic(notificationDAO)
	subscriptionLogic := logic.NewSubscriptionLogic(db, accountDAO, subscriptionDAO, notificationDAO, ledgerLogic, mailer)
	webhookLogic := logic.NewWebhookLogic(dedup, subscriptionDAO, notificationDAO, ledgerLogic)
	chatLogic := logic.NewChatLogic(accountDAO, convoDAO, messageDAO, ledgerLogic, chatClient)

	// Initialize Controllers
	accountCtrl := controller.NewAccountController(accountLogic, ledgerLogic)
	workspaceCtrl := controller.NewWorkspaceController(workspaceLogic)
	projectCtrl := controller.NewProjectController(projectLogic)
	taskCtrl := controller.NewTaskController(taskLogic)
	automationCtrl := controller.NewAutomationController(automationLogic)
	notificationCtrl := controller.NewNotificationController(notificationLogic)
	subscriptionCtrl := controller.NewSubscriptionController(subscriptionLogic)
	webhookCtrl := controller.NewWebhookController(webhookLogic)
	chatCtrl := controller.NewChatController(chatLogic)

	// Setup Gin router
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	if len(config.GlobalConfig.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.GlobalConfig.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.POST("/auth/register", accountCtrl.Register)
	r.POST("/auth/login", accountCtrl.Login)
	r.POST("/webhooks/payment", webhookCtrl.HandlePaymentEvent)

	auth := r.Group("/", middleware.Auth)
	auth.GET("/account", accountCtrl.GetProfile)
	auth.GET("/account/ledger", accountCtrl.GetLedger)

	auth.POST("/workspaces", workspaceCtrl.CreateWorkspace)
	auth.GET("/workspaces", workspaceCtrl.ListWorkspaces)
	auth.GET("/workspaces/:id", workspaceCtrl.GetWorkspace)
	auth.GET("/workspaces/:id/members", workspaceCtrl.ListMembers)
	auth.POST("/workspaces/:id/members", workspaceCtrl.AddMember)
	auth.PATCH("/workspaces/:id/members/:accountId", workspaceCtrl.ChangeMemberRole)
	auth.DELETE("/workspaces/:id/members/:accountId", workspaceCtrl.RemoveMember)

	auth.POST("/workspaces/:id/projects", projectCtrl.CreateProject)
	auth.GET("/workspaces/:id/projects", projectCtrl.ListProjects)
	auth.GET("/projects/:id", projectCtrl.GetProject)
	auth.POST("/projects/:id/tasks", taskCtrl.CreateTask)
	auth.GET("/projects/:id/tasks", taskCtrl.ListTasks)
	auth.POST("/tasks/:id/complete", taskCtrl.CompleteTask)
	auth.PATCH("/tasks/:id/assignee", taskCtrl.AssignTask)

	auth.POST("/workspaces/:id/automations", automationCtrl.CreateAutomation)
	auth.GET("/workspaces/:id/automations", automationCtrl.ListAutomations)
	auth.PATCH("/workspaces/:id/automations/:type", automationCtrl.ToggleAutomation)

	auth.GET("/notifications", notificationCtrl.ListNotifications)
	auth.POST("/notifications/:id/read", notificationCtrl.MarkRead)
	auth.POST("/notifications/read-all", notificationCtrl.MarkAllRead)

	auth.GET("/subscription", subscriptionCtrl.GetSubscription)
	auth.POST("/subscription/redeem", subscriptionCtrl.RedeemSubscription)

	auth.POST("/conversations", chatCtrl.CreateConversation)
	auth.GET("/conversations", chatCtrl.ListConversations)
	auth.GET("/conversations/:id/messages", chatCtrl.GetMessages)
	auth.POST("/conversations/:id/messages", chatCtrl.SendMessage)

	// Run server
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

package logic

import (
	"errors"
	"fmt"

	"collabos-backend/dao"
	"collabos-backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TaskLogic handles task management and the completion reward flow
type TaskLogic struct {
	taskDAO         *dao.TaskDAO
	projectDAO      *dao.ProjectDAO
	notificationDAO *dao.NotificationDAO
	ledger          *LedgerLogic
	permissions     *PermissionLogic
	automations     *AutomationLogic
}

func NewTaskLogic(
	taskDAO *dao.TaskDAO,
	projectDAO *dao.ProjectDAO,
	notificationDAO *dao.NotificationDAO,
	ledger *LedgerLogic,
	permissions *PermissionLogic,
	automations *AutomationLogic,
) *TaskLogic {
	return &TaskLogic{
		taskDAO:         taskDAO,
		projectDAO:      projectDAO,
		notificationDAO: notificationDAO,
		ledger:          ledger,
		permissions:     permissions,
		automations:     automations,
	}
}

// CreateTask creates a task in a project, member-gated on the project's workspace
func (l *TaskLogic) CreateTask(actorID uint64, projectID uuid.UUID, title, description string, assigneeID *uint64) (*models.Task, error) {
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

	task, err := l.taskDAO.CreateTask(projectID, project.WorkspaceID, title, description, assigneeID, actorID)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil && *assigneeID != actorID {
		if _, err := l.notificationDAO.CreateNotification(
			*assigneeID,
			"Task assigned",
			fmt.Sprintf("You were assigned %q.", title),
			models.SeverityInfo,
		); err != nil {
			log.Warn().Err(err).Uint64("account_id", *assigneeID).Msg("task assignment notification failed")
		}
	}

	return task, nil
}

// ListTasks retrieves the tasks of a project, member-gated
func (l *TaskLogic) ListTasks(actorID uint64, projectID uuid.UUID) ([]models.Task, error) {
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
	return l.taskDAO.ListTasksByProject(projectID)
}

// CompleteTask marks a task done, awards the completion bonus to the actor
// and fires the TASK_COMPLETED fan-out. Completing an already-done task is
// a no-op. The reward reference is derived from (actor, task), so an
// account can never be rewarded twice for the same task even if the status
// is cycled.
func (l *TaskLogic) CompleteTask(actorID uint64, taskID uuid.UUID) (*models.Task, error) {
	task, err := l.taskDAO.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	access, err := l.permissions.RequireMember(task.WorkspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}

	if task.Status == models.TaskDone {
		return task, nil
	}

	if err := l.taskDAO.UpdateTaskStatus(taskID, models.TaskDone); err != nil {
		return nil, err
	}

	referenceID := fmt.Sprintf("task-reward-%d-%s", actorID, taskID)
	if _, err := l.ledger.AddCoins(actorID, TaskCompletionReward, "task completion reward", referenceID); err != nil && !errors.Is(err, ErrDuplicateReference) {
		log.Warn().Err(err).Uint64("account_id", actorID).Str("task_id", taskID.String()).Msg("task completion reward failed")
	}

	if _, err := l.automations.NotifyWorkspaceMembers(
		task.WorkspaceID,
		models.AutomationTaskCompleted,
		"Task completed",
		fmt.Sprintf("%q was completed.", task.Title),
		actorID,
	); err != nil {
		log.Warn().Err(err).Str("task_id", taskID.String()).Msg("task completed fan-out failed")
	}

	return l.taskDAO.GetTaskByID(taskID)
}

// AssignTask reassigns a task, member-gated
func (l *TaskLogic) AssignTask(actorID uint64, taskID uuid.UUID, assigneeID *uint64) (*models.Task, error) {
	task, err := l.taskDAO.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	access, err := l.permissions.RequireMember(task.WorkspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Allowed {
		return nil, ErrNotAuthorized
	}

	if err := l.taskDAO.UpdateTaskAssignee(taskID, assigneeID); err != nil {
		return nil, err
	}
	if assigneeID != nil && *assigneeID != actorID {
		if _, err := l.notificationDAO.CreateNotification(
			*assigneeID,
			"Task assigned",
			fmt.Sprintf("You were assigned %q.", task.Title),
			models.SeverityInfo,
		); err != nil {
			log.Warn().Err(err).Uint64("account_id", *assigneeID).Msg("task assignment notification failed")
		}
	}
	return l.taskDAO.GetTaskByID(taskID)
}

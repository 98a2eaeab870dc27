package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// TaskService implements task page assignment and completion.
type TaskService struct {
	taskRepo      ports.TaskRepository
	projectRepo   ports.ProjectRepository
	userRepo      ports.UserRepository
	notifications ports.NotificationService
	logger        *slog.Logger
}

var _ ports.TaskService = (*TaskService)(nil)

// NewTaskService creates a new task service.
func NewTaskService(
	taskRepo ports.TaskRepository,
	projectRepo ports.ProjectRepository,
	userRepo ports.UserRepository,
	notifications ports.NotificationService,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger.With("component", "task_service"),
	}
}

// AssignTaskPage assigns a page to a project member. Management or the
// project's team head.
func (s *TaskService) AssignTaskPage(ctx context.Context, projectID, userID int64, pageName string, actorID int64) (*domain.TaskPage, error) {
	if err := s.requireManagerOrHead(ctx, projectID, actorID); err != nil {
		return nil, err
	}

	task, err := domain.NewTaskPage(projectID, userID, pageName)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.Create(ctx, task)
}

// SetTaskStatus flips a task page's completion and notifies the assignee.
// The assignee may complete their own task; toggling someone else's needs
// management or team head rights.
func (s *TaskService) SetTaskStatus(ctx context.Context, taskID int64, complete bool, actorID int64) (*domain.TaskPage, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.AssignedTo != actorID {
		if err := s.requireManagerOrHead(ctx, task.ProjectID, actorID); err != nil {
			return nil, err
		}
	}

	task.IsComplete = complete
	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	if task.AssignedTo != actorID {
		message := fmt.Sprintf("Task '%s' marked %s", updated.PageName, updated.StatusLabel())
		link := fmt.Sprintf("/projects/%d/tasks", updated.ProjectID)
		// Post-commit; a failed notification never fails the toggle.
		if _, err := s.notifications.Notify(ctx, task.AssignedTo, message, &link); err != nil {
			s.logger.Error("failed to notify assignee of task status",
				"user_id", task.AssignedTo,
				"task_id", updated.ID,
				"error", err,
			)
		}
	}
	return updated, nil
}

// ListTasksForUser returns the user's assigned task pages.
func (s *TaskService) ListTasksForUser(ctx context.Context, userID int64) ([]*domain.TaskPage, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// ListTasksForProject returns the project's task pages for an authorized
// viewer.
func (s *TaskService) ListTasksForProject(ctx context.Context, projectID, userID int64) ([]*domain.TaskPage, error) {
	viewer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsManagement() {
		project, err := s.projectRepo.GetByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if !project.IsHeadedBy(userID) {
			isMember, err := s.projectRepo.IsMember(ctx, projectID, userID)
			if err != nil {
				return nil, err
			}
			if !isMember {
				return nil, apperrors.ErrForbidden
			}
		}
	}
	return s.taskRepo.ListByProject(ctx, projectID)
}

func (s *TaskService) requireManagerOrHead(ctx context.Context, projectID, actorID int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.IsManagement() {
		return nil
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.IsHeadedBy(actorID) {
		return apperrors.ErrForbidden
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// UpdateService implements project chat and timeline updates. Posting
// persists the row, writes notification rows for the rest of the team, and
// publishes the live event, in that order, all as explicit calls.
type UpdateService struct {
	updateRepo    ports.UpdateRepository
	projectRepo   ports.ProjectRepository
	userRepo      ports.UserRepository
	notifications ports.NotificationService
	publisher     ports.EventPublisher
	logger        *slog.Logger
}

var _ ports.UpdateService = (*UpdateService)(nil)

// NewUpdateService creates a new update service.
func NewUpdateService(
	updateRepo ports.UpdateRepository,
	projectRepo ports.ProjectRepository,
	userRepo ports.UserRepository,
	notifications ports.NotificationService,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *UpdateService {
	return &UpdateService{
		updateRepo:    updateRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		notifications: notifications,
		publisher:     publisher,
		logger:        logger.With("component", "update_service"),
	}
}

// PostChatMessage posts an untitled chat-style message on the project
// stream. Any member, the team head, or management may post.
func (s *UpdateService) PostChatMessage(ctx context.Context, params ports.PostUpdateParams) (*domain.ProjectUpdate, error) {
	project, actor, err := s.loadProjectAndActor(ctx, params.ProjectID, params.ActorID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canView(ctx, project, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}

	params.Title = nil // chat messages are untitled by definition
	update, err := domain.NewProjectUpdate(domain.ProjectUpdateParams{
		ProjectID: params.ProjectID,
		UserID:    params.ActorID,
		Category:  domain.CategoryUpdate,
		Remarks:   params.Remarks,
		ImageURL:  params.ImageURL,
		FileURL:   params.FileURL,
		FileName:  params.FileName,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.updateRepo.Create(ctx, update)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Chat from %s", actor.Username)
	link := fmt.Sprintf("/projects/%d/chat", project.ID)
	s.notifyTeam(ctx, project, actor.ID, message, &link)

	s.publisher.PublishProjectUpdate(posted(created, actor))
	return created, nil
}

// PostUpdate posts a titled timeline update. Management or the project's
// team head only.
func (s *UpdateService) PostUpdate(ctx context.Context, params ports.PostUpdateParams) (*domain.ProjectUpdate, error) {
	project, actor, err := s.loadProjectAndActor(ctx, params.ProjectID, params.ActorID)
	if err != nil {
		return nil, err
	}

	if !actor.IsManagement() && !project.IsHeadedBy(actor.ID) {
		return nil, apperrors.ErrForbidden
	}
	if params.Title == nil || *params.Title == "" {
		return nil, apperrors.ErrEmptyUpdate
	}

	update, err := domain.NewProjectUpdate(domain.ProjectUpdateParams{
		ProjectID:      params.ProjectID,
		UserID:         params.ActorID,
		Category:       domain.CategoryUpdate,
		Title:          params.Title,
		Remarks:        params.Remarks,
		Priority:       params.Priority,
		ImageURL:       params.ImageURL,
		FileURL:        params.FileURL,
		FileName:       params.FileName,
		AttachmentURLs: params.AttachmentURLs,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.updateRepo.Create(ctx, update)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Update: %s", *params.Title)
	link := fmt.Sprintf("/projects/%d/updates", project.ID)
	s.notifyTeam(ctx, project, actor.ID, message, &link)

	s.publisher.PublishProjectUpdate(posted(created, actor))
	return created, nil
}

// ListChatMessages returns the project's untitled messages, oldest first.
func (s *UpdateService) ListChatMessages(ctx context.Context, projectID, viewerID int64) ([]*domain.ProjectUpdate, error) {
	if err := s.requireView(ctx, projectID, viewerID); err != nil {
		return nil, err
	}
	return s.updateRepo.ListChatByProject(ctx, projectID)
}

// ListUpdates returns the project's titled updates, newest first.
func (s *UpdateService) ListUpdates(ctx context.Context, projectID, viewerID int64) ([]*domain.ProjectUpdate, error) {
	if err := s.requireView(ctx, projectID, viewerID); err != nil {
		return nil, err
	}
	return s.updateRepo.ListTimelineByProject(ctx, projectID)
}

func (s *UpdateService) loadProjectAndActor(ctx context.Context, projectID, actorID int64) (*domain.Project, *domain.User, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	return project, actor, nil
}

func (s *UpdateService) canView(ctx context.Context, project *domain.Project, user *domain.User) (bool, error) {
	if user.IsManagement() || project.IsHeadedBy(user.ID) {
		return true, nil
	}
	return s.projectRepo.IsMember(ctx, project.ID, user.ID)
}

func (s *UpdateService) requireView(ctx context.Context, projectID, viewerID int64) error {
	project, viewer, err := s.loadProjectAndActor(ctx, projectID, viewerID)
	if err != nil {
		return err
	}
	allowed, err := s.canView(ctx, project, viewer)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ErrForbidden
	}
	return nil
}

// notifyTeam writes a notification row for every team member, the creator,
// and the team head, except the actor. A failed row is logged and skipped;
// it never fails the post.
func (s *UpdateService) notifyTeam(ctx context.Context, project *domain.Project, actorID int64, message string, link *string) {
	recipients := make(map[int64]bool)
	if project.CreatedByID != nil {
		recipients[*project.CreatedByID] = true
	}
	if project.TeamHeadID != nil {
		recipients[*project.TeamHeadID] = true
	}

	members, err := s.projectRepo.ListMembers(ctx, project.ID)
	if err != nil {
		s.logger.Error("failed to list members for notification fan-out",
			"project_id", project.ID,
			"error", err,
		)
	}
	for _, m := range members {
		recipients[m.UserID] = true
	}
	delete(recipients, actorID)

	for userID := range recipients {
		if _, err := s.notifications.Notify(ctx, userID, message, link); err != nil {
			s.logger.Error("failed to create notification",
				"user_id", userID,
				"project_id", project.ID,
				"error", err,
			)
		}
	}
}

// posted builds the publisher input from a committed row and its sender.
func posted(u *domain.ProjectUpdate, sender *domain.User) domain.ProjectUpdatePosted {
	return domain.ProjectUpdatePosted{
		ProjectID:          u.ProjectID,
		SenderID:           sender.ID,
		SenderUsername:     sender.Username,
		SenderProfilePhoto: sender.ProfilePhotoURL,
		Title:              u.Title,
		Remarks:            u.Remarks,
		CreatedAt:          u.CreatedAt,
		ImageURL:           u.ImageURL,
		FileURL:            u.FileURL,
		FileName:           u.FileName,
	}
}

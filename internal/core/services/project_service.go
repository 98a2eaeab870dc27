package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// ProjectService implements project management business logic.
type ProjectService struct {
	projectRepo    ports.ProjectRepository
	workUpdateRepo ports.WorkUpdateRepository
	userRepo       ports.UserRepository
	notifications  ports.NotificationService
	mailer         ports.Notifier
	logger         *slog.Logger
	wg             sync.WaitGroup
}

var _ ports.ProjectService = (*ProjectService)(nil)

// NewProjectService creates a new project service.
func NewProjectService(
	projectRepo ports.ProjectRepository,
	workUpdateRepo ports.WorkUpdateRepository,
	userRepo ports.UserRepository,
	notifications ports.NotificationService,
	mailer ports.Notifier,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		workUpdateRepo: workUpdateRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		mailer:         mailer,
		logger:         logger.With("component", "project_service"),
	}
}

// CreateProject creates a project. Management only.
func (s *ProjectService) CreateProject(ctx context.Context, params ports.CreateProjectParams) (*domain.Project, error) {
	if err := s.requireManagement(ctx, params.ActorID); err != nil {
		return nil, err
	}

	project, err := domain.NewProject(domain.ProjectParams{
		Name:        params.Name,
		Description: params.Description,
		Priority:    params.Priority,
		ClientName:  params.ClientName,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		CreatedByID: params.ActorID,
	})
	if err != nil {
		return nil, err
	}
	project.TeamHeadID = params.TeamHeadID

	return s.projectRepo.Create(ctx, project)
}

// GetProject retrieves a project the viewer may access.
func (s *ProjectService) GetProject(ctx context.Context, projectID, viewerID int64) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.CanAccess(ctx, projectID, viewerID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}

// ListProjects returns every project for management, or the viewer's
// projects otherwise.
func (s *ProjectService) ListProjects(ctx context.Context, viewerID int64) ([]*domain.Project, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.IsManagement() {
		return s.projectRepo.ListAll(ctx)
	}
	return s.projectRepo.ListForUser(ctx, viewerID)
}

// AddMember adds an employee to the project team. Management or team head.
func (s *ProjectService) AddMember(ctx context.Context, params ports.AddMemberParams) (*domain.ProjectMember, error) {
	if err := s.requireManagerOrHead(ctx, params.ProjectID, params.ActorID); err != nil {
		return nil, err
	}

	member := &domain.ProjectMember{
		ProjectID: params.ProjectID,
		UserID:    params.UserID,
		Role:      params.Role,
	}
	return s.projectRepo.AddMember(ctx, member)
}

// RemoveMember removes a team member. Management or team head.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, memberID, actorID int64) error {
	if err := s.requireManagerOrHead(ctx, projectID, actorID); err != nil {
		return err
	}
	return s.projectRepo.RemoveMember(ctx, projectID, memberID)
}

// ListMembers returns the project's team.
func (s *ProjectService) ListMembers(ctx context.Context, projectID int64) ([]*domain.ProjectMember, error) {
	return s.projectRepo.ListMembers(ctx, projectID)
}

// SetMeetingLink stores the link, writes a notification row for every
// member and the team head except the actor, and fires invite emails in
// the background.
func (s *ProjectService) SetMeetingLink(ctx context.Context, params ports.SetMeetingLinkParams) error {
	if err := s.requireManagerOrHead(ctx, params.ProjectID, params.ActorID); err != nil {
		return err
	}

	project, err := s.projectRepo.GetByID(ctx, params.ProjectID)
	if err != nil {
		return err
	}
	if err := project.SetMeetingLink(params.Link); err != nil {
		return err
	}
	if _, err := s.projectRepo.Update(ctx, project); err != nil {
		return err
	}

	recipients, err := s.teamExcept(ctx, project, params.ActorID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Meeting Link Added: %s", project.Name)
	var emails []string
	for _, user := range recipients {
		link := params.Link
		if _, err := s.notifications.Notify(ctx, user.ID, message, &link); err != nil {
			s.logger.Error("failed to create meeting notification",
				"user_id", user.ID,
				"project_id", project.ID,
				"error", err,
			)
		}
		if user.Email != "" {
			emails = append(emails, user.Email)
		}
	}

	if len(emails) > 0 {
		s.sendInvites(project, emails)
	}
	return nil
}

// EndMeeting clears the meeting link.
func (s *ProjectService) EndMeeting(ctx context.Context, projectID, actorID int64) error {
	if err := s.requireManagerOrHead(ctx, projectID, actorID); err != nil {
		return err
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	project.EndMeeting()
	_, err = s.projectRepo.Update(ctx, project)
	return err
}

// SubmitWorkStatus upserts the actor's work update on the project. Only the
// team head and members report work status; management reads it instead.
func (s *ProjectService) SubmitWorkStatus(ctx context.Context, params ports.SubmitWorkStatusParams) (*domain.WorkUpdate, error) {
	project, err := s.projectRepo.GetByID(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}

	if !project.IsHeadedBy(params.ActorID) {
		isMember, err := s.projectRepo.IsMember(ctx, params.ProjectID, params.ActorID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, apperrors.ErrNotProjectMember
		}
	}

	update, err := domain.NewWorkUpdate(params.ProjectID, params.ActorID, params.Status, params.Remarks)
	if err != nil {
		return nil, err
	}
	return s.workUpdateRepo.Upsert(ctx, update)
}

// ListWorkStatuses returns the team's work updates for an authorized viewer.
func (s *ProjectService) ListWorkStatuses(ctx context.Context, projectID, viewerID int64) ([]*domain.WorkUpdate, error) {
	allowed, err := s.CanAccess(ctx, projectID, viewerID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}
	return s.workUpdateRepo.ListByProject(ctx, projectID)
}

// SetProjectStatus records the team head's progress report. Management or
// team head.
func (s *ProjectService) SetProjectStatus(ctx context.Context, params ports.SetProjectStatusParams) (*domain.Project, error) {
	if err := s.requireManagerOrHead(ctx, params.ProjectID, params.ActorID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := project.SetStatusReport(params.Status, params.Description); err != nil {
		return nil, err
	}
	return s.projectRepo.Update(ctx, project)
}

// CanAccess reports whether the user may view the project: management, the
// team head, or any member.
func (s *ProjectService) CanAccess(ctx context.Context, projectID, userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.IsManagement() {
		return true, nil
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return false, err
	}
	if project.IsHeadedBy(userID) {
		return true, nil
	}
	return s.projectRepo.IsMember(ctx, projectID, userID)
}

// Shutdown waits for in-flight background email sends.
func (s *ProjectService) Shutdown() {
	s.wg.Wait()
}

func (s *ProjectService) requireManagement(ctx context.Context, actorID int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsManagement() {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *ProjectService) requireManagerOrHead(ctx context.Context, projectID, actorID int64) error {
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

// teamExcept returns the full users for every member plus the team head,
// minus the given actor.
func (s *ProjectService) teamExcept(ctx context.Context, project *domain.Project, actorID int64) ([]*domain.User, error) {
	ids := make(map[int64]bool)
	members, err := s.projectRepo.ListMembers(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		ids[m.UserID] = true
	}
	if project.TeamHeadID != nil {
		ids[*project.TeamHeadID] = true
	}
	delete(ids, actorID)

	users := make([]*domain.User, 0, len(ids))
	for id := range ids {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unknown recipient", "user_id", id, "error", err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// sendInvites emails the meeting link in the background; the request does
// not wait and failures stay in the logs.
func (s *ProjectService) sendInvites(project *domain.Project, emails []string) {
	link := ""
	if project.GoogleMeetLink != nil {
		link = *project.GoogleMeetLink
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// The HTTP request may be done by the time this runs.
		ctx := context.Background()
		s.mailer.Send(ctx, ports.EmailParams{
			To:      emails,
			Subject: fmt.Sprintf("Meeting Invite: %s", project.Name),
			Body:    fmt.Sprintf("Join here: %s\n\n- Savithru PMS", link),
		})
	}()
}

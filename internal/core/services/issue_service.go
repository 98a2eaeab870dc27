package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// IssueService implements employee issue handling.
type IssueService struct {
	issueRepo     ports.IssueRepository
	userRepo      ports.UserRepository
	notifications ports.NotificationService
	logger        *slog.Logger
}

var _ ports.IssueService = (*IssueService)(nil)

// NewIssueService creates a new issue service.
func NewIssueService(
	issueRepo ports.IssueRepository,
	userRepo ports.UserRepository,
	notifications ports.NotificationService,
	logger *slog.Logger,
) *IssueService {
	return &IssueService{
		issueRepo:     issueRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger.With("component", "issue_service"),
	}
}

// SubmitIssue files a new issue and notifies every management user.
func (s *IssueService) SubmitIssue(ctx context.Context, actorID int64, subject domain.IssueSubject, description string, attachmentURL *string) (*domain.Issue, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	issue, err := domain.NewIssue(actorID, subject, description, attachmentURL)
	if err != nil {
		return nil, err
	}

	created, err := s.issueRepo.Create(ctx, issue)
	if err != nil {
		return nil, err
	}

	managers, err := s.userRepo.ListByRole(ctx, domain.RoleManagement)
	if err != nil {
		s.logger.Error("failed to list managers for issue notification", "error", err)
		return created, nil
	}

	message := fmt.Sprintf("Issue from %s", actor.Username)
	link := fmt.Sprintf("/issues/%d", created.ID)
	for _, m := range managers {
		if _, err := s.notifications.Notify(ctx, m.ID, message, &link); err != nil {
			s.logger.Error("failed to notify manager of issue",
				"user_id", m.ID,
				"issue_id", created.ID,
				"error", err,
			)
		}
	}
	return created, nil
}

// SetIssueStatus applies a management decision and notifies the submitter.
func (s *IssueService) SetIssueStatus(ctx context.Context, issueID int64, status domain.IssueStatus, actorID int64) (*domain.Issue, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManagement() {
		return nil, apperrors.ErrForbidden
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if err := issue.SetStatus(status); err != nil {
		return nil, err
	}

	updated, err := s.issueRepo.Update(ctx, issue)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your issue updated: %s", updated.Status)
	link := "/issues"
	if _, err := s.notifications.Notify(ctx, updated.UserID, message, &link); err != nil {
		s.logger.Error("failed to notify submitter of issue decision",
			"user_id", updated.UserID,
			"issue_id", updated.ID,
			"error", err,
		)
	}
	return updated, nil
}

// GetIssue retrieves one issue: its submitter or management.
func (s *IssueService) GetIssue(ctx context.Context, issueID, viewerID int64) (*domain.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue.UserID == viewerID {
		return issue, nil
	}

	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsManagement() {
		return nil, apperrors.ErrForbidden
	}
	return issue, nil
}

// ListIssues returns every issue for management, or the viewer's own.
func (s *IssueService) ListIssues(ctx context.Context, viewerID int64) ([]*domain.Issue, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.IsManagement() {
		return s.issueRepo.ListAll(ctx)
	}
	return s.issueRepo.ListByUser(ctx, viewerID)
}

package services

import (
	"context"
	"time"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// DailyUpdateService implements daily time logs.
type DailyUpdateService struct {
	repo     ports.DailyUpdateRepository
	userRepo ports.UserRepository
}

var _ ports.DailyUpdateService = (*DailyUpdateService)(nil)

// NewDailyUpdateService creates a new daily update service.
func NewDailyUpdateService(repo ports.DailyUpdateRepository, userRepo ports.UserRepository) *DailyUpdateService {
	return &DailyUpdateService{repo: repo, userRepo: userRepo}
}

// SubmitDailyUpdate records one day's time log. Multiple submissions per
// day are allowed.
func (s *DailyUpdateService) SubmitDailyUpdate(ctx context.Context, params domain.DailyUpdateParams) (*domain.DailyUpdate, error) {
	update, err := domain.NewDailyUpdate(params)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, update)
}

// ListForUser returns the user's logs in the date range, newest first.
func (s *DailyUpdateService) ListForUser(ctx context.Context, userID int64, from, to time.Time) ([]*domain.DailyUpdate, error) {
	return s.repo.ListByUser(ctx, userID, from, to)
}

// ListForDay returns every user's log for one day. Management only.
func (s *DailyUpdateService) ListForDay(ctx context.Context, day time.Time, viewerID int64) ([]*domain.DailyUpdate, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsManagement() {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.ListByDay(ctx, day)
}

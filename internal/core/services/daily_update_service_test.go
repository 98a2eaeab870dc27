package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/mocks"
	"github.com/savithru/pms-backend/internal/core/services"
)

func TestDailyUpdateService_SubmitDailyUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid log is persisted", func(t *testing.T) {
		repo := mocks.NewMockDailyUpdateRepository()
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewDailyUpdateService(repo, userRepo)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.DailyUpdate")).
			Return(&domain.DailyUpdate{ID: 31, UserID: 3}, nil)

		update, err := svc.SubmitDailyUpdate(ctx, domain.DailyUpdateParams{
			UserID:      3,
			Date:        time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
			Description: "Worked on the landing page",
			LineItems: []domain.DailyUpdateLineItem{
				{ProjectID: 7, TaskPageID: 12, TimeSpent: "2:30"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(31), update.ID)
	})

	t.Run("log without line items rejected", func(t *testing.T) {
		repo := mocks.NewMockDailyUpdateRepository()
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewDailyUpdateService(repo, userRepo)

		_, err := svc.SubmitDailyUpdate(ctx, domain.DailyUpdateParams{UserID: 3})

		assert.ErrorIs(t, err, apperrors.ErrNoLineItems)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing time spent rejected", func(t *testing.T) {
		repo := mocks.NewMockDailyUpdateRepository()
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewDailyUpdateService(repo, userRepo)

		_, err := svc.SubmitDailyUpdate(ctx, domain.DailyUpdateParams{
			UserID:    3,
			LineItems: []domain.DailyUpdateLineItem{{ProjectID: 7, TaskPageID: 12}},
		})

		assert.ErrorIs(t, err, apperrors.ErrTimeSpentRequired)
	})
}

func TestDailyUpdateService_ListForDay(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	t.Run("management reads the team's day", func(t *testing.T) {
		repo := mocks.NewMockDailyUpdateRepository()
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewDailyUpdateService(repo, userRepo)

		userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)
		repo.On("ListByDay", ctx, day).Return([]*domain.DailyUpdate{{ID: 31}, {ID: 32}}, nil)

		updates, err := svc.ListForDay(ctx, day, 1)
		require.NoError(t, err)
		assert.Len(t, updates, 2)
	})

	t.Run("employees are forbidden", func(t *testing.T) {
		repo := mocks.NewMockDailyUpdateRepository()
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewDailyUpdateService(repo, userRepo)

		userRepo.On("GetByID", ctx, int64(3)).Return(testEmployee(3, "marco"), nil)

		updates, err := svc.ListForDay(ctx, day, 3)
		assert.Nil(t, updates)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		repo.AssertNotCalled(t, "ListByDay", mock.Anything, mock.Anything)
	})
}

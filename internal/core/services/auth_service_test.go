package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/mocks"
	"github.com/savithru/pms-backend/internal/core/services"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	params := domain.UserRegistrationParams{
		Username: "newhire",
		Email:    "newhire@example.com",
		Password: "Str0ngPassw0rd",
		Role:     domain.RoleEmployee,
	}

	t.Run("management registers an employee", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(userRepo)

		userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Return(&domain.User{ID: 5, Username: "newhire", Role: domain.RoleEmployee}, nil)

		user, err := svc.Register(ctx, 1, params)

		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		userRepo.AssertExpectations(t)
	})

	t.Run("employee may not register accounts", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(userRepo)

		userRepo.On("GetByID", ctx, int64(3)).Return(testEmployee(3, "marco"), nil)

		user, err := svc.Register(ctx, 3, params)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(userRepo)

		userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)

		weak := params
		weak.Password = "short"
		user, err := svc.Register(ctx, 1, weak)

		assert.Nil(t, user)
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hashed, err := domain.HashPassword("Str0ngPassw0rd")
	require.NoError(t, err)

	account := &domain.User{
		ID:             5,
		Username:       "newhire",
		Role:           domain.RoleEmployee,
		HashedPassword: hashed,
		IsActive:       true,
	}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(userRepo)

		userRepo.On("GetByUsername", ctx, "newhire").Return(account, nil)

		user, err := svc.Login(ctx, "newhire", "Str0ngPassw0rd")
		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(userRepo)

		userRepo.On("GetByUsername", ctx, "newhire").Return(account, nil)

		user, err := svc.Login(ctx, "newhire", "WrongPassw0rd")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown username maps to the same error", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(userRepo)

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, apperrors.ErrUserNotFound)

		user, err := svc.Login(ctx, "ghost", "whatever")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := services.NewAuthService(userRepo)

		inactive := *account
		inactive.IsActive = false
		userRepo.On("GetByUsername", ctx, "newhire").Return(&inactive, nil)

		user, err := svc.Login(ctx, "newhire", "Str0ngPassw0rd")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

package services

import (
	"context"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// AuthService implements account registration and login.
type AuthService struct {
	userRepo ports.UserRepository
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new auth service.
func NewAuthService(userRepo ports.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new account. Management only; employees cannot create
// accounts.
func (s *AuthService) Register(ctx context.Context, actorID int64, params domain.UserRegistrationParams) (*domain.User, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManagement() {
		return nil, apperrors.ErrForbidden
	}

	user, err := domain.NewUser(params)
	if err != nil {
		return nil, err
	}
	return s.userRepo.Create(ctx, user)
}

// Login verifies credentials and returns the account. Callers mint the
// token themselves.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Do not leak whether the username exists.
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// seedUser persists a user with a unique username for a test.
func seedUser(t *testing.T, role domain.UserRole) *domain.User {
	t.Helper()
	require.NotNil(t, testPool, "testPool is nil. TestMain may not have run.")

	repo := NewUserRepository(testPool)
	suffix := uuid.NewString()[:8]
	user, err := repo.Create(context.Background(), &domain.User{
		Username:       fmt.Sprintf("user-%s", suffix),
		Email:          fmt.Sprintf("user-%s@example.com", suffix),
		Role:           role,
		HashedPassword: "hashedpassword",
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
	})
	require.NoError(t, err, "Failed to seed user")
	return user
}

func TestUserRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testPool)

	created := seedUser(t, domain.RoleEmployee)
	require.NotZero(t, created.ID)

	found, err := repo.GetByUsername(ctx, created.Username)
	require.NoError(t, err, "Failed to get user by username")
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Email, found.Email)
	assert.Equal(t, domain.RoleEmployee, found.Role)
	assert.True(t, found.IsActive)

	foundByID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err, "Failed to get user by ID")
	assert.Equal(t, created.Username, foundByID.Username)
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testPool)

	created := seedUser(t, domain.RoleEmployee)

	_, err := repo.Create(ctx, &domain.User{
		Username:       created.Username,
		Email:          "other@example.com",
		Role:           domain.RoleEmployee,
		HashedPassword: "hashedpassword",
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUserExists)
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testPool)

	_, err := repo.GetByUsername(ctx, "nonexistent-user")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepository_ListByRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testPool)

	manager := seedUser(t, domain.RoleManagement)

	managers, err := repo.ListByRole(ctx, domain.RoleManagement)
	require.NoError(t, err)

	var found bool
	for _, u := range managers {
		assert.Equal(t, domain.RoleManagement, u.Role)
		if u.ID == manager.ID {
			found = true
		}
	}
	assert.True(t, found, "seeded manager missing from role listing")
}

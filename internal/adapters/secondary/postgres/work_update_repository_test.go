package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savithru/pms-backend/internal/core/domain"
)

func TestWorkUpdateRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkUpdateRepository(testPool)

	member := seedUser(t, domain.RoleEmployee)
	project := seedProject(t, member.ID)

	first, err := repo.Upsert(ctx, &domain.WorkUpdate{
		ProjectID: project.ID,
		MemberID:  member.ID,
		Status:    domain.WorkIncomplete,
		Remarks:   strPtr("just started"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkIncomplete, first.Status)

	// Resubmitting replaces the row instead of adding one.
	second, err := repo.Upsert(ctx, &domain.WorkUpdate{
		ProjectID: project.ID,
		MemberID:  member.ID,
		Status:    domain.WorkPartiallyDone,
		Remarks:   strPtr("halfway there"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.WorkPartiallyDone, second.Status)
	require.NotNil(t, second.Remarks)
	assert.Equal(t, "halfway there", *second.Remarks)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

	list, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, member.Username, list[0].Username)
}

func TestWorkUpdateRepository_ListByProject(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkUpdateRepository(testPool)

	alice := seedUser(t, domain.RoleEmployee)
	bob := seedUser(t, domain.RoleEmployee)
	project := seedProject(t, alice.ID)
	other := seedProject(t, alice.ID)

	_, err := repo.Upsert(ctx, &domain.WorkUpdate{
		ProjectID: project.ID, MemberID: alice.ID, Status: domain.WorkComplete,
	})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, &domain.WorkUpdate{
		ProjectID: project.ID, MemberID: bob.ID, Status: domain.WorkIncomplete,
	})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, &domain.WorkUpdate{
		ProjectID: other.ID, MemberID: alice.ID, Status: domain.WorkIncomplete,
	})
	require.NoError(t, err)

	list, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, u := range list {
		assert.Equal(t, project.ID, u.ProjectID)
		assert.NotEmpty(t, u.Username)
	}
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// seedProject persists a minimal project created by the given user.
func seedProject(t *testing.T, creatorID int64) *domain.Project {
	t.Helper()

	repo := NewProjectRepository(testPool)
	project, err := repo.Create(context.Background(), &domain.Project{
		Name:         "Apollo",
		Description:  "Client portal rebuild",
		Status:       domain.ProjectPending,
		Priority:     domain.PriorityMedium,
		CreatedByID:  &creatorID,
		StatusReport: domain.WorkIncomplete,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err, "Failed to seed project")
	return project
}

func TestProjectRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(testPool)

	creator := seedUser(t, domain.RoleManagement)
	created := seedProject(t, creator.ID)
	require.NotZero(t, created.ID)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", found.Name)
	assert.Equal(t, domain.ProjectPending, found.Status)
	require.NotNil(t, found.CreatedByID)
	assert.Equal(t, creator.ID, *found.CreatedByID)
	assert.Nil(t, found.GoogleMeetLink)
}

func TestProjectRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(testPool)

	_, err := repo.GetByID(ctx, 999999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestProjectRepository_Update_MeetingLink(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(testPool)

	creator := seedUser(t, domain.RoleManagement)
	project := seedProject(t, creator.ID)

	require.NoError(t, project.SetMeetingLink("https://meet.example/abc"))
	updated, err := repo.Update(ctx, project)
	require.NoError(t, err)
	require.NotNil(t, updated.GoogleMeetLink)
	assert.Equal(t, "https://meet.example/abc", *updated.GoogleMeetLink)

	updated.EndMeeting()
	cleared, err := repo.Update(ctx, updated)
	require.NoError(t, err)
	assert.Nil(t, cleared.GoogleMeetLink)
}

func TestProjectRepository_Update_StatusReport(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(testPool)

	creator := seedUser(t, domain.RoleManagement)
	project := seedProject(t, creator.ID)
	assert.Equal(t, domain.WorkIncomplete, project.StatusReport)

	require.NoError(t, project.SetStatusReport(domain.WorkPartiallyDone, strPtr("api done, UI pending")))
	updated, err := repo.Update(ctx, project)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkPartiallyDone, updated.StatusReport)
	require.NotNil(t, updated.StatusDescription)
	assert.Equal(t, "api done, UI pending", *updated.StatusDescription)

	fetched, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkPartiallyDone, fetched.StatusReport)
}

func TestProjectRepository_Members(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(testPool)

	creator := seedUser(t, domain.RoleManagement)
	employee := seedUser(t, domain.RoleEmployee)
	project := seedProject(t, creator.ID)

	member, err := repo.AddMember(ctx, &domain.ProjectMember{
		ProjectID: project.ID,
		UserID:    employee.ID,
		Role:      domain.RoleDeveloper,
	})
	require.NoError(t, err)
	require.NotZero(t, member.ID)
	assert.Equal(t, employee.Username, member.Username)
	assert.Equal(t, employee.Email, member.Email)

	_, err = repo.AddMember(ctx, &domain.ProjectMember{
		ProjectID: project.ID,
		UserID:    employee.ID,
		Role:      domain.RoleTester,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMemberExists)

	isMember, err := repo.IsMember(ctx, project.ID, employee.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	isMember, err = repo.IsMember(ctx, project.ID, creator.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	members, err := repo.ListMembers(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, domain.RoleDeveloper, members[0].Role)

	require.NoError(t, repo.RemoveMember(ctx, project.ID, member.ID))
	members, err = repo.ListMembers(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestProjectRepository_ListForUser(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(testPool)

	creator := seedUser(t, domain.RoleManagement)
	employee := seedUser(t, domain.RoleEmployee)

	memberProject := seedProject(t, creator.ID)
	_, err := repo.AddMember(ctx, &domain.ProjectMember{
		ProjectID: memberProject.ID,
		UserID:    employee.ID,
		Role:      domain.RoleDeveloper,
	})
	require.NoError(t, err)

	headedProject := seedProject(t, creator.ID)
	headedProject.TeamHeadID = &employee.ID
	_, err = repo.Update(ctx, headedProject)
	require.NoError(t, err)

	// A project the employee has nothing to do with.
	seedProject(t, creator.ID)

	projects, err := repo.ListForUser(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	ids := []int64{projects[0].ID, projects[1].ID}
	assert.Contains(t, ids, memberProject.ID)
	assert.Contains(t, ids, headedProject.ID)
}

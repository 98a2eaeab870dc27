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
	"github.com/savithru/pms-backend/internal/core/ports"
	"github.com/savithru/pms-backend/internal/core/services"
)

type projectServiceMocks struct {
	projectRepo    *mocks.MockProjectRepository
	workUpdateRepo *mocks.MockWorkUpdateRepository
	userRepo       *mocks.MockUserRepository
	notifications  *mocks.MockNotificationService
	mailer         *mocks.MockNotifier
}

func newProjectService() (*services.ProjectService, projectServiceMocks) {
	m := projectServiceMocks{
		projectRepo:    mocks.NewMockProjectRepository(),
		workUpdateRepo: mocks.NewMockWorkUpdateRepository(),
		userRepo:       mocks.NewMockUserRepository(),
		notifications:  mocks.NewMockNotificationService(),
		mailer:         mocks.NewMockNotifier(),
	}
	svc := services.NewProjectService(m.projectRepo, m.workUpdateRepo, m.userRepo, m.notifications, m.mailer, testLogger())
	return svc, m
}

func testManager(id int64) *domain.User {
	return &domain.User{ID: id, Username: "boss", Role: domain.RoleManagement, IsActive: true}
}

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("management creates a project", func(t *testing.T) {
		svc, m := newProjectService()

		m.userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)
		m.projectRepo.On("Create", ctx, mock.AnythingOfType("*domain.Project")).
			Return(&domain.Project{ID: 7, Name: "Apollo", Status: domain.ProjectPending}, nil)

		project, err := svc.CreateProject(ctx, ports.CreateProjectParams{
			Name:    "Apollo",
			ActorID: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), project.ID)
		assert.Equal(t, domain.ProjectPending, project.Status)
	})

	t.Run("employee may not create projects", func(t *testing.T) {
		svc, m := newProjectService()

		m.userRepo.On("GetByID", ctx, int64(3)).Return(testEmployee(3, "marco"), nil)

		project, err := svc.CreateProject(ctx, ports.CreateProjectParams{
			Name:    "Apollo",
			ActorID: 3,
		})

		assert.Nil(t, project)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.projectRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, m := newProjectService()

		m.userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)

		_, err := svc.CreateProject(ctx, ports.CreateProjectParams{ActorID: 1})
		assert.ErrorIs(t, err, apperrors.ErrProjectNameRequired)
	})
}

func TestProjectService_SetMeetingLink(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies team and emails invites", func(t *testing.T) {
		svc, m := newProjectService()

		head := int64(2)
		project := &domain.Project{
			ID:         7,
			Name:       "Apollo",
			TeamHeadID: &head,
			CreatedAt:  time.Now().UTC(),
		}

		m.userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).Return(project, nil)
		m.projectRepo.On("Update", ctx, project).Return(project, nil)
		m.projectRepo.On("ListMembers", ctx, int64(7)).Return([]*domain.ProjectMember{
			{ProjectID: 7, UserID: 3, Role: domain.RoleDeveloper},
		}, nil)

		priya := testEmployee(2, "priya")
		priya.Email = "priya@example.com"
		marco := testEmployee(3, "marco")
		marco.Email = "marco@example.com"
		m.userRepo.On("GetByID", ctx, int64(2)).Return(priya, nil)
		m.userRepo.On("GetByID", ctx, int64(3)).Return(marco, nil)

		m.notifications.On("Notify", ctx, mock.AnythingOfType("int64"), "Meeting Link Added: Apollo", mock.AnythingOfType("*string")).
			Return(&domain.Notification{}, nil)
		m.mailer.On("Send", mock.Anything, mock.AnythingOfType("ports.EmailParams")).Return()

		err := svc.SetMeetingLink(ctx, ports.SetMeetingLinkParams{
			ProjectID: 7,
			Link:      "https://meet.example/abc",
			ActorID:   1,
		})

		require.NoError(t, err)
		require.NotNil(t, project.GoogleMeetLink)
		assert.Equal(t, "https://meet.example/abc", *project.GoogleMeetLink)

		// The invite email runs in the background.
		svc.Shutdown()

		m.notifications.AssertNumberOfCalls(t, "Notify", 2)
		m.mailer.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(p ports.EmailParams) bool {
			return len(p.To) == 2 && p.Subject == "Meeting Invite: Apollo"
		}))
	})

	t.Run("non-head employee is forbidden", func(t *testing.T) {
		svc, m := newProjectService()

		head := int64(2)
		m.userRepo.On("GetByID", ctx, int64(3)).Return(testEmployee(3, "marco"), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).
			Return(&domain.Project{ID: 7, Name: "Apollo", TeamHeadID: &head}, nil)

		err := svc.SetMeetingLink(ctx, ports.SetMeetingLinkParams{
			ProjectID: 7,
			Link:      "https://meet.example/abc",
			ActorID:   3,
		})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.projectRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("empty link rejected", func(t *testing.T) {
		svc, m := newProjectService()

		m.userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).Return(&domain.Project{ID: 7, Name: "Apollo"}, nil)

		err := svc.SetMeetingLink(ctx, ports.SetMeetingLinkParams{ProjectID: 7, ActorID: 1})
		assert.ErrorIs(t, err, apperrors.ErrMeetingLinkRequired)
	})
}

func TestProjectService_EndMeeting(t *testing.T) {
	ctx := context.Background()
	svc, m := newProjectService()

	link := "https://meet.example/abc"
	project := &domain.Project{ID: 7, Name: "Apollo", GoogleMeetLink: &link}

	m.userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)
	m.projectRepo.On("GetByID", ctx, int64(7)).Return(project, nil)
	m.projectRepo.On("Update", ctx, project).Return(project, nil)

	require.NoError(t, svc.EndMeeting(ctx, 7, 1))
	assert.Nil(t, project.GoogleMeetLink)
}

func TestProjectService_SubmitWorkStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("member reports their status", func(t *testing.T) {
		svc, m := newProjectService()

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.projectRepo.On("IsMember", ctx, int64(7), int64(3)).Return(true, nil)
		m.workUpdateRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.WorkUpdate")).
			Return(&domain.WorkUpdate{
				ID:        41,
				ProjectID: 7,
				MemberID:  3,
				Status:    domain.WorkPartiallyDone,
			}, nil)

		update, err := svc.SubmitWorkStatus(ctx, ports.SubmitWorkStatusParams{
			ProjectID: 7,
			ActorID:   3,
			Status:    domain.WorkPartiallyDone,
			Remarks:   strPtr("halfway through the landing page"),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.WorkPartiallyDone, update.Status)
	})

	t.Run("team head reports without a membership row", func(t *testing.T) {
		svc, m := newProjectService()

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.workUpdateRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.WorkUpdate")).
			Return(&domain.WorkUpdate{ID: 42, ProjectID: 7, MemberID: 2, Status: domain.WorkComplete}, nil)

		_, err := svc.SubmitWorkStatus(ctx, ports.SubmitWorkStatusParams{
			ProjectID: 7,
			ActorID:   2,
			Status:    domain.WorkComplete,
		})

		require.NoError(t, err)
		m.projectRepo.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("outsider may not report", func(t *testing.T) {
		svc, m := newProjectService()

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.projectRepo.On("IsMember", ctx, int64(7), int64(9)).Return(false, nil)

		update, err := svc.SubmitWorkStatus(ctx, ports.SubmitWorkStatusParams{
			ProjectID: 7,
			ActorID:   9,
			Status:    domain.WorkComplete,
		})

		assert.Nil(t, update)
		assert.ErrorIs(t, err, apperrors.ErrNotProjectMember)
		m.workUpdateRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc, m := newProjectService()

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.projectRepo.On("IsMember", ctx, int64(7), int64(3)).Return(true, nil)

		_, err := svc.SubmitWorkStatus(ctx, ports.SubmitWorkStatusParams{
			ProjectID: 7,
			ActorID:   3,
			Status:    domain.WorkStatus("HALF_DONE"),
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidWorkStatus)
	})
}

func TestProjectService_ListWorkStatuses(t *testing.T) {
	ctx := context.Background()

	t.Run("management reads the board", func(t *testing.T) {
		svc, m := newProjectService()

		m.userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)
		m.workUpdateRepo.On("ListByProject", ctx, int64(7)).Return([]*domain.WorkUpdate{
			{ID: 41, ProjectID: 7, MemberID: 3, Status: domain.WorkPartiallyDone, Username: "marco"},
		}, nil)

		updates, err := svc.ListWorkStatuses(ctx, 7, 1)
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, "marco", updates[0].Username)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		svc, m := newProjectService()

		m.userRepo.On("GetByID", ctx, int64(9)).Return(testEmployee(9, "outsider"), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.projectRepo.On("IsMember", ctx, int64(7), int64(9)).Return(false, nil)

		updates, err := svc.ListWorkStatuses(ctx, 7, 9)
		assert.Nil(t, updates)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.workUpdateRepo.AssertNotCalled(t, "ListByProject", mock.Anything, mock.Anything)
	})
}

func TestProjectService_SetProjectStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("team head files the report", func(t *testing.T) {
		svc, m := newProjectService()

		project := testProject(2)
		m.userRepo.On("GetByID", ctx, int64(2)).Return(testEmployee(2, "priya"), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).Return(project, nil)
		m.projectRepo.On("Update", ctx, project).Return(project, nil)

		updated, err := svc.SetProjectStatus(ctx, ports.SetProjectStatusParams{
			ProjectID:   7,
			ActorID:     2,
			Status:      domain.WorkPartiallyDone,
			Description: strPtr("backend done, frontend in review"),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.WorkPartiallyDone, updated.StatusReport)
		require.NotNil(t, updated.StatusDescription)
		assert.Equal(t, "backend done, frontend in review", *updated.StatusDescription)
	})

	t.Run("plain member is forbidden", func(t *testing.T) {
		svc, m := newProjectService()

		m.userRepo.On("GetByID", ctx, int64(3)).Return(testEmployee(3, "marco"), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)

		updated, err := svc.SetProjectStatus(ctx, ports.SetProjectStatusParams{
			ProjectID: 7,
			ActorID:   3,
			Status:    domain.WorkComplete,
		})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.projectRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc, m := newProjectService()

		m.userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)

		_, err := svc.SetProjectStatus(ctx, ports.SetProjectStatusParams{
			ProjectID: 7,
			ActorID:   1,
			Status:    domain.WorkStatus("DONE"),
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidWorkStatus)
	})
}

func TestProjectService_CanAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("management always may", func(t *testing.T) {
		svc, m := newProjectService()
		m.userRepo.On("GetByID", ctx, int64(1)).Return(testManager(1), nil)

		ok, err := svc.CanAccess(ctx, 7, 1)
		require.NoError(t, err)
		assert.True(t, ok)
		m.projectRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("team head may", func(t *testing.T) {
		svc, m := newProjectService()
		head := int64(2)
		m.userRepo.On("GetByID", ctx, int64(2)).Return(testEmployee(2, "priya"), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).
			Return(&domain.Project{ID: 7, TeamHeadID: &head}, nil)

		ok, err := svc.CanAccess(ctx, 7, 2)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("outsider may not", func(t *testing.T) {
		svc, m := newProjectService()
		head := int64(2)
		m.userRepo.On("GetByID", ctx, int64(9)).Return(testEmployee(9, "outsider"), nil)
		m.projectRepo.On("GetByID", ctx, int64(7)).
			Return(&domain.Project{ID: 7, TeamHeadID: &head}, nil)
		m.projectRepo.On("IsMember", ctx, int64(7), int64(9)).Return(false, nil)

		ok, err := svc.CanAccess(ctx, 7, 9)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

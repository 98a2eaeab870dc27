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

type updateServiceMocks struct {
	updateRepo    *mocks.MockUpdateRepository
	projectRepo   *mocks.MockProjectRepository
	userRepo      *mocks.MockUserRepository
	notifications *mocks.MockNotificationService
	publisher     *mocks.MockEventPublisher
}

func newUpdateService() (*services.UpdateService, updateServiceMocks) {
	m := updateServiceMocks{
		updateRepo:    mocks.NewMockUpdateRepository(),
		projectRepo:   mocks.NewMockProjectRepository(),
		userRepo:      mocks.NewMockUserRepository(),
		notifications: mocks.NewMockNotificationService(),
		publisher:     mocks.NewMockEventPublisher(),
	}
	svc := services.NewUpdateService(m.updateRepo, m.projectRepo, m.userRepo, m.notifications, m.publisher, testLogger())
	return svc, m
}

func testProject(headID int64) *domain.Project {
	creator := int64(1)
	p := &domain.Project{
		ID:          7,
		Name:        "Apollo",
		Status:      domain.ProjectInProgress,
		Priority:    domain.PriorityMedium,
		CreatedByID: &creator,
		CreatedAt:   time.Now().UTC(),
	}
	if headID != 0 {
		p.TeamHeadID = &headID
	}
	return p
}

func testEmployee(id int64, username string) *domain.User {
	return &domain.User{ID: id, Username: username, Role: domain.RoleEmployee, IsActive: true}
}

func TestUpdateService_PostChatMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("member posts, team is notified, event is published", func(t *testing.T) {
		svc, m := newUpdateService()

		project := testProject(2)
		actor := testEmployee(3, "marco")

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(project, nil)
		m.userRepo.On("GetByID", ctx, int64(3)).Return(actor, nil)
		m.projectRepo.On("IsMember", ctx, int64(7), int64(3)).Return(true, nil)

		m.updateRepo.On("Create", ctx, mock.AnythingOfType("*domain.ProjectUpdate")).
			Return(&domain.ProjectUpdate{
				ID:        99,
				ProjectID: 7,
				UserID:    3,
				Category:  domain.CategoryUpdate,
				Remarks:   strPtr("pushed the fix"),
				CreatedAt: time.Now().UTC(),
			}, nil)

		// Recipients: creator (1), head (2), members (3,4) minus actor (3).
		m.projectRepo.On("ListMembers", ctx, int64(7)).Return([]*domain.ProjectMember{
			{ProjectID: 7, UserID: 3, Role: domain.RoleDeveloper},
			{ProjectID: 7, UserID: 4, Role: domain.RoleTester},
		}, nil)
		m.notifications.On("Notify", ctx, mock.AnythingOfType("int64"), "Chat from marco", mock.AnythingOfType("*string")).
			Return(&domain.Notification{}, nil)
		m.publisher.On("PublishProjectUpdate", mock.AnythingOfType("domain.ProjectUpdatePosted")).Return()

		created, err := svc.PostChatMessage(ctx, ports.PostUpdateParams{
			ProjectID: 7,
			ActorID:   3,
			Remarks:   strPtr("pushed the fix"),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(99), created.ID)
		assert.Nil(t, created.Title)

		m.notifications.AssertNumberOfCalls(t, "Notify", 3)
		m.notifications.AssertNotCalled(t, "Notify", ctx, int64(3), mock.Anything, mock.Anything)
		m.publisher.AssertExpectations(t)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		svc, m := newUpdateService()

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.userRepo.On("GetByID", ctx, int64(9)).Return(testEmployee(9, "outsider"), nil)
		m.projectRepo.On("IsMember", ctx, int64(7), int64(9)).Return(false, nil)

		created, err := svc.PostChatMessage(ctx, ports.PostUpdateParams{
			ProjectID: 7,
			ActorID:   9,
			Remarks:   strPtr("let me in"),
		})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.updateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.publisher.AssertNotCalled(t, "PublishProjectUpdate", mock.Anything)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		svc, m := newUpdateService()

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.userRepo.On("GetByID", ctx, int64(3)).Return(testEmployee(3, "marco"), nil)
		m.projectRepo.On("IsMember", ctx, int64(7), int64(3)).Return(true, nil)

		_, err := svc.PostChatMessage(ctx, ports.PostUpdateParams{
			ProjectID: 7,
			ActorID:   3,
		})

		assert.ErrorIs(t, err, apperrors.ErrEmptyUpdate)
	})
}

func TestUpdateService_PostUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("team head posts a titled update", func(t *testing.T) {
		svc, m := newUpdateService()

		project := testProject(2)
		head := testEmployee(2, "priya")

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(project, nil)
		m.userRepo.On("GetByID", ctx, int64(2)).Return(head, nil)

		m.updateRepo.On("Create", ctx, mock.AnythingOfType("*domain.ProjectUpdate")).
			Return(&domain.ProjectUpdate{
				ID:        100,
				ProjectID: 7,
				UserID:    2,
				Category:  domain.CategoryUpdate,
				Title:     strPtr("Sprint review"),
				Remarks:   strPtr("All pages signed off"),
				CreatedAt: time.Now().UTC(),
				Attachments: []domain.UpdateAttachment{
					{ID: 1, ProjectUpdateID: 100, FileURL: "https://files.example/report.pdf"},
				},
			}, nil)

		m.projectRepo.On("ListMembers", ctx, int64(7)).Return([]*domain.ProjectMember{
			{ProjectID: 7, UserID: 3, Role: domain.RoleDeveloper},
		}, nil)
		m.notifications.On("Notify", ctx, mock.AnythingOfType("int64"), "Update: Sprint review", mock.AnythingOfType("*string")).
			Return(&domain.Notification{}, nil)

		var published domain.ProjectUpdatePosted
		m.publisher.On("PublishProjectUpdate", mock.AnythingOfType("domain.ProjectUpdatePosted")).
			Run(func(args mock.Arguments) {
				published = args.Get(0).(domain.ProjectUpdatePosted)
			}).
			Return()

		created, err := svc.PostUpdate(ctx, ports.PostUpdateParams{
			ProjectID:      7,
			ActorID:        2,
			Title:          strPtr("Sprint review"),
			Remarks:        strPtr("All pages signed off"),
			AttachmentURLs: []string{"https://files.example/report.pdf"},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(100), created.ID)
		require.Len(t, created.Attachments, 1)

		assert.Equal(t, int64(2), published.SenderID)
		assert.Equal(t, "priya", published.SenderUsername)
		require.NotNil(t, published.Title)
		assert.Equal(t, "Sprint review", *published.Title)
	})

	t.Run("plain member may not post titled updates", func(t *testing.T) {
		svc, m := newUpdateService()

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.userRepo.On("GetByID", ctx, int64(3)).Return(testEmployee(3, "marco"), nil)

		created, err := svc.PostUpdate(ctx, ports.PostUpdateParams{
			ProjectID: 7,
			ActorID:   3,
			Title:     strPtr("I want a timeline entry"),
		})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.updateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		svc, m := newUpdateService()

		m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
		m.userRepo.On("GetByID", ctx, int64(2)).Return(testEmployee(2, "priya"), nil)

		_, err := svc.PostUpdate(ctx, ports.PostUpdateParams{
			ProjectID: 7,
			ActorID:   2,
		})

		assert.ErrorIs(t, err, apperrors.ErrEmptyUpdate)
	})
}

func TestUpdateService_ListChatMessages_Forbidden(t *testing.T) {
	ctx := context.Background()
	svc, m := newUpdateService()

	m.projectRepo.On("GetByID", ctx, int64(7)).Return(testProject(2), nil)
	m.userRepo.On("GetByID", ctx, int64(9)).Return(testEmployee(9, "outsider"), nil)
	m.projectRepo.On("IsMember", ctx, int64(7), int64(9)).Return(false, nil)

	messages, err := svc.ListChatMessages(ctx, 7, 9)

	assert.Nil(t, messages)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	m.updateRepo.AssertNotCalled(t, "ListChatByProject", mock.Anything, mock.Anything)
}

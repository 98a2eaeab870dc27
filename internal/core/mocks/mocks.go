package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockProjectRepository is a mock implementation of ports.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{}
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListAll(ctx context.Context) ([]*domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) AddMember(ctx context.Context, member *domain.ProjectMember) (*domain.ProjectMember, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectMember), args.Error(1)
}

func (m *MockProjectRepository) RemoveMember(ctx context.Context, projectID, memberID int64) error {
	args := m.Called(ctx, projectID, memberID)
	return args.Error(0)
}

func (m *MockProjectRepository) ListMembers(ctx context.Context, projectID int64) ([]*domain.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProjectMember), args.Error(1)
}

func (m *MockProjectRepository) IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

// MockWorkUpdateRepository is a mock implementation of ports.WorkUpdateRepository
type MockWorkUpdateRepository struct {
	mock.Mock
}

func NewMockWorkUpdateRepository() *MockWorkUpdateRepository {
	return &MockWorkUpdateRepository{}
}

func (m *MockWorkUpdateRepository) Upsert(ctx context.Context, update *domain.WorkUpdate) (*domain.WorkUpdate, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkUpdate), args.Error(1)
}

func (m *MockWorkUpdateRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.WorkUpdate, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WorkUpdate), args.Error(1)
}

// MockUpdateRepository is a mock implementation of ports.UpdateRepository
type MockUpdateRepository struct {
	mock.Mock
}

func NewMockUpdateRepository() *MockUpdateRepository {
	return &MockUpdateRepository{}
}

func (m *MockUpdateRepository) Create(ctx context.Context, update *domain.ProjectUpdate) (*domain.ProjectUpdate, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectUpdate), args.Error(1)
}

func (m *MockUpdateRepository) ListChatByProject(ctx context.Context, projectID int64) ([]*domain.ProjectUpdate, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProjectUpdate), args.Error(1)
}

func (m *MockUpdateRepository) ListTimelineByProject(ctx context.Context, projectID int64) ([]*domain.ProjectUpdate, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProjectUpdate), args.Error(1)
}

// MockTaskRepository is a mock implementation of ports.TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{}
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.TaskPage) (*domain.TaskPage, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskPage), args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*domain.TaskPage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskPage), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.TaskPage) (*domain.TaskPage, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskPage), args.Error(1)
}

func (m *MockTaskRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.TaskPage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TaskPage), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.TaskPage, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TaskPage), args.Error(1)
}

// MockIssueRepository is a mock implementation of ports.IssueRepository
type MockIssueRepository struct {
	mock.Mock
}

func NewMockIssueRepository() *MockIssueRepository {
	return &MockIssueRepository{}
}

func (m *MockIssueRepository) Create(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	args := m.Called(ctx, issue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *MockIssueRepository) GetByID(ctx context.Context, id int64) (*domain.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *MockIssueRepository) Update(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	args := m.Called(ctx, issue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *MockIssueRepository) ListAll(ctx context.Context) ([]*domain.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Issue), args.Error(1)
}

func (m *MockIssueRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Issue, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Issue), args.Error(1)
}

// MockDailyUpdateRepository is a mock implementation of ports.DailyUpdateRepository
type MockDailyUpdateRepository struct {
	mock.Mock
}

func NewMockDailyUpdateRepository() *MockDailyUpdateRepository {
	return &MockDailyUpdateRepository{}
}

func (m *MockDailyUpdateRepository) Create(ctx context.Context, update *domain.DailyUpdate) (*domain.DailyUpdate, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyUpdate), args.Error(1)
}

func (m *MockDailyUpdateRepository) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*domain.DailyUpdate, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyUpdate), args.Error(1)
}

func (m *MockDailyUpdateRepository) ListByDay(ctx context.Context, day time.Time) ([]*domain.DailyUpdate, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyUpdate), args.Error(1)
}

// MockNotificationRepository is a mock implementation of ports.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAuthService is a mock implementation of ports.AuthService
type MockAuthService struct {
	mock.Mock
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, actorID int64, params domain.UserRegistrationParams) (*domain.User, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockProjectService is a mock implementation of ports.ProjectService
type MockProjectService struct {
	mock.Mock
}

func NewMockProjectService() *MockProjectService {
	return &MockProjectService{}
}

func (m *MockProjectService) CreateProject(ctx context.Context, params ports.CreateProjectParams) (*domain.Project, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) GetProject(ctx context.Context, projectID, viewerID int64) (*domain.Project, error) {
	args := m.Called(ctx, projectID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context, viewerID int64) ([]*domain.Project, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *MockProjectService) AddMember(ctx context.Context, params ports.AddMemberParams) (*domain.ProjectMember, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectMember), args.Error(1)
}

func (m *MockProjectService) RemoveMember(ctx context.Context, projectID, memberID, actorID int64) error {
	args := m.Called(ctx, projectID, memberID, actorID)
	return args.Error(0)
}

func (m *MockProjectService) ListMembers(ctx context.Context, projectID int64) ([]*domain.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProjectMember), args.Error(1)
}

func (m *MockProjectService) SetMeetingLink(ctx context.Context, params ports.SetMeetingLinkParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockProjectService) EndMeeting(ctx context.Context, projectID, actorID int64) error {
	args := m.Called(ctx, projectID, actorID)
	return args.Error(0)
}

func (m *MockProjectService) SubmitWorkStatus(ctx context.Context, params ports.SubmitWorkStatusParams) (*domain.WorkUpdate, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkUpdate), args.Error(1)
}

func (m *MockProjectService) ListWorkStatuses(ctx context.Context, projectID, viewerID int64) ([]*domain.WorkUpdate, error) {
	args := m.Called(ctx, projectID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WorkUpdate), args.Error(1)
}

func (m *MockProjectService) SetProjectStatus(ctx context.Context, params ports.SetProjectStatusParams) (*domain.Project, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) CanAccess(ctx context.Context, projectID, userID int64) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

// MockUpdateService is a mock implementation of ports.UpdateService
type MockUpdateService struct {
	mock.Mock
}

func NewMockUpdateService() *MockUpdateService {
	return &MockUpdateService{}
}

func (m *MockUpdateService) PostChatMessage(ctx context.Context, params ports.PostUpdateParams) (*domain.ProjectUpdate, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectUpdate), args.Error(1)
}

func (m *MockUpdateService) PostUpdate(ctx context.Context, params ports.PostUpdateParams) (*domain.ProjectUpdate, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectUpdate), args.Error(1)
}

func (m *MockUpdateService) ListChatMessages(ctx context.Context, projectID, viewerID int64) ([]*domain.ProjectUpdate, error) {
	args := m.Called(ctx, projectID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProjectUpdate), args.Error(1)
}

func (m *MockUpdateService) ListUpdates(ctx context.Context, projectID, viewerID int64) ([]*domain.ProjectUpdate, error) {
	args := m.Called(ctx, projectID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProjectUpdate), args.Error(1)
}

// MockNotificationService is a mock implementation of ports.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) Notify(ctx context.Context, userID int64, message string, link *string) (*domain.Notification, error) {
	args := m.Called(ctx, userID, message, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishNotification(n domain.NotificationCreated) {
	m.Called(n)
}

func (m *MockEventPublisher) PublishProjectUpdate(u domain.ProjectUpdatePosted) {
	m.Called(u)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Broadcast(event domain.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockUpdateRenderer is a mock implementation of ports.UpdateRenderer
type MockUpdateRenderer struct {
	mock.Mock
}

func NewMockUpdateRenderer() *MockUpdateRenderer {
	return &MockUpdateRenderer{}
}

func (m *MockUpdateRenderer) RenderTimelineItem(u domain.ProjectUpdatePosted) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *MockUpdateRenderer) RenderChatBubble(u domain.ProjectUpdatePosted) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Send(ctx context.Context, params ports.EmailParams) {
	m.Called(ctx, params)
}

package ports

import (
	"context"
	"time"

	"github.com/savithru/pms-backend/internal/core/domain"
)

// UserRepository is the port for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error)
}

// ProjectRepository is the port for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (*domain.Project, error)
	ListAll(ctx context.Context) ([]*domain.Project, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Project, error)

	AddMember(ctx context.Context, member *domain.ProjectMember) (*domain.ProjectMember, error)
	RemoveMember(ctx context.Context, projectID, memberID int64) error
	ListMembers(ctx context.Context, projectID int64) ([]*domain.ProjectMember, error)
	IsMember(ctx context.Context, projectID, userID int64) (bool, error)
}

// WorkUpdateRepository is the port for member work status persistence.
type WorkUpdateRepository interface {
	// Upsert inserts the member's work update or replaces the existing one
	// for the same project and member.
	Upsert(ctx context.Context, update *domain.WorkUpdate) (*domain.WorkUpdate, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.WorkUpdate, error)
}

// UpdateRepository is the port for project update persistence.
type UpdateRepository interface {
	Create(ctx context.Context, update *domain.ProjectUpdate) (*domain.ProjectUpdate, error)
	ListChatByProject(ctx context.Context, projectID int64) ([]*domain.ProjectUpdate, error)
	ListTimelineByProject(ctx context.Context, projectID int64) ([]*domain.ProjectUpdate, error)
}

// TaskRepository is the port for task page persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.TaskPage) (*domain.TaskPage, error)
	GetByID(ctx context.Context, id int64) (*domain.TaskPage, error)
	Update(ctx context.Context, task *domain.TaskPage) (*domain.TaskPage, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.TaskPage, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.TaskPage, error)
}

// IssueRepository is the port for issue persistence.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) (*domain.Issue, error)
	GetByID(ctx context.Context, id int64) (*domain.Issue, error)
	Update(ctx context.Context, issue *domain.Issue) (*domain.Issue, error)
	ListAll(ctx context.Context) ([]*domain.Issue, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Issue, error)
}

// DailyUpdateRepository is the port for daily time log persistence.
type DailyUpdateRepository interface {
	Create(ctx context.Context, update *domain.DailyUpdate) (*domain.DailyUpdate, error)
	ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*domain.DailyUpdate, error)
	ListByDay(ctx context.Context, day time.Time) ([]*domain.DailyUpdate, error)
}

// NotificationRepository is the port for notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

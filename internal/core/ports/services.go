package ports

import (
	"context"
	"time"

	"github.com/savithru/pms-backend/internal/core/domain"
)

// AuthService defines the port for authentication business logic.
type AuthService interface {
	// Register creates a new account. Only management may register users.
	Register(ctx context.Context, actorID int64, params domain.UserRegistrationParams) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
}

// CreateProjectParams defines the input for creating a project.
type CreateProjectParams struct {
	Name        string
	Description string
	Priority    domain.ProjectPriority
	ClientName  *string
	StartDate   *time.Time
	EndDate     *time.Time
	TeamHeadID  *int64
	ActorID     int64
}

// AddMemberParams defines the input for adding a project member.
type AddMemberParams struct {
	ProjectID int64
	UserID    int64
	Role      domain.ProjectRole
	ActorID   int64
}

// SetMeetingLinkParams defines the input for attaching a meeting link.
type SetMeetingLinkParams struct {
	ProjectID int64
	Link      string
	ActorID   int64
}

// SubmitWorkStatusParams defines the input for a member's work update.
type SubmitWorkStatusParams struct {
	ProjectID int64
	ActorID   int64
	Status    domain.WorkStatus
	Remarks   *string
}

// SetProjectStatusParams defines the input for the team head's status report.
type SetProjectStatusParams struct {
	ProjectID   int64
	ActorID     int64
	Status      domain.WorkStatus
	Description *string
}

// ProjectService defines the core business operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, params CreateProjectParams) (*domain.Project, error)
	GetProject(ctx context.Context, projectID, viewerID int64) (*domain.Project, error)
	ListProjects(ctx context.Context, viewerID int64) ([]*domain.Project, error)
	AddMember(ctx context.Context, params AddMemberParams) (*domain.ProjectMember, error)
	RemoveMember(ctx context.Context, projectID, memberID, actorID int64) error
	ListMembers(ctx context.Context, projectID int64) ([]*domain.ProjectMember, error)
	// SetMeetingLink stores the link, notifies every member and the team
	// head except the actor, and fires best-effort invite emails.
	SetMeetingLink(ctx context.Context, params SetMeetingLinkParams) error
	EndMeeting(ctx context.Context, projectID, actorID int64) error
	// SubmitWorkStatus upserts the actor's work update on the project.
	// Members and the team head only.
	SubmitWorkStatus(ctx context.Context, params SubmitWorkStatusParams) (*domain.WorkUpdate, error)
	ListWorkStatuses(ctx context.Context, projectID, viewerID int64) ([]*domain.WorkUpdate, error)
	// SetProjectStatus records the team head's progress report on the
	// project itself.
	SetProjectStatus(ctx context.Context, params SetProjectStatusParams) (*domain.Project, error)
	// CanAccess reports whether the user may view the project and its
	// live update stream.
	CanAccess(ctx context.Context, projectID, userID int64) (bool, error)
}

// PostUpdateParams defines the input for posting on a project stream.
type PostUpdateParams struct {
	ProjectID      int64
	ActorID        int64
	Title          *string
	Remarks        *string
	Priority       *domain.ProjectPriority
	ImageURL       *string
	FileURL        *string
	FileName       *string
	AttachmentURLs []string
}

// UpdateService defines the port for project chat and timeline updates.
type UpdateService interface {
	// PostChatMessage posts an untitled chat-style message.
	PostChatMessage(ctx context.Context, params PostUpdateParams) (*domain.ProjectUpdate, error)
	// PostUpdate posts a titled timeline update, management or team head only.
	PostUpdate(ctx context.Context, params PostUpdateParams) (*domain.ProjectUpdate, error)
	ListChatMessages(ctx context.Context, projectID, viewerID int64) ([]*domain.ProjectUpdate, error)
	ListUpdates(ctx context.Context, projectID, viewerID int64) ([]*domain.ProjectUpdate, error)
}

// TaskService defines the port for task page management.
type TaskService interface {
	AssignTaskPage(ctx context.Context, projectID, userID int64, pageName string, actorID int64) (*domain.TaskPage, error)
	// SetTaskStatus flips completion and notifies the assignee.
	SetTaskStatus(ctx context.Context, taskID int64, complete bool, actorID int64) (*domain.TaskPage, error)
	ListTasksForUser(ctx context.Context, userID int64) ([]*domain.TaskPage, error)
	ListTasksForProject(ctx context.Context, projectID, userID int64) ([]*domain.TaskPage, error)
}

// IssueService defines the port for employee issue handling.
type IssueService interface {
	SubmitIssue(ctx context.Context, actorID int64, subject domain.IssueSubject, description string, attachmentURL *string) (*domain.Issue, error)
	SetIssueStatus(ctx context.Context, issueID int64, status domain.IssueStatus, actorID int64) (*domain.Issue, error)
	GetIssue(ctx context.Context, issueID, viewerID int64) (*domain.Issue, error)
	ListIssues(ctx context.Context, viewerID int64) ([]*domain.Issue, error)
}

// DailyUpdateService defines the port for daily time logs.
type DailyUpdateService interface {
	SubmitDailyUpdate(ctx context.Context, params domain.DailyUpdateParams) (*domain.DailyUpdate, error)
	ListForUser(ctx context.Context, userID int64, from, to time.Time) ([]*domain.DailyUpdate, error)
	ListForDay(ctx context.Context, day time.Time, viewerID int64) ([]*domain.DailyUpdate, error)
}

// NotificationService defines the port for in-app notifications. Notify is
// the single entry point other services use; it persists the row and then
// publishes the live event as a post-commit step.
type NotificationService interface {
	Notify(ctx context.Context, userID int64, message string, link *string) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// EventPublisher resolves a committed domain mutation into a framed
// real-time event and hands it to the dispatcher. It never blocks on
// delivery and never reports delivery failures to its caller.
type EventPublisher interface {
	PublishNotification(n domain.NotificationCreated)
	PublishProjectUpdate(u domain.ProjectUpdatePosted)
}

// EventBroadcaster accepts framed events for fan-out. Implemented by the
// websocket dispatcher.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}

// UpdateRenderer produces the pre-rendered HTML fragment carried on project
// update frames. Titled updates use the timeline layout, untitled ones the
// chat bubble layout.
type UpdateRenderer interface {
	RenderTimelineItem(u domain.ProjectUpdatePosted) (string, error)
	RenderChatBubble(u domain.ProjectUpdatePosted) (string, error)
}

// EmailParams defines the input for sending an email.
type EmailParams struct {
	To      []string
	Subject string
	Body    string
}

// Notifier defines the port for sending emails. Delivery is best-effort
// and fire-and-forget.
type Notifier interface {
	Send(ctx context.Context, params EmailParams)
}

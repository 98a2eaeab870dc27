package domain

import (
	"time"

	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "PENDING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
)

// ProjectPriority represents the urgency of a project.
type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "LOW"
	PriorityMedium ProjectPriority = "MEDIUM"
	PriorityHigh   ProjectPriority = "HIGH"
)

// ProjectRole is the function a member performs on a project team.
type ProjectRole string

const (
	RoleUIUX      ProjectRole = "UI_UX"
	RoleDeveloper ProjectRole = "DEVELOPER"
	RoleTester    ProjectRole = "TESTER"
)

// Project is the central domain entity that rooms, tasks, and updates hang
// off of. StatusReport and StatusDescription carry the team head's own
// progress summary, separate from the lifecycle Status.
type Project struct {
	ID                int64
	Name              string
	Description       string
	Status            ProjectStatus
	Priority          ProjectPriority
	ClientName        *string
	StartDate         *time.Time
	EndDate           *time.Time
	LogoURL           *string
	GoogleMeetLink    *string
	CreatedByID       *int64
	TeamHeadID        *int64
	StatusReport      WorkStatus
	StatusDescription *string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// ProjectMember links an employee to a project with a team role. A user may
// hold more than one role on the same project.
type ProjectMember struct {
	ID        int64
	ProjectID int64
	UserID    int64
	Role      ProjectRole
	Username  string
	Email     string
}

// ProjectParams holds the input for creating a project.
type ProjectParams struct {
	Name        string
	Description string
	Priority    ProjectPriority
	ClientName  *string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedByID int64
}

// NewProject creates a valid new project in the pending state.
func NewProject(params ProjectParams) (*Project, error) {
	if params.Name == "" {
		return nil, apperrors.ErrProjectNameRequired
	}
	if params.Priority == "" {
		params.Priority = PriorityMedium
	}

	createdBy := params.CreatedByID
	return &Project{
		Name:         params.Name,
		Description:  params.Description,
		Status:       ProjectPending,
		Priority:     params.Priority,
		ClientName:   params.ClientName,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		CreatedByID:  &createdBy,
		StatusReport: WorkIncomplete,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// SetStatusReport records the team head's progress summary.
func (p *Project) SetStatusReport(status WorkStatus, description *string) error {
	if !status.Valid() {
		return apperrors.ErrInvalidWorkStatus
	}
	p.StatusReport = status
	p.StatusDescription = description
	now := time.Now().UTC()
	p.UpdatedAt = &now
	return nil
}

// SetMeetingLink attaches a meeting URL to the project.
func (p *Project) SetMeetingLink(link string) error {
	if link == "" {
		return apperrors.ErrMeetingLinkRequired
	}
	p.GoogleMeetLink = &link
	now := time.Now().UTC()
	p.UpdatedAt = &now
	return nil
}

// EndMeeting clears the meeting link.
func (p *Project) EndMeeting() {
	p.GoogleMeetLink = nil
	now := time.Now().UTC()
	p.UpdatedAt = &now
}

// IsHeadedBy reports whether the given user is the project's team head.
func (p *Project) IsHeadedBy(userID int64) bool {
	return p.TeamHeadID != nil && *p.TeamHeadID == userID
}

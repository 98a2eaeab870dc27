package domain

import (
	"time"

	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// TaskPage is a unit of work assigned to an employee within a project.
type TaskPage struct {
	ID         int64
	ProjectID  int64
	AssignedTo int64
	PageName   string
	IsComplete bool
	CreatedAt  time.Time
}

// NewTaskPage creates a valid task page assignment.
func NewTaskPage(projectID, assignedTo int64, pageName string) (*TaskPage, error) {
	if pageName == "" {
		return nil, apperrors.ErrTaskNameRequired
	}
	return &TaskPage{
		ProjectID:  projectID,
		AssignedTo: assignedTo,
		PageName:   pageName,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// StatusLabel is the human label used in task status notifications.
func (t *TaskPage) StatusLabel() string {
	if t.IsComplete {
		return "done"
	}
	return "pending"
}

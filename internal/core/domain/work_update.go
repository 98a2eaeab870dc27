package domain

import (
	"time"

	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// WorkStatus is a self-reported progress state, used both for a member's
// standing work update and for the team head's project-level status report.
type WorkStatus string

const (
	WorkIncomplete    WorkStatus = "INCOMPLETE"
	WorkPartiallyDone WorkStatus = "PARTIALLY_DONE"
	WorkComplete      WorkStatus = "COMPLETE"
)

// Valid reports whether the status is one of the known states.
func (s WorkStatus) Valid() bool {
	switch s {
	case WorkIncomplete, WorkPartiallyDone, WorkComplete:
		return true
	}
	return false
}

// WorkUpdate is a member's current work status on a project. There is at
// most one per member per project; submitting again replaces the status and
// remarks in place.
type WorkUpdate struct {
	ID        int64
	ProjectID int64
	MemberID  int64
	Status    WorkStatus
	Remarks   *string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWorkUpdate validates and builds a member work update.
func NewWorkUpdate(projectID, memberID int64, status WorkStatus, remarks *string) (*WorkUpdate, error) {
	if status == "" {
		status = WorkIncomplete
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidWorkStatus
	}
	return &WorkUpdate{
		ProjectID: projectID,
		MemberID:  memberID,
		Status:    status,
		Remarks:   remarks,
	}, nil
}

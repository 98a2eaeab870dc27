package domain

import (
	"time"

	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// IssueSubject categorizes an employee-raised issue.
type IssueSubject string

const (
	IssueLeave          IssueSubject = "LEAVE"
	IssueWorkFromHome   IssueSubject = "WFH"
	IssueProjectIssue   IssueSubject = "PROJECT_ISSUE"
	IssueHarassment     IssueSubject = "HARRASSMENT"
	IssueTechnicalIssue IssueSubject = "TECHNICAL_ISSUE"
	IssuePayroll        IssueSubject = "PAYROLL"
	IssueOther          IssueSubject = "OTHER"
)

// IssueStatus is the management decision on an issue.
type IssueStatus string

const (
	IssuePending     IssueStatus = "PENDING"
	IssueAccepted    IssueStatus = "ACCEPTED"
	IssueDeclined    IssueStatus = "DECLINED"
	IssueWFHApproved IssueStatus = "WFH_APPROVED"
)

var validIssueSubjects = map[IssueSubject]bool{
	IssueLeave: true, IssueWorkFromHome: true, IssueProjectIssue: true,
	IssueHarassment: true, IssueTechnicalIssue: true, IssuePayroll: true,
	IssueOther: true,
}

var validIssueStatuses = map[IssueStatus]bool{
	IssuePending: true, IssueAccepted: true, IssueDeclined: true,
	IssueWFHApproved: true,
}

// Issue is a request or complaint an employee submits to management.
type Issue struct {
	ID            int64
	UserID        int64
	Subject       IssueSubject
	Description   string
	AttachmentURL *string
	Status        IssueStatus
	CreatedAt     time.Time
}

// NewIssue creates a valid issue in the pending state.
func NewIssue(userID int64, subject IssueSubject, description string, attachmentURL *string) (*Issue, error) {
	if !validIssueSubjects[subject] {
		return nil, apperrors.ErrInvalidIssueSubject
	}
	if description == "" {
		return nil, apperrors.ErrDescriptionRequired
	}
	return &Issue{
		UserID:        userID,
		Subject:       subject,
		Description:   description,
		AttachmentURL: attachmentURL,
		Status:        IssuePending,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// SetStatus applies a management decision.
func (i *Issue) SetStatus(status IssueStatus) error {
	if !validIssueStatuses[status] {
		return apperrors.ErrInvalidIssueStatus
	}
	i.Status = status
	return nil
}

package domain

import (
	"time"

	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// UpdateCategory distinguishes status reports from recommendations.
type UpdateCategory string

const (
	CategoryUpdate         UpdateCategory = "UPDATE"
	CategoryRecommendation UpdateCategory = "RECOMMENDATION"
)

// ProjectUpdate is a message posted on a project's stream. Updates with a
// title render on the project timeline; untitled ones are chat messages.
type ProjectUpdate struct {
	ID        int64
	ProjectID int64
	UserID    int64
	Category  UpdateCategory
	Title     *string
	Remarks   *string
	Priority  *ProjectPriority
	ImageURL  *string
	FileURL   *string
	FileName  *string
	CreatedAt time.Time

	Attachments []UpdateAttachment
}

// UpdateAttachment is an extra file hanging off a titled update.
type UpdateAttachment struct {
	ID              int64
	ProjectUpdateID int64
	FileURL         string
	UploadedAt      time.Time
}

// HasTitle reports whether this update renders as a timeline item.
func (u *ProjectUpdate) HasTitle() bool {
	return u.Title != nil && *u.Title != ""
}

// ProjectUpdateParams holds the input for posting an update or chat message.
type ProjectUpdateParams struct {
	ProjectID      int64
	UserID         int64
	Category       UpdateCategory
	Title          *string
	Remarks        *string
	Priority       *ProjectPriority
	ImageURL       *string
	FileURL        *string
	FileName       *string
	AttachmentURLs []string
}

// NewProjectUpdate creates a valid project update. A message needs either
// text or an attachment of some kind.
func NewProjectUpdate(params ProjectUpdateParams) (*ProjectUpdate, error) {
	hasText := params.Remarks != nil && *params.Remarks != ""
	hasTitle := params.Title != nil && *params.Title != ""
	if !hasText && !hasTitle && params.ImageURL == nil && params.FileURL == nil && len(params.AttachmentURLs) == 0 {
		return nil, apperrors.ErrEmptyUpdate
	}

	if params.Category == "" {
		params.Category = CategoryUpdate
	}

	update := &ProjectUpdate{
		ProjectID: params.ProjectID,
		UserID:    params.UserID,
		Category:  params.Category,
		Title:     params.Title,
		Remarks:   params.Remarks,
		Priority:  params.Priority,
		ImageURL:  params.ImageURL,
		FileURL:   params.FileURL,
		FileName:  params.FileName,
		CreatedAt: time.Now().UTC(),
	}

	for _, url := range params.AttachmentURLs {
		update.Attachments = append(update.Attachments, UpdateAttachment{FileURL: url})
	}

	return update, nil
}

// ProjectUpdatePosted describes a committed project update for the event
// publisher: the row's fields plus the sender details the wire frame needs.
type ProjectUpdatePosted struct {
	ProjectID          int64
	SenderID           int64
	SenderUsername     string
	SenderProfilePhoto *string
	Title              *string
	Remarks            *string
	CreatedAt          time.Time
	ImageURL           *string
	FileURL            *string
	FileName           *string
}

// NotificationCreated describes a committed notification row for the event
// publisher.
type NotificationCreated struct {
	UserID  int64
	Message string
	Link    *string
}

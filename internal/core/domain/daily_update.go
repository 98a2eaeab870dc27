package domain

import (
	"time"

	apperrors "github.com/savithru/pms-backend/internal/core/errors"
)

// DailyUpdate is one day's time log for an employee. A user may submit more
// than one per day.
type DailyUpdate struct {
	ID          int64
	UserID      int64
	Date        time.Time
	Description string
	CreatedAt   time.Time

	LineItems []DailyUpdateLineItem
}

// DailyUpdateLineItem records time spent on one task page.
type DailyUpdateLineItem struct {
	ID            int64
	DailyUpdateID int64
	ProjectID     int64
	TaskPageID    int64
	// Free-form duration, e.g. "2:30" or "2 hrs".
	TimeSpent string
}

// DailyUpdateParams holds the input for submitting a daily log.
type DailyUpdateParams struct {
	UserID      int64
	Date        time.Time
	Description string
	LineItems   []DailyUpdateLineItem
}

// NewDailyUpdate creates a valid daily log with at least one line item.
func NewDailyUpdate(params DailyUpdateParams) (*DailyUpdate, error) {
	if len(params.LineItems) == 0 {
		return nil, apperrors.ErrNoLineItems
	}
	for _, item := range params.LineItems {
		if item.TimeSpent == "" {
			return nil, apperrors.ErrTimeSpentRequired
		}
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	return &DailyUpdate{
		UserID:      params.UserID,
		Date:        date,
		Description: params.Description,
		CreatedAt:   time.Now().UTC(),
		LineItems:   params.LineItems,
	}, nil
}

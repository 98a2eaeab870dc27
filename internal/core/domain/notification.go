package domain

import "time"

// Notification is a persisted in-app notification. Creating one also feeds
// the live notification room for its recipient.
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	Link      *string
	IsRead    bool
	CreatedAt time.Time
}

// Posted converts the row into the publisher's event input.
func (n *Notification) Posted() NotificationCreated {
	return NotificationCreated{
		UserID:  n.UserID,
		Message: n.Message,
		Link:    n.Link,
	}
}

package domain

import "fmt"

// EventKind identifies the kind of real-time event.
type EventKind string

const (
	EventNotification  EventKind = "notification"
	EventProjectUpdate EventKind = "project_update"
)

// Event is the immutable payload handed to the broadcast dispatcher. It is
// constructed once per domain mutation and consumed exactly once; there is
// no retry buffer or durable queue behind it.
type Event struct {
	Kind EventKind
	Room string
	// Frame is the fully formed wire payload. The dispatcher never inspects
	// it; sessions marshal it as-is.
	Frame any
}

// NotificationRoom returns the room id for a user's notification stream.
func NotificationRoom(userID int64) string {
	return fmt.Sprintf("user:%d:notifications", userID)
}

// ProjectUpdatesRoom returns the room id for a project's live update stream.
func ProjectUpdatesRoom(projectID int64) string {
	return fmt.Sprintf("project:%d:updates", projectID)
}

// NotificationFrame is the wire payload for notification rooms. It is the
// only server-to-client message kind on that room.
type NotificationFrame struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Link    *string `json:"link"`
}

// ProjectUpdateFrame is the wire payload for project update rooms. Fields
// absent on the source event are transmitted as null rather than omitted so
// clients always see a stable shape.
type ProjectUpdateFrame struct {
	Type               string  `json:"type"`
	HTML               string  `json:"html"`
	Title              *string `json:"title"`
	Message            *string `json:"message"`
	SenderID           int64   `json:"sender_id"`
	SenderUsername     string  `json:"sender_username"`
	SenderProfilePhoto *string `json:"sender_profile_photo"`
	Timestamp          string  `json:"timestamp"`
	ImageURL           *string `json:"image_url"`
	FileURL            *string `json:"file_url"`
	FileName           *string `json:"file_name"`
}

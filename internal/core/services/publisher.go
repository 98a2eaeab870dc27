package services

import (
	"log/slog"

	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// timestampLayout renders a 12-hour clock with an AM/PM marker, e.g.
// "03:45 PM".
const timestampLayout = "03:04 PM"

// EventPublisher packages committed domain mutations as real-time events
// and hands them to the broadcaster. Services call it synchronously right
// after a successful write; it does no I/O of its own beyond the hand-off,
// so the mutating request never waits on a socket.
type EventPublisher struct {
	broadcaster ports.EventBroadcaster
	renderer    ports.UpdateRenderer
	logger      *slog.Logger
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher creates a publisher over the given broadcaster and
// fragment renderer.
func NewEventPublisher(broadcaster ports.EventBroadcaster, renderer ports.UpdateRenderer, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		broadcaster: broadcaster,
		renderer:    renderer,
		logger:      logger.With("component", "event_publisher"),
	}
}

// PublishNotification fans a new notification out to its recipient's
// notification room.
func (p *EventPublisher) PublishNotification(n domain.NotificationCreated) {
	event := domain.Event{
		Kind: domain.EventNotification,
		Room: domain.NotificationRoom(n.UserID),
		Frame: domain.NotificationFrame{
			Type:    string(domain.EventNotification),
			Message: n.Message,
			Link:    n.Link,
		},
	}
	_ = p.broadcaster.Broadcast(event)
}

// PublishProjectUpdate fans a posted update out to the project's update
// room. Titled updates carry the timeline-item fragment, untitled ones the
// chat bubble; picking the layout is this publisher's contract, not the
// dispatcher's.
func (p *EventPublisher) PublishProjectUpdate(u domain.ProjectUpdatePosted) {
	var (
		html string
		err  error
	)
	if u.Title != nil && *u.Title != "" {
		html, err = p.renderer.RenderTimelineItem(u)
	} else {
		html, err = p.renderer.RenderChatBubble(u)
	}
	if err != nil {
		p.logger.Error("failed to render update fragment",
			"project_id", u.ProjectID,
			"error", err,
		)
		return
	}

	event := domain.Event{
		Kind: domain.EventProjectUpdate,
		Room: domain.ProjectUpdatesRoom(u.ProjectID),
		Frame: domain.ProjectUpdateFrame{
			Type:               string(domain.EventProjectUpdate),
			HTML:               html,
			Title:              u.Title,
			Message:            u.Remarks,
			SenderID:           u.SenderID,
			SenderUsername:     u.SenderUsername,
			SenderProfilePhoto: u.SenderProfilePhoto,
			Timestamp:          u.CreatedAt.Format(timestampLayout),
			ImageURL:           u.ImageURL,
			FileURL:            u.FileURL,
			FileName:           u.FileName,
		},
	}
	_ = p.broadcaster.Broadcast(event)
}

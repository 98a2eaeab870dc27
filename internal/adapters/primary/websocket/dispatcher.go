package websocket

import (
	"context"
	"log/slog"

	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// Dispatcher fans published events out to every session in the target room.
// Delivery is at-most-once and best-effort: a failed recipient is logged
// and skipped, never retried, and never reported back to the publisher.
type Dispatcher struct {
	registry *Registry
	events   chan domain.Event
	logger   *slog.Logger
}

var _ ports.EventBroadcaster = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		events:   make(chan domain.Event, 256),
		logger:   logger.With("component", "broadcast_dispatcher"),
	}
}

// Broadcast enqueues an event for fan-out. It never blocks the caller: if
// the queue is full the event is dropped with a warning, matching the
// fire-and-forget delivery contract.
func (d *Dispatcher) Broadcast(event domain.Event) error {
	select {
	case d.events <- event:
		return nil
	default:
		d.logger.Warn("event queue full, dropping event",
			"kind", event.Kind,
			"room", event.Room,
		)
		return nil
	}
}

// Run drains the event queue until the context is cancelled. It MUST run as
// a goroutine. A single loop keeps per-room delivery in publish order.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.events:
			d.deliver(event)
		}
	}
}

// deliver pushes one event to every current member of its room. An empty
// room is a silent no-op.
func (d *Dispatcher) deliver(event domain.Event) {
	members := d.registry.MembersOf(event.Room)
	if len(members) == 0 {
		return
	}

	d.logger.Debug("dispatching event",
		"kind", event.Kind,
		"room", event.Room,
		"recipients", len(members),
	)

	for _, s := range members {
		if !s.TrySend(event.Frame) {
			// Closed session or full buffer. Delivery to the other
			// members continues regardless.
			d.logger.Warn("dropping frame for session",
				"session_id", s.ID,
				"room", event.Room,
				"kind", event.Kind,
			)
		}
	}
}

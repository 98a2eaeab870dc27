package websocket

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrAlreadyJoined means the same session id was registered twice. A session
// is bound to exactly one room for its whole life, so hitting this is a
// programming error, not a client-facing condition.
var ErrAlreadyJoined = errors.New("session already joined a room")

// Registry maintains the mapping from room id to the set of live sessions.
// It is the only shared mutable state in the real-time core; a single lock
// serializes joins, leaves, and membership snapshots.
type Registry struct {
	mu sync.RWMutex

	// rooms maps room id -> session id -> session
	rooms map[string]map[string]*Session

	// byID maps session id -> room id, guarding the one-room invariant
	byID map[string]string

	logger *slog.Logger
}

// NewRegistry creates an empty room registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[string]map[string]*Session),
		byID:   make(map[string]string),
		logger: logger.With("component", "room_registry"),
	}
}

// Join registers the session under roomID, lazily creating the room entry.
// It fails with ErrAlreadyJoined if the session id is already registered
// anywhere.
func (r *Registry) Join(roomID string, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; ok {
		return ErrAlreadyJoined
	}

	if r.rooms[roomID] == nil {
		r.rooms[roomID] = make(map[string]*Session)
	}
	r.rooms[roomID][s.ID] = s
	r.byID[s.ID] = roomID

	r.logger.Debug("session joined room",
		"session_id", s.ID,
		"room", roomID,
		"room_size", len(r.rooms[roomID]),
	)
	return nil
}

// Leave removes the session from the room. Absent sessions are a no-op so
// disconnect races stay idempotent. Empty rooms are pruned to keep memory
// bounded.
func (r *Registry) Leave(roomID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := room[sessionID]; !ok {
		return
	}

	delete(room, sessionID)
	delete(r.byID, sessionID)
	if len(room) == 0 {
		delete(r.rooms, roomID)
	}

	r.logger.Debug("session left room",
		"session_id", sessionID,
		"room", roomID,
	)
}

// MembersOf returns a snapshot of the sessions in the room at call time.
// The dispatcher iterates the copy so fan-out never holds the lock.
func (r *Registry) MembersOf(roomID string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}

	members := make([]*Session, 0, len(room))
	for _, s := range room {
		members = append(members, s)
	}
	return members
}

// RoomCount returns the number of active rooms.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// SessionCount returns the total number of registered sessions.
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

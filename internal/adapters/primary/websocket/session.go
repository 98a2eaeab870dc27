package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Clients only consume on
	// these streams, so anything beyond a control frame is suspect.
	maxMessageSize = 512

	// Outbound frame buffer per session.
	sendBuffer = 256
)

// Session is one live client connection bound to a single room. It is
// created after a successful handshake and lives until the socket closes;
// it is never persisted.
type Session struct {
	// ID is the unique connection id.
	ID string

	// UserID is the authenticated identity, 0 for anonymous connections
	// on project rooms.
	UserID int64

	// Room this session is bound to. A notification session and a project
	// update session are always distinct connections.
	Room string

	conn     *websocket.Conn
	registry *Registry

	mu     sync.Mutex
	send   chan any
	closed bool

	closeOnce sync.Once
	logger    *slog.Logger
}

// NewSession wraps an upgraded connection. The caller still has to Join the
// registry and start the pumps.
func NewSession(registry *Registry, conn *websocket.Conn, userID int64, room string, logger *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:       id,
		UserID:   userID,
		Room:     room,
		conn:     conn,
		registry: registry,
		send:     make(chan any, sendBuffer),
		logger:   logger.With("session_id", id, "room", room),
	}
}

// TrySend queues a frame for delivery without blocking. It returns false
// when the session is closed or its buffer is full; the caller treats that
// as a per-recipient delivery failure and moves on.
func (s *Session) TrySend(frame any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

// CloseSend marks the session closed and closes the send channel exactly
// once. Safe to call concurrently with TrySend.
func (s *Session) CloseSend() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.send)
		s.mu.Unlock()
	})
}

// ReadPump drains inbound frames until the peer goes away. These rooms are
// server-push only, so inbound payloads are discarded; the pump exists to
// detect disconnects and keep the pong handler serviced.
// Runs in its own goroutine.
func (s *Session) ReadPump() {
	defer func() {
		s.registry.Leave(s.Room, s.ID)
		s.CloseSend()
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error("failed to set read deadline", "error", err)
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

// WritePump pushes queued frames to the connection and keeps it alive with
// pings. Runs in its own goroutine.
func (s *Session) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// Registry side closed the channel.
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.writeJSON(frame); err != nil {
				s.logger.Error("failed to write frame", "error", err)
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

func (s *Session) writeJSON(frame any) error {
	w, err := s.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(frame); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

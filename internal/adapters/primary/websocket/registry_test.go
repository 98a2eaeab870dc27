package websocket

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(registry *Registry, userID int64, room string) *Session {
	return NewSession(registry, nil, userID, room, testLogger())
}

func TestRegistry_JoinLeave(t *testing.T) {
	registry := NewRegistry(testLogger())

	s := newTestSession(registry, 1, "user:1:notifications")
	require.NoError(t, registry.Join(s.Room, s))

	assert.Equal(t, 1, registry.RoomCount())
	assert.Equal(t, 1, registry.SessionCount())
	assert.Len(t, registry.MembersOf(s.Room), 1)

	registry.Leave(s.Room, s.ID)
	assert.Equal(t, 0, registry.RoomCount(), "empty room should be pruned")
	assert.Equal(t, 0, registry.SessionCount())
	assert.Empty(t, registry.MembersOf(s.Room))
}

func TestRegistry_Join_SecondRoomRejected(t *testing.T) {
	registry := NewRegistry(testLogger())

	s := newTestSession(registry, 1, "user:1:notifications")
	require.NoError(t, registry.Join("user:1:notifications", s))

	err := registry.Join("project:7:updates", s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	// The original membership is untouched.
	assert.Len(t, registry.MembersOf("user:1:notifications"), 1)
	assert.Empty(t, registry.MembersOf("project:7:updates"))
}

func TestRegistry_Leave_Idempotent(t *testing.T) {
	registry := NewRegistry(testLogger())

	s := newTestSession(registry, 1, "project:7:updates")
	require.NoError(t, registry.Join(s.Room, s))

	registry.Leave(s.Room, s.ID)
	// A second leave from a disconnect race must be a no-op.
	registry.Leave(s.Room, s.ID)
	registry.Leave("no-such-room", s.ID)

	assert.Equal(t, 0, registry.SessionCount())
}

func TestRegistry_SharedRoom(t *testing.T) {
	registry := NewRegistry(testLogger())

	a := newTestSession(registry, 1, "project:7:updates")
	b := newTestSession(registry, 2, "project:7:updates")
	c := newTestSession(registry, 3, "project:8:updates")

	require.NoError(t, registry.Join(a.Room, a))
	require.NoError(t, registry.Join(b.Room, b))
	require.NoError(t, registry.Join(c.Room, c))

	assert.Equal(t, 2, registry.RoomCount())
	assert.Equal(t, 3, registry.SessionCount())
	assert.Len(t, registry.MembersOf("project:7:updates"), 2)
	assert.Len(t, registry.MembersOf("project:8:updates"), 1)

	registry.Leave(a.Room, a.ID)
	assert.Len(t, registry.MembersOf("project:7:updates"), 1)
	assert.Equal(t, 2, registry.RoomCount(), "room with a remaining member stays")
}

func TestRegistry_MembersOf_Snapshot(t *testing.T) {
	registry := NewRegistry(testLogger())

	s := newTestSession(registry, 1, "project:7:updates")
	require.NoError(t, registry.Join(s.Room, s))

	members := registry.MembersOf(s.Room)
	registry.Leave(s.Room, s.ID)

	// The snapshot taken before the leave is unaffected.
	require.Len(t, members, 1)
	assert.Equal(t, s.ID, members[0].ID)
}

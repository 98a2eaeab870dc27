package services_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/mocks"
	"github.com/savithru/pms-backend/internal/core/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func TestEventPublisher_PublishNotification(t *testing.T) {
	broadcaster := mocks.NewMockEventBroadcaster()
	renderer := mocks.NewMockUpdateRenderer()
	publisher := services.NewEventPublisher(broadcaster, renderer, testLogger())

	var captured domain.Event
	broadcaster.On("Broadcast", mock.AnythingOfType("domain.Event")).
		Run(func(args mock.Arguments) {
			captured = args.Get(0).(domain.Event)
		}).
		Return(nil)

	publisher.PublishNotification(domain.NotificationCreated{
		UserID:  42,
		Message: "Meeting Link Added: Apollo",
		Link:    strPtr("https://meet.example/abc"),
	})

	broadcaster.AssertExpectations(t)
	assert.Equal(t, domain.EventNotification, captured.Kind)
	assert.Equal(t, "user:42:notifications", captured.Room)

	frame, ok := captured.Frame.(domain.NotificationFrame)
	require.True(t, ok)
	assert.Equal(t, "notification", frame.Type)
	assert.Equal(t, "Meeting Link Added: Apollo", frame.Message)
	require.NotNil(t, frame.Link)
	assert.Equal(t, "https://meet.example/abc", *frame.Link)
}

func TestEventPublisher_PublishNotification_NilLink(t *testing.T) {
	broadcaster := mocks.NewMockEventBroadcaster()
	renderer := mocks.NewMockUpdateRenderer()
	publisher := services.NewEventPublisher(broadcaster, renderer, testLogger())

	var captured domain.Event
	broadcaster.On("Broadcast", mock.AnythingOfType("domain.Event")).
		Run(func(args mock.Arguments) {
			captured = args.Get(0).(domain.Event)
		}).
		Return(nil)

	publisher.PublishNotification(domain.NotificationCreated{
		UserID:  7,
		Message: "plain notification",
	})

	frame := captured.Frame.(domain.NotificationFrame)
	assert.Nil(t, frame.Link, "absent link travels as null, not omitted")
}

func TestEventPublisher_PublishProjectUpdate_TitledUsesTimeline(t *testing.T) {
	broadcaster := mocks.NewMockEventBroadcaster()
	renderer := mocks.NewMockUpdateRenderer()
	publisher := services.NewEventPublisher(broadcaster, renderer, testLogger())

	posted := domain.ProjectUpdatePosted{
		ProjectID:      7,
		SenderID:       3,
		SenderUsername: "priya",
		Title:          strPtr("Sprint review"),
		Remarks:        strPtr("All pages signed off"),
		CreatedAt:      time.Date(2026, 8, 27, 15, 45, 0, 0, time.UTC),
	}

	renderer.On("RenderTimelineItem", posted).Return("<div>timeline</div>", nil)

	var captured domain.Event
	broadcaster.On("Broadcast", mock.AnythingOfType("domain.Event")).
		Run(func(args mock.Arguments) {
			captured = args.Get(0).(domain.Event)
		}).
		Return(nil)

	publisher.PublishProjectUpdate(posted)

	renderer.AssertExpectations(t)
	renderer.AssertNotCalled(t, "RenderChatBubble", mock.Anything)

	assert.Equal(t, domain.EventProjectUpdate, captured.Kind)
	assert.Equal(t, "project:7:updates", captured.Room)

	frame, ok := captured.Frame.(domain.ProjectUpdateFrame)
	require.True(t, ok)
	assert.Equal(t, "project_update", frame.Type)
	assert.Equal(t, "<div>timeline</div>", frame.HTML)
	assert.Equal(t, "03:45 PM", frame.Timestamp)
	assert.Equal(t, int64(3), frame.SenderID)
	assert.Equal(t, "priya", frame.SenderUsername)
	assert.Nil(t, frame.ImageURL)
}

func TestEventPublisher_PublishProjectUpdate_UntitledUsesChatBubble(t *testing.T) {
	broadcaster := mocks.NewMockEventBroadcaster()
	renderer := mocks.NewMockUpdateRenderer()
	publisher := services.NewEventPublisher(broadcaster, renderer, testLogger())

	posted := domain.ProjectUpdatePosted{
		ProjectID:      7,
		SenderID:       4,
		SenderUsername: "marco",
		Remarks:        strPtr("pushed the fix"),
		CreatedAt:      time.Now().UTC(),
	}

	renderer.On("RenderChatBubble", posted).Return("<div>bubble</div>", nil)
	broadcaster.On("Broadcast", mock.AnythingOfType("domain.Event")).Return(nil)

	publisher.PublishProjectUpdate(posted)

	renderer.AssertExpectations(t)
	renderer.AssertNotCalled(t, "RenderTimelineItem", mock.Anything)
	broadcaster.AssertExpectations(t)
}

func TestEventPublisher_PublishProjectUpdate_RenderFailureDropsEvent(t *testing.T) {
	broadcaster := mocks.NewMockEventBroadcaster()
	renderer := mocks.NewMockUpdateRenderer()
	publisher := services.NewEventPublisher(broadcaster, renderer, testLogger())

	posted := domain.ProjectUpdatePosted{
		ProjectID: 7,
		Remarks:   strPtr("hello"),
		CreatedAt: time.Now().UTC(),
	}

	renderer.On("RenderChatBubble", posted).Return("", errors.New("template exploded"))

	publisher.PublishProjectUpdate(posted)

	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything)
}

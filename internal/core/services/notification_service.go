package services

import (
	"context"
	"time"

	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// NotificationService persists in-app notifications and feeds the live
// notification rooms. The publish happens as an explicit post-commit step
// after the row is written; delivery failures never surface to the caller.
type NotificationService struct {
	repo      ports.NotificationRepository
	publisher ports.EventPublisher
}

var _ ports.NotificationService = (*NotificationService)(nil)

// NewNotificationService creates a new notification service.
func NewNotificationService(repo ports.NotificationRepository, publisher ports.EventPublisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
	}
}

// Notify creates a notification row and publishes it to the recipient's
// notification room.
func (s *NotificationService) Notify(ctx context.Context, userID int64, message string, link *string) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:    userID,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishNotification(created.Posted())
	return created, nil
}

// ListForUser returns the user's notifications, unread first.
func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead marks one notification read. Scoped to the owning user.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks every notification for the user read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

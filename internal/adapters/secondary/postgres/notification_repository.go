package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/ports"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(pool *pgxpool.Pool) ports.NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, message, link, is_read, created_at`

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Message,
		&n.Link,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+notificationColumns,
		n.UserID,
		n.Message,
		n.Link,
		n.IsRead,
		n.CreatedAt,
	)
	return scanNotification(row)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1
		ORDER BY is_read ASC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 AND NOT is_read`, userID)
	return err
}

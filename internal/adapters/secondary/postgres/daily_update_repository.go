package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

type DailyUpdateRepository struct {
	pool *pgxpool.Pool
}

var _ ports.DailyUpdateRepository = (*DailyUpdateRepository)(nil)

func NewDailyUpdateRepository(pool *pgxpool.Pool) ports.DailyUpdateRepository {
	return &DailyUpdateRepository{pool: pool}
}

// Create persists the log and its line items in one transaction.
func (r *DailyUpdateRepository) Create(ctx context.Context, update *domain.DailyUpdate) (*domain.DailyUpdate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var created domain.DailyUpdate
	err = tx.QueryRow(ctx, `
		INSERT INTO daily_updates (user_id, date, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, date, description, created_at`,
		update.UserID,
		update.Date,
		update.Description,
		update.CreatedAt,
	).Scan(&created.ID, &created.UserID, &created.Date, &created.Description, &created.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, item := range update.LineItems {
		var saved domain.DailyUpdateLineItem
		err := tx.QueryRow(ctx, `
			INSERT INTO daily_update_items (daily_update_id, project_id, task_page_id, time_spent)
			VALUES ($1, $2, $3, $4)
			RETURNING id, daily_update_id, project_id, task_page_id, time_spent`,
			created.ID, item.ProjectID, item.TaskPageID, item.TimeSpent,
		).Scan(&saved.ID, &saved.DailyUpdateID, &saved.ProjectID, &saved.TaskPageID, &saved.TimeSpent)
		if err != nil {
			return nil, err
		}
		created.LineItems = append(created.LineItems, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *DailyUpdateRepository) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*domain.DailyUpdate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, date, description, created_at
		FROM daily_updates
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC, id DESC`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *DailyUpdateRepository) ListByDay(ctx context.Context, day time.Time) ([]*domain.DailyUpdate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, date, description, created_at
		FROM daily_updates
		WHERE date = $1
		ORDER BY user_id, id`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *DailyUpdateRepository) collect(ctx context.Context, rows pgx.Rows) ([]*domain.DailyUpdate, error) {
	var updates []*domain.DailyUpdate
	for rows.Next() {
		var update domain.DailyUpdate
		if err := rows.Scan(
			&update.ID,
			&update.UserID,
			&update.Date,
			&update.Description,
			&update.CreatedAt,
		); err != nil {
			return nil, err
		}
		updates = append(updates, &update)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, update := range updates {
		if err := r.loadLineItems(ctx, update); err != nil {
			return nil, err
		}
	}
	return updates, nil
}

func (r *DailyUpdateRepository) loadLineItems(ctx context.Context, update *domain.DailyUpdate) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, daily_update_id, project_id, task_page_id, time_spent
		FROM daily_update_items
		WHERE daily_update_id = $1
		ORDER BY id`, update.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.DailyUpdateLineItem
		if err := rows.Scan(
			&item.ID,
			&item.DailyUpdateID,
			&item.ProjectID,
			&item.TaskPageID,
			&item.TimeSpent,
		); err != nil {
			return err
		}
		update.LineItems = append(update.LineItems, item)
	}
	return rows.Err()
}

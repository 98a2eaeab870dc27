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

type UpdateRepository struct {
	pool *pgxpool.Pool
}

var _ ports.UpdateRepository = (*UpdateRepository)(nil)

func NewUpdateRepository(pool *pgxpool.Pool) ports.UpdateRepository {
	return &UpdateRepository{pool: pool}
}

const updateColumns = `id, project_id, user_id, category, title, remarks, priority,
	image_url, file_url, file_name, created_at`

func scanUpdate(row pgx.Row) (*domain.ProjectUpdate, error) {
	var update domain.ProjectUpdate
	err := row.Scan(
		&update.ID,
		&update.ProjectID,
		&update.UserID,
		&update.Category,
		&update.Title,
		&update.Remarks,
		&update.Priority,
		&update.ImageURL,
		&update.FileURL,
		&update.FileName,
		&update.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUpdateNotFound
		}
		return nil, err
	}
	return &update, nil
}

// Create persists the update and its attachments in one transaction.
func (r *UpdateRepository) Create(ctx context.Context, update *domain.ProjectUpdate) (*domain.ProjectUpdate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO project_updates (project_id, user_id, category, title, remarks,
			priority, image_url, file_url, file_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+updateColumns,
		update.ProjectID,
		update.UserID,
		update.Category,
		update.Title,
		update.Remarks,
		update.Priority,
		update.ImageURL,
		update.FileURL,
		update.FileName,
		update.CreatedAt,
	)

	created, err := scanUpdate(row)
	if err != nil {
		return nil, err
	}

	for _, attachment := range update.Attachments {
		var saved domain.UpdateAttachment
		err := tx.QueryRow(ctx, `
			INSERT INTO update_attachments (project_update_id, file_url)
			VALUES ($1, $2)
			RETURNING id, project_update_id, file_url, uploaded_at`,
			created.ID, attachment.FileURL,
		).Scan(&saved.ID, &saved.ProjectUpdateID, &saved.FileURL, &saved.UploadedAt)
		if err != nil {
			return nil, err
		}
		created.Attachments = append(created.Attachments, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// ListChatByProject returns untitled messages, oldest first, chat style.
func (r *UpdateRepository) ListChatByProject(ctx context.Context, projectID int64) ([]*domain.ProjectUpdate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+updateColumns+` FROM project_updates
		WHERE project_id = $1 AND (title IS NULL OR title = '')
		ORDER BY created_at`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

// ListTimelineByProject returns titled updates, newest first.
func (r *UpdateRepository) ListTimelineByProject(ctx context.Context, projectID int64) ([]*domain.ProjectUpdate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+updateColumns+` FROM project_updates
		WHERE project_id = $1 AND title IS NOT NULL AND title <> ''
		ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *UpdateRepository) collect(ctx context.Context, rows pgx.Rows) ([]*domain.ProjectUpdate, error) {
	var updates []*domain.ProjectUpdate
	for rows.Next() {
		update, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, update)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, update := range updates {
		if err := r.loadAttachments(ctx, update); err != nil {
			return nil, err
		}
	}
	return updates, nil
}

func (r *UpdateRepository) loadAttachments(ctx context.Context, update *domain.ProjectUpdate) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_update_id, file_url, uploaded_at
		FROM update_attachments
		WHERE project_update_id = $1
		ORDER BY id`, update.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var attachment domain.UpdateAttachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.ProjectUpdateID,
			&attachment.FileURL,
			&attachment.UploadedAt,
		); err != nil {
			return err
		}
		update.Attachments = append(update.Attachments, attachment)
	}
	return rows.Err()
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

type WorkUpdateRepository struct {
	pool *pgxpool.Pool
}

var _ ports.WorkUpdateRepository = (*WorkUpdateRepository)(nil)

func NewWorkUpdateRepository(pool *pgxpool.Pool) ports.WorkUpdateRepository {
	return &WorkUpdateRepository{pool: pool}
}

const workUpdateColumns = `id, project_id, member_id, status, remarks, created_at, updated_at`

func scanWorkUpdate(row pgx.Row) (*domain.WorkUpdate, error) {
	var u domain.WorkUpdate
	err := row.Scan(
		&u.ID,
		&u.ProjectID,
		&u.MemberID,
		&u.Status,
		&u.Remarks,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert keeps one row per member per project; a resubmission replaces the
// status and remarks and refreshes updated_at.
func (r *WorkUpdateRepository) Upsert(ctx context.Context, update *domain.WorkUpdate) (*domain.WorkUpdate, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO work_updates (project_id, member_id, status, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (project_id, member_id)
		DO UPDATE SET status = EXCLUDED.status, remarks = EXCLUDED.remarks, updated_at = now()
		RETURNING `+workUpdateColumns,
		update.ProjectID,
		update.MemberID,
		update.Status,
		update.Remarks,
	)
	return scanWorkUpdate(row)
}

func (r *WorkUpdateRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.WorkUpdate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.project_id, w.member_id, w.status, w.remarks, w.created_at, w.updated_at,
			u.username
		FROM work_updates w
		JOIN users u ON u.id = w.member_id
		WHERE w.project_id = $1
		ORDER BY w.updated_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []*domain.WorkUpdate
	for rows.Next() {
		var u domain.WorkUpdate
		if err := rows.Scan(
			&u.ID,
			&u.ProjectID,
			&u.MemberID,
			&u.Status,
			&u.Remarks,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.Username,
		); err != nil {
			return nil, err
		}
		updates = append(updates, &u)
	}
	return updates, rows.Err()
}

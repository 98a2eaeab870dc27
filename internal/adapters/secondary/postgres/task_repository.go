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

type TaskRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(pool *pgxpool.Pool) ports.TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskColumns = `id, project_id, assigned_to, page_name, is_complete, created_at`

func scanTask(row pgx.Row) (*domain.TaskPage, error) {
	var task domain.TaskPage
	err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.AssignedTo,
		&task.PageName,
		&task.IsComplete,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.TaskPage) (*domain.TaskPage, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO task_pages (project_id, assigned_to, page_name, is_complete, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+taskColumns,
		task.ProjectID,
		task.AssignedTo,
		task.PageName,
		task.IsComplete,
		task.CreatedAt,
	)
	return scanTask(row)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.TaskPage, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM task_pages WHERE id = $1`, id)
	return scanTask(row)
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.TaskPage) (*domain.TaskPage, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE task_pages
		SET page_name = $2, assigned_to = $3, is_complete = $4
		WHERE id = $1
		RETURNING `+taskColumns,
		task.ID,
		task.PageName,
		task.AssignedTo,
		task.IsComplete,
	)
	return scanTask(row)
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.TaskPage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+` FROM task_pages
		WHERE assigned_to = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.TaskPage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+` FROM task_pages
		WHERE project_id = $1
		ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func collectTasks(rows pgx.Rows) ([]*domain.TaskPage, error) {
	var tasks []*domain.TaskPage
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

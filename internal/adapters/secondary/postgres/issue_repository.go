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

type IssueRepository struct {
	pool *pgxpool.Pool
}

var _ ports.IssueRepository = (*IssueRepository)(nil)

func NewIssueRepository(pool *pgxpool.Pool) ports.IssueRepository {
	return &IssueRepository{pool: pool}
}

const issueColumns = `id, user_id, subject, description, attachment_url, status, created_at`

func scanIssue(row pgx.Row) (*domain.Issue, error) {
	var issue domain.Issue
	err := row.Scan(
		&issue.ID,
		&issue.UserID,
		&issue.Subject,
		&issue.Description,
		&issue.AttachmentURL,
		&issue.Status,
		&issue.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO issues (user_id, subject, description, attachment_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+issueColumns,
		issue.UserID,
		issue.Subject,
		issue.Description,
		issue.AttachmentURL,
		issue.Status,
		issue.CreatedAt,
	)
	return scanIssue(row)
}

func (r *IssueRepository) GetByID(ctx context.Context, id int64) (*domain.Issue, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	return scanIssue(row)
}

func (r *IssueRepository) Update(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE issues
		SET status = $2
		WHERE id = $1
		RETURNING `+issueColumns,
		issue.ID,
		issue.Status,
	)
	return scanIssue(row)
}

func (r *IssueRepository) ListAll(ctx context.Context) ([]*domain.Issue, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+issueColumns+` FROM issues ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIssues(rows)
}

func (r *IssueRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Issue, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+issueColumns+` FROM issues
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIssues(rows)
}

func collectIssues(rows pgx.Rows) ([]*domain.Issue, error) {
	var issues []*domain.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

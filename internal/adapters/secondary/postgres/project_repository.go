package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savithru/pms-backend/internal/core/domain"
	apperrors "github.com/savithru/pms-backend/internal/core/errors"
	"github.com/savithru/pms-backend/internal/core/ports"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(pool *pgxpool.Pool) ports.ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, name, description, status, priority, client_name, start_date,
	end_date, logo_url, google_meet_link, created_by, team_head, status_report,
	status_description, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.Priority,
		&project.ClientName,
		&project.StartDate,
		&project.EndDate,
		&project.LogoURL,
		&project.GoogleMeetLink,
		&project.CreatedByID,
		&project.TeamHeadID,
		&project.StatusReport,
		&project.StatusDescription,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, status, priority, client_name, start_date,
			end_date, logo_url, google_meet_link, created_by, team_head, status_report,
			status_description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+projectColumns,
		project.Name,
		project.Description,
		project.Status,
		project.Priority,
		project.ClientName,
		project.StartDate,
		project.EndDate,
		project.LogoURL,
		project.GoogleMeetLink,
		project.CreatedByID,
		project.TeamHeadID,
		project.StatusReport,
		project.StatusDescription,
		project.CreatedAt,
	)
	return scanProject(row)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE projects
		SET name = $2, description = $3, status = $4, priority = $5, client_name = $6,
			start_date = $7, end_date = $8, logo_url = $9, google_meet_link = $10,
			team_head = $11, status_report = $12, status_description = $13, updated_at = $14
		WHERE id = $1
		RETURNING `+projectColumns,
		project.ID,
		project.Name,
		project.Description,
		project.Status,
		project.Priority,
		project.ClientName,
		project.StartDate,
		project.EndDate,
		project.LogoURL,
		project.GoogleMeetLink,
		project.TeamHeadID,
		project.StatusReport,
		project.StatusDescription,
		project.UpdatedAt,
	)
	return scanProject(row)
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *ProjectRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT p.id, p.name, p.description, p.status, p.priority, p.client_name,
			p.start_date, p.end_date, p.logo_url, p.google_meet_link, p.created_by,
			p.team_head, p.status_report, p.status_description, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN project_members m ON m.project_id = p.id
		WHERE p.team_head = $1 OR m.user_id = $1
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func collectProjects(rows pgx.Rows) ([]*domain.Project, error) {
	var projects []*domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) AddMember(ctx context.Context, member *domain.ProjectMember) (*domain.ProjectMember, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id`,
		member.ProjectID,
		member.UserID,
		member.Role,
	).Scan(&member.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrMemberExists
		}
		return nil, err
	}

	// Hydrate the denormalized user fields for the response.
	err = r.pool.QueryRow(ctx, `SELECT username, email FROM users WHERE id = $1`, member.UserID).
		Scan(&member.Username, &member.Email)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, memberID int64) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND id = $2`,
		projectID, memberID)
	return err
}

func (r *ProjectRepository) ListMembers(ctx context.Context, projectID int64) ([]*domain.ProjectMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.project_id, m.user_id, m.role, u.username, u.email
		FROM project_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.ProjectMember
	for rows.Next() {
		var member domain.ProjectMember
		if err := rows.Scan(
			&member.ID,
			&member.ProjectID,
			&member.UserID,
			&member.Role,
			&member.Username,
			&member.Email,
		); err != nil {
			return nil, err
		}
		members = append(members, &member)
	}
	return members, rows.Err()
}

func (r *ProjectRepository) IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2
		)`, projectID, userID).Scan(&exists)
	return exists, err
}

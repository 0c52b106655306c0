package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project with its ordered team member list
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO projects (id, name, client, producer, director, group_label, status, created_at, last_activity, finalized_at, delivered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Client,
		proj.Producer,
		proj.Director,
		proj.Group,
		string(proj.Status),
		proj.CreatedAt,
		proj.LastActivity,
		nullableTime(proj.FinalizedAt),
		nullableTime(proj.DeliveredAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := replaceMembers(ctx, tx, proj.ID, proj.TeamMembers); err != nil {
		return err
	}

	return tx.Commit()
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, client, producer, director, group_label, status, created_at, last_activity, finalized_at, delivered_at
		FROM projects
		WHERE id = ?
	`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	members, err := r.loadMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.TeamMembers = members
	return proj, nil
}

// Update replaces a project's fields and team member list
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE projects
		SET name = ?, client = ?, producer = ?, director = ?, group_label = ?, status = ?, last_activity = ?, finalized_at = ?, delivered_at = ?
		WHERE id = ?
	`
	res, err := tx.ExecContext(ctx, query,
		proj.Name,
		proj.Client,
		proj.Producer,
		proj.Director,
		proj.Group,
		string(proj.Status),
		proj.LastActivity,
		nullableTime(proj.FinalizedAt),
		nullableTime(proj.DeliveredAt),
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	if err := replaceMembers(ctx, tx, proj.ID, proj.TeamMembers); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a project; videos, checklist and packages cascade
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all projects with their team members
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `
		SELECT id, name, client, producer, director, group_label, status, created_at, last_activity, finalized_at, delivered_at
		FROM projects
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	for i := range projects {
		members, err := r.loadMembers(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].TeamMembers = members
	}
	return projects, nil
}

// ListSummaries returns lightweight project rows with video counts
func (r *ProjectRepository) ListSummaries(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.client,
			p.group_label,
			p.status,
			COUNT(v.id) as video_count,
			p.created_at,
			p.last_activity
		FROM projects p
		LEFT JOIN videos v ON v.project_id = p.id
		GROUP BY p.id, p.name, p.client, p.group_label, p.status, p.created_at, p.last_activity
		ORDER BY p.last_activity DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list project summaries: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var s project.Summary
		var status string
		if err := rows.Scan(&s.ID, &s.Name, &s.Client, &s.Group, &status, &s.VideoCount, &s.CreatedAt, &s.LastActivity); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		s.Status = project.Status(status)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var status string
	var finalizedAt, deliveredAt sql.NullTime
	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&proj.Client,
		&proj.Producer,
		&proj.Director,
		&proj.Group,
		&status,
		&proj.CreatedAt,
		&proj.LastActivity,
		&finalizedAt,
		&deliveredAt,
	)
	if err != nil {
		return nil, err
	}
	proj.Status = project.Status(status)
	if finalizedAt.Valid {
		t := finalizedAt.Time
		proj.FinalizedAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		proj.DeliveredAt = &t
	}
	return &proj, nil
}

func (r *ProjectRepository) loadMembers(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM project_members WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, name)
	}
	return members, rows.Err()
}

func replaceMembers(ctx context.Context, tx *sql.Tx, projectID string, members []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}
	for i, name := range members {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_members (project_id, position, name) VALUES (?, ?, ?)`,
			projectID, i, name); err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

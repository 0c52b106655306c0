package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BVTRay/vioflow/internal/domain/tag"
	"github.com/BVTRay/vioflow/internal/repository"
)

// TagRepository implements repository.TagRepository for SQLite
type TagRepository struct {
	db *DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

// Upsert inserts a tag or updates its category if the name already exists
func (r *TagRepository) Upsert(ctx context.Context, t *tag.Tag) error {
	query := `
		INSERT INTO tags (id, name, category, usage_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET category = excluded.category
	`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Category, t.Usage)
	if err != nil {
		return fmt.Errorf("failed to upsert tag: %w", err)
	}
	return nil
}

// GetByName retrieves a tag by its unique name
func (r *TagRepository) GetByName(ctx context.Context, name string) (*tag.Tag, error) {
	query := `SELECT id, name, category, usage_count FROM tags WHERE name = ?`

	var t tag.Tag
	err := r.db.QueryRowContext(ctx, query, name).Scan(&t.ID, &t.Name, &t.Category, &t.Usage)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &t, nil
}

// List returns all tags ordered by usage
func (r *TagRepository) List(ctx context.Context) ([]tag.Tag, error) {
	query := `SELECT id, name, category, usage_count FROM tags ORDER BY usage_count DESC, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []tag.Tag
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Usage); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// IncrementUsage adjusts a tag's usage counter, clamping at zero
func (r *TagRepository) IncrementUsage(ctx context.Context, name string, delta int) error {
	query := `UPDATE tags SET usage_count = MAX(0, usage_count + ?) WHERE name = ?`
	res, err := r.db.ExecContext(ctx, query, delta, name)
	if err != nil {
		return fmt.Errorf("failed to increment tag usage: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check increment: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

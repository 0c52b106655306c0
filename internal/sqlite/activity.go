package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/BVTRay/vioflow/internal/domain/activity"
)

// ActivityRepository implements repository.ActivityRepository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends an entry to the audit trail and fills in its generated ID
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	query := `
		INSERT INTO activity_log (project_id, video_id, activity_type, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	var videoID any
	if entry.VideoID != nil {
		videoID = *entry.VideoID
	}
	res, err := r.db.ExecContext(ctx, query,
		entry.ProjectID,
		videoID,
		string(entry.Type),
		entry.Summary,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read activity id: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns audit entries, newest first, filtered by opts
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	var conditions []string
	var args []any

	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.VideoID != nil {
		conditions = append(conditions, "video_id = ?")
		args = append(args, *opts.VideoID)
	}
	if opts.Type != nil {
		conditions = append(conditions, "activity_type = ?")
		args = append(args, string(*opts.Type))
	}

	query := `SELECT id, project_id, video_id, activity_type, summary, details, created_at FROM activity_log`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var e activity.Entry
		var videoID sql.NullString
		var typ string
		if err := rows.Scan(&e.ID, &e.ProjectID, &videoID, &typ, &e.Summary, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		e.Type = activity.Type(typ)
		if videoID.Valid {
			v := videoID.String
			e.VideoID = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

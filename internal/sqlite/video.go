package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BVTRay/vioflow/internal/domain/video"
	"github.com/BVTRay/vioflow/internal/repository"
)

// VideoRepository implements repository.VideoRepository for SQLite
type VideoRepository struct {
	db *DB
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = `id, project_id, name, original_filename, base_name, media_type, version, uploaded_at, is_case_file, is_main_delivery, status, change_log`

// Create inserts a new video and its tag associations
func (r *VideoRepository) Create(ctx context.Context, v *video.Video) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO videos (` + videoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		v.ID,
		v.ProjectID,
		v.Name,
		v.OriginalFilename,
		v.BaseName,
		string(v.Type),
		v.Version,
		v.UploadedAt,
		v.IsCaseFile,
		v.IsMainDelivery,
		string(v.Status),
		v.ChangeLog,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	if err := replaceVideoTags(ctx, tx, v.ID, v.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Get retrieves a video by ID
func (r *VideoRepository) Get(ctx context.Context, id string) (*video.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = ?`

	v, err := scanVideo(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	tags, err := r.loadTags(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Tags = tags
	return v, nil
}

// Update replaces a video's mutable fields. Tags are managed through SetTags.
func (r *VideoRepository) Update(ctx context.Context, v *video.Video) error {
	query := `
		UPDATE videos
		SET name = ?, original_filename = ?, base_name = ?, media_type = ?, version = ?, is_case_file = ?, is_main_delivery = ?, status = ?, change_log = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		v.Name,
		v.OriginalFilename,
		v.BaseName,
		string(v.Type),
		v.Version,
		v.IsCaseFile,
		v.IsMainDelivery,
		string(v.Status),
		v.ChangeLog,
		v.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to update video: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a video; tag associations cascade
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
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

// ListByProject returns a project's videos, newest version first
func (r *VideoRepository) ListByProject(ctx context.Context, projectID string) ([]video.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE project_id = ?
		ORDER BY base_name, version DESC
	`
	return r.listVideos(ctx, query, projectID)
}

// List returns all videos
func (r *VideoRepository) List(ctx context.Context) ([]video.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos ORDER BY uploaded_at DESC`
	return r.listVideos(ctx, query)
}

// SetTags replaces a video's tag associations
func (r *VideoRepository) SetTags(ctx context.Context, videoID string, tags []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos WHERE id = ?`, videoID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check video: %w", err)
	}
	if exists == 0 {
		return repository.ErrNotFound
	}

	if err := replaceVideoTags(ctx, tx, videoID, tags); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *VideoRepository) listVideos(ctx context.Context, query string, args ...any) ([]video.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []video.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}

	for i := range videos {
		tags, err := r.loadTags(ctx, videos[i].ID)
		if err != nil {
			return nil, err
		}
		videos[i].Tags = tags
	}
	return videos, nil
}

func scanVideo(row rowScanner) (*video.Video, error) {
	var v video.Video
	var mediaType, status string
	err := row.Scan(
		&v.ID,
		&v.ProjectID,
		&v.Name,
		&v.OriginalFilename,
		&v.BaseName,
		&mediaType,
		&v.Version,
		&v.UploadedAt,
		&v.IsCaseFile,
		&v.IsMainDelivery,
		&status,
		&v.ChangeLog,
	)
	if err != nil {
		return nil, err
	}
	v.Type = video.MediaType(mediaType)
	v.Status = video.Status(status)
	return &v, nil
}

func (r *VideoRepository) loadTags(ctx context.Context, videoID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag_name FROM video_tags WHERE video_id = ? ORDER BY tag_name`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load video tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan video tag: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

func replaceVideoTags(ctx context.Context, tx *sql.Tx, videoID string, tags []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM video_tags WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("failed to clear video tags: %w", err)
	}
	for _, name := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO video_tags (video_id, tag_name) VALUES (?, ?)`,
			videoID, name); err != nil {
			return fmt.Errorf("failed to insert video tag: %w", err)
		}
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/repository"
)

// ChecklistRepository implements repository.ChecklistRepository for SQLite
type ChecklistRepository struct {
	db *DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

const checklistColumns = `project_id, clean_feed, music_license, metadata, tech_review, copyright_check, script, copyright_files, multi_resolution, note, title, description, created_at`

// Create inserts a checklist for a finalized project
func (r *ChecklistRepository) Create(ctx context.Context, cl *delivery.Checklist) error {
	query := `
		INSERT INTO checklists (` + checklistColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		cl.ProjectID,
		cl.CleanFeed,
		cl.MusicLicense,
		cl.Metadata,
		cl.TechReview,
		cl.CopyrightCheck,
		cl.Script,
		cl.CopyrightFiles,
		cl.MultiResolution,
		cl.Note,
		cl.Title,
		cl.Description,
		cl.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create checklist: %w", err)
	}
	return nil
}

// Get retrieves a checklist with its delivery packages
func (r *ChecklistRepository) Get(ctx context.Context, projectID string) (*delivery.Checklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklists WHERE project_id = ?`

	cl, err := scanChecklist(r.db.QueryRowContext(ctx, query, projectID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}

	pkgs, err := r.loadPackages(ctx, projectID)
	if err != nil {
		return nil, err
	}
	cl.Packages = pkgs
	return cl, nil
}

// Update replaces a checklist's flags and delivery info
func (r *ChecklistRepository) Update(ctx context.Context, cl *delivery.Checklist) error {
	query := `
		UPDATE checklists
		SET clean_feed = ?, music_license = ?, metadata = ?, tech_review = ?, copyright_check = ?, script = ?, copyright_files = ?, multi_resolution = ?, note = ?, title = ?, description = ?
		WHERE project_id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		cl.CleanFeed,
		cl.MusicLicense,
		cl.Metadata,
		cl.TechReview,
		cl.CopyrightCheck,
		cl.Script,
		cl.CopyrightFiles,
		cl.MultiResolution,
		cl.Note,
		cl.Title,
		cl.Description,
		cl.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update checklist: %w", err)
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

// List returns every checklist with its packages
func (r *ChecklistRepository) List(ctx context.Context) ([]delivery.Checklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklists ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	defer rows.Close()

	var checklists []delivery.Checklist
	for rows.Next() {
		cl, err := scanChecklist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}
		checklists = append(checklists, *cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checklists: %w", err)
	}

	for i := range checklists {
		pkgs, err := r.loadPackages(ctx, checklists[i].ProjectID)
		if err != nil {
			return nil, err
		}
		checklists[i].Packages = pkgs
	}
	return checklists, nil
}

// AddPackage records a generated delivery link under a checklist
func (r *ChecklistRepository) AddPackage(ctx context.Context, projectID string, pkg *delivery.Package) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO delivery_packages (id, project_id, title, description, link, created_at, downloads, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		pkg.ID,
		projectID,
		pkg.Title,
		pkg.Description,
		pkg.Link,
		pkg.CreatedAt,
		pkg.Downloads,
		pkg.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to add package: %w", err)
	}

	for i, fileID := range pkg.FileIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO package_files (package_id, position, video_id) VALUES (?, ?, ?)`,
			pkg.ID, i, fileID); err != nil {
			return fmt.Errorf("failed to insert package file: %w", err)
		}
	}

	return tx.Commit()
}

// UpdatePackage replaces a package's mutable fields
func (r *ChecklistRepository) UpdatePackage(ctx context.Context, projectID string, pkg *delivery.Package) error {
	query := `
		UPDATE delivery_packages
		SET title = ?, description = ?, link = ?, downloads = ?, active = ?
		WHERE id = ? AND project_id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		pkg.Title,
		pkg.Description,
		pkg.Link,
		pkg.Downloads,
		pkg.Active,
		pkg.ID,
		projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
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

func scanChecklist(row rowScanner) (*delivery.Checklist, error) {
	var cl delivery.Checklist
	err := row.Scan(
		&cl.ProjectID,
		&cl.CleanFeed,
		&cl.MusicLicense,
		&cl.Metadata,
		&cl.TechReview,
		&cl.CopyrightCheck,
		&cl.Script,
		&cl.CopyrightFiles,
		&cl.MultiResolution,
		&cl.Note,
		&cl.Title,
		&cl.Description,
		&cl.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *ChecklistRepository) loadPackages(ctx context.Context, projectID string) ([]delivery.Package, error) {
	query := `
		SELECT id, title, description, link, created_at, downloads, active
		FROM delivery_packages
		WHERE project_id = ?
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	defer rows.Close()

	var pkgs []delivery.Package
	for rows.Next() {
		var p delivery.Package
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Link, &p.CreatedAt, &p.Downloads, &p.Active); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		pkgs = append(pkgs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packages: %w", err)
	}

	for i := range pkgs {
		fileIDs, err := r.loadPackageFiles(ctx, pkgs[i].ID)
		if err != nil {
			return nil, err
		}
		pkgs[i].FileIDs = fileIDs
	}
	return pkgs, nil
}

func (r *ChecklistRepository) loadPackageFiles(ctx context.Context, packageID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT video_id FROM package_files WHERE package_id = ? ORDER BY position`, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load package files: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan package file: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

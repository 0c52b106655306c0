package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    client TEXT NOT NULL DEFAULT '',
    producer TEXT NOT NULL DEFAULT '',
    director TEXT NOT NULL DEFAULT '',
    group_label TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK(status IN ('active', 'finalized', 'delivered', 'archived')),
    created_at TIMESTAMP NOT NULL,
    last_activity TIMESTAMP NOT NULL,
    finalized_at TIMESTAMP,
    delivered_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
CREATE INDEX IF NOT EXISTS idx_projects_group ON projects(group_label);

-- Ordered project team members
CREATE TABLE IF NOT EXISTS project_members (
    project_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (project_id, position),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Videos table
CREATE TABLE IF NOT EXISTS videos (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    name TEXT NOT NULL,
    original_filename TEXT NOT NULL DEFAULT '',
    base_name TEXT NOT NULL,
    media_type TEXT NOT NULL CHECK(media_type IN ('video', 'image', 'audio')),
    version INTEGER NOT NULL,
    uploaded_at TIMESTAMP NOT NULL,
    is_case_file INTEGER NOT NULL DEFAULT 0,
    is_main_delivery INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL CHECK(status IN ('initial', 'annotated', 'approved')),
    change_log TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
    UNIQUE (project_id, base_name, version)
);
CREATE INDEX IF NOT EXISTS idx_videos_project ON videos(project_id);
CREATE INDEX IF NOT EXISTS idx_videos_series ON videos(project_id, base_name);

-- Video tag associations (by tag name; no referential integrity, a
-- dangling name simply never matches)
CREATE TABLE IF NOT EXISTS video_tags (
    video_id TEXT NOT NULL,
    tag_name TEXT NOT NULL,
    PRIMARY KEY (video_id, tag_name),
    FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_video_tags_name ON video_tags(tag_name);

-- Delivery checklists, one per finalized project
CREATE TABLE IF NOT EXISTS checklists (
    project_id TEXT PRIMARY KEY,
    clean_feed INTEGER NOT NULL DEFAULT 0,
    music_license INTEGER NOT NULL DEFAULT 0,
    metadata INTEGER NOT NULL DEFAULT 0,
    tech_review INTEGER NOT NULL DEFAULT 0,
    copyright_check INTEGER NOT NULL DEFAULT 0,
    script INTEGER NOT NULL DEFAULT 0,
    copyright_files INTEGER NOT NULL DEFAULT 0,
    multi_resolution INTEGER NOT NULL DEFAULT 0,
    note TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Generated delivery links
CREATE TABLE IF NOT EXISTS delivery_packages (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    link TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    downloads INTEGER NOT NULL DEFAULT 0,
    active INTEGER NOT NULL DEFAULT 1,
    FOREIGN KEY (project_id) REFERENCES checklists(project_id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_packages_project ON delivery_packages(project_id);

CREATE TABLE IF NOT EXISTS package_files (
    package_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    video_id TEXT NOT NULL,
    PRIMARY KEY (package_id, position),
    FOREIGN KEY (package_id) REFERENCES delivery_packages(id) ON DELETE CASCADE
);

-- Tag catalog
CREATE TABLE IF NOT EXISTS tags (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL DEFAULT '',
    usage_count INTEGER NOT NULL DEFAULT 0
);

-- Activity log
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT NOT NULL,
    video_id TEXT,
    activity_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_project ON activity_log(project_id);
CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

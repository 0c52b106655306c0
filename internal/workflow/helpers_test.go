package workflow

import (
	"io"
	"log/slog"
	"time"

	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/video"
	"github.com/BVTRay/vioflow/internal/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore() *state.Store {
	return state.NewStore(state.NewSnapshot(), testLogger())
}

func storedProject(id, name string, status project.Status) project.Project {
	now := time.Now()
	return project.Project{
		ID:           id,
		Name:         name,
		Client:       "ACME",
		Group:        "promos",
		Status:       status,
		CreatedAt:    now,
		LastActivity: now,
	}
}

func storedVideo(id, projectID, baseName string, version int) video.Video {
	return video.Video{
		ID:         id,
		ProjectID:  projectID,
		Name:       baseName,
		BaseName:   baseName,
		Type:       video.TypeVideo,
		Version:    version,
		UploadedAt: time.Now(),
		Status:     video.StatusInitial,
	}
}

package state

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/video"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewSnapshot(), testLogger())
}

func sampleProject(id string) project.Project {
	now := time.Now()
	return project.Project{
		ID:           id,
		Name:         "Project " + id,
		Client:       "ACME",
		Group:        "commercials",
		Status:       project.StatusActive,
		CreatedAt:    now,
		LastActivity: now,
	}
}

func sampleVideo(id, projectID, baseName string, version int) video.Video {
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

func TestStore_VersionIncrementsOnlyOnChange(t *testing.T) {
	store := newTestStore(t)

	snap := store.Apply(AddProject{Project: sampleProject("p1")})
	require.EqualValues(t, 1, snap.Version)

	// Duplicate add is ignored and does not consume a version
	snap = store.Apply(AddProject{Project: sampleProject("p1")})
	require.EqualValues(t, 1, snap.Version)

	snap = store.Apply(SelectProject{ID: "p1"})
	require.EqualValues(t, 2, snap.Version)

	// Selecting the already-selected project changes nothing
	snap = store.Apply(SelectProject{ID: "p1"})
	require.EqualValues(t, 2, snap.Version)
}

func TestStore_UnknownEventIsNoOp(t *testing.T) {
	store := newTestStore(t)

	type strangerEvent struct{ Event }
	snap := store.Apply(strangerEvent{})
	require.EqualValues(t, 0, snap.Version)
}

func TestStore_InvalidEventIsNoOp(t *testing.T) {
	store := newTestStore(t)

	snap := store.Apply(SelectProject{ID: "nonexistent"})
	require.EqualValues(t, 0, snap.Version)

	snap = store.Apply(FinalizeProject{ID: "nonexistent"})
	require.EqualValues(t, 0, snap.Version)
}

func TestStore_SnapshotsAreImmutable(t *testing.T) {
	store := newTestStore(t)

	store.Apply(AddProject{Project: sampleProject("p1")})
	before := store.Snapshot()

	store.Apply(AddVideo{Video: sampleVideo("v1", "p1", "teaser.mp4", 1)})
	store.Apply(UpdateVideoTags{VideoID: "v1", Tags: []string{"social"}})

	require.Empty(t, before.Videos, "old snapshot must not see later videos")
	require.Len(t, store.Snapshot().Videos, 1)
}

func TestStore_WatchersSeeEveryChange(t *testing.T) {
	store := newTestStore(t)

	var versions []int64
	store.Watch(func(s Snapshot) {
		versions = append(versions, s.Version)
	})

	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(AddProject{Project: sampleProject("p1")}) // ignored
	store.Apply(SelectProject{ID: "p1"})

	require.Equal(t, []int64{1, 2}, versions)
}

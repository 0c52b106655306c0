package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BVTRay/vioflow/internal/domain/upload"
	"github.com/BVTRay/vioflow/internal/domain/video"
)

func uploadTask(id, filename string) upload.Task {
	return upload.Task{
		ID:       id,
		Filename: filename,
		Status:   upload.StatusUploading,
	}
}

func TestAddVideoAssignsSeriesVersion(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})

	v := sampleVideo("v1", "p1", "", 0)
	v.Name = "v2_teaser.mp4"
	store.Apply(AddVideo{Video: v})

	got, _ := store.Snapshot().Video("v1")
	require.Equal(t, "teaser.mp4", got.BaseName, "base name is derived by stripping the version prefix")
	require.Equal(t, 1, got.Version, "first entry of a series is version 1")

	next := sampleVideo("v2", "p1", "teaser.mp4", 0)
	store.Apply(AddVideo{Video: next})
	got, _ = store.Snapshot().Video("v2")
	require.Equal(t, 2, got.Version)

	require.Equal(t, 3, store.Snapshot().NextVersion("p1", "teaser.mp4"))
	require.Equal(t, 1, store.Snapshot().NextVersion("p1", "unseen.mp4"))
}

func TestAddVideoRejectsUnknownProject(t *testing.T) {
	store := newTestStore(t)

	snap := store.Apply(AddVideo{Video: sampleVideo("v1", "ghost", "teaser.mp4", 1)})
	require.Empty(t, snap.Videos)
	require.EqualValues(t, 0, snap.Version)
}

func TestCaseFileAndMainDeliveryImplication(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(AddVideo{Video: sampleVideo("v1", "p1", "teaser.mp4", 1)})

	// Marking main delivery pulls the video into the case file set
	store.Apply(ToggleMainDelivery{VideoID: "v1"})
	got, _ := store.Snapshot().Video("v1")
	require.True(t, got.IsMainDelivery)
	require.True(t, got.IsCaseFile)

	// Clearing case file drops main delivery with it
	store.Apply(ToggleCaseFile{VideoID: "v1"})
	got, _ = store.Snapshot().Video("v1")
	require.False(t, got.IsCaseFile)
	require.False(t, got.IsMainDelivery)
}

func TestSetVideoStatusValidatesEnum(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(AddVideo{Video: sampleVideo("v1", "p1", "teaser.mp4", 1)})

	store.Apply(SetVideoStatus{VideoID: "v1", Status: video.StatusApproved})
	got, _ := store.Snapshot().Video("v1")
	require.Equal(t, video.StatusApproved, got.Status)

	version := store.Snapshot().Version
	snap := store.Apply(SetVideoStatus{VideoID: "v1", Status: "shipped"})
	require.Equal(t, version, snap.Version)
	got, _ = snap.Video("v1")
	require.Equal(t, video.StatusApproved, got.Status)
}

func TestRemoveVideoClearsSelection(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(AddVideo{Video: sampleVideo("v1", "p1", "teaser.mp4", 1)})
	store.Apply(SelectProject{ID: "p1"})
	store.Apply(SelectVideo{ID: "v1"})

	store.Apply(RemoveVideo{ID: "v1"})
	snap := store.Snapshot()
	require.Empty(t, snap.Videos)
	require.Empty(t, snap.SelectedVideoID)
	require.Equal(t, "p1", snap.SelectedProjectID)
}

func TestUploadTaskLifecycle(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})

	store.Apply(AddUploadTask{Task: uploadTask("t1", "teaser.mp4")})
	require.Len(t, store.Snapshot().Uploads, 1)

	store.Apply(UpdateUploadProgress{ID: "t1", Progress: 140})
	require.Equal(t, 100, store.Snapshot().Uploads[0].Progress, "progress clamps to 100")

	store.Apply(CompleteUpload{ID: "t1", Video: sampleVideo("v1", "p1", "teaser.mp4", 0)})
	snap := store.Snapshot()
	require.Empty(t, snap.Uploads, "completion removes the task")
	got, ok := snap.Video("v1")
	require.True(t, ok)
	require.Equal(t, 1, got.Version)
}

func TestFailedUploadStaysVisible(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(AddUploadTask{Task: uploadTask("t1", "teaser.mp4")})

	store.Apply(FailUpload{ID: "t1", Message: "disk full"})
	snap := store.Snapshot()
	require.Len(t, snap.Uploads, 1)
	require.Equal(t, "disk full", snap.Uploads[0].Error)

	// A failed task no longer accepts progress
	version := snap.Version
	require.Equal(t, version, store.Apply(UpdateUploadProgress{ID: "t1", Progress: 50}).Version)

	store.Apply(CancelUpload{ID: "t1"})
	require.Empty(t, store.Snapshot().Uploads)
}

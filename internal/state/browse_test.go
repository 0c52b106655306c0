package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BVTRay/vioflow/internal/domain/tag"
)

func TestExplorerDepthIsDerivedFromSelection(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(ToggleRetrievalPanel{}) // enter explorer mode

	require.Equal(t, DepthGroups, store.Snapshot().ExplorerDepth())

	store.Apply(SelectGroup{Name: "commercials"})
	require.Equal(t, DepthProjects, store.Snapshot().ExplorerDepth())

	store.Apply(SelectProject{ID: "p1"})
	require.Equal(t, DepthVideos, store.Snapshot().ExplorerDepth())
}

func TestExplorerBackWalksUpOneLevel(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(ToggleRetrievalPanel{})
	store.Apply(SelectGroup{Name: "commercials"})
	store.Apply(SelectProject{ID: "p1"})

	store.Apply(ExplorerBack{})
	snap := store.Snapshot()
	require.Equal(t, DepthProjects, snap.ExplorerDepth())
	require.Empty(t, snap.SelectedProjectID)
	require.Equal(t, "commercials", snap.Browse.SelectedGroup)

	store.Apply(ExplorerBack{})
	require.Equal(t, DepthGroups, store.Snapshot().ExplorerDepth())

	// At the root, back is a no-op
	version := store.Snapshot().Version
	snap = store.Apply(ExplorerBack{})
	require.Equal(t, version, snap.Version)
}

func TestToggleRetrievalPanelResetsNavigation(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(SelectProject{ID: "p1"})

	// Leaving retrieval mode restarts the explorer at the group level
	store.Apply(ToggleRetrievalPanel{})
	snap := store.Snapshot()
	require.False(t, snap.Browse.RetrievalVisible)
	require.Empty(t, snap.SelectedProjectID)
	require.Empty(t, snap.Browse.SelectedGroup)

	store.Apply(ToggleRetrievalPanel{})
	require.True(t, store.Snapshot().Browse.RetrievalVisible)
}

func TestToggleRetrievalPanelKeepsCreateIntent(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})

	store.Apply(OpenNewProject{PendingGroup: "commercials"})
	store.Apply(ToggleRetrievalPanel{})

	wb := store.Snapshot().Workbench
	require.Equal(t, "newProject", wb.CurrentView(), "switching modes preserves a creation in progress")

	// Other views do not survive the mode switch
	store.Apply(ToggleRetrievalPanel{})
	store.Apply(OpenUpload{ProjectID: "p1"})
	store.Apply(ToggleRetrievalPanel{})
	require.Equal(t, "none", store.Snapshot().Workbench.CurrentView())
}

func TestSelectProjectClearsVideoSelection(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(AddProject{Project: sampleProject("p2")})
	store.Apply(AddVideo{Video: sampleVideo("v1", "p1", "teaser.mp4", 1)})

	store.Apply(SelectProject{ID: "p1"})
	store.Apply(SelectVideo{ID: "v1"})
	require.Equal(t, "v1", store.Snapshot().SelectedVideoID)

	store.Apply(SelectProject{ID: "p2"})
	snap := store.Snapshot()
	require.Equal(t, "p2", snap.SelectedProjectID)
	require.Empty(t, snap.SelectedVideoID)
}

func TestGroupTagFilter(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(AddProject{Project: sampleProject("p2")})
	store.Apply(AddVideo{Video: sampleVideo("v1", "p1", "teaser.mp4", 1)})
	store.Apply(AddVideo{Video: sampleVideo("v2", "p2", "promo.mp4", 1)})
	store.Apply(UpdateVideoTags{VideoID: "v1", Tags: []string{"social"}})
	store.Apply(UpdateVideoTags{VideoID: "v2", Tags: []string{"broadcast"}})

	// Inactive filter matches everything
	require.Len(t, store.Snapshot().FilteredProjects(), 2)

	store.Apply(SetGroupTag{Name: "social"})
	filtered := store.Snapshot().FilteredProjects()
	require.Len(t, filtered, 1)
	require.Equal(t, "p1", filtered[0].ID)

	// Re-selecting the same tag is a no-op
	version := store.Snapshot().Version
	require.Equal(t, version, store.Apply(SetGroupTag{Name: "social"}).Version)

	// Clearing the selection matches everything again
	store.Apply(SetGroupTag{Name: ""})
	require.Len(t, store.Snapshot().FilteredProjects(), 2)
}

func TestGroupTagMultiSelect(t *testing.T) {
	store := newTestStore(t)
	store.Apply(AddProject{Project: sampleProject("p1")})
	store.Apply(AddProject{Project: sampleProject("p2")})
	store.Apply(AddProject{Project: sampleProject("p3")})
	store.Apply(AddVideo{Video: sampleVideo("v1", "p1", "a.mp4", 1)})
	store.Apply(AddVideo{Video: sampleVideo("v2", "p2", "b.mp4", 1)})
	store.Apply(AddVideo{Video: sampleVideo("v3", "p3", "c.mp4", 1)})
	store.Apply(UpdateVideoTags{VideoID: "v1", Tags: []string{"social"}})
	store.Apply(UpdateVideoTags{VideoID: "v2", Tags: []string{"broadcast"}})
	store.Apply(UpdateVideoTags{VideoID: "v3", Tags: []string{"internal"}})

	store.Apply(ToggleGroupTagMultiSelect{Name: "social"})
	store.Apply(ToggleGroupTagMultiSelect{Name: "broadcast"})

	snap := store.Snapshot()
	require.Equal(t, tag.ModeMulti, snap.Filter.Mode)
	require.Len(t, snap.FilteredProjects(), 2, "multi-select is an OR across tags")

	// Toggling a tag out shrinks the selection
	store.Apply(ToggleGroupTagMultiSelect{Name: "broadcast"})
	require.Len(t, store.Snapshot().FilteredProjects(), 1)

	// Single-select replaces the whole multi selection
	store.Apply(SetGroupTag{Name: "internal"})
	snap = store.Snapshot()
	require.Equal(t, tag.ModeSingle, snap.Filter.Mode)
	require.Empty(t, snap.Filter.Multi)
	filtered := snap.FilteredProjects()
	require.Len(t, filtered, 1)
	require.Equal(t, "p3", filtered[0].ID)
}

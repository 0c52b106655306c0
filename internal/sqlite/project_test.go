package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/repository"
)

func testProject(id, name string) *project.Project {
	now := time.Now().UTC().Truncate(time.Second)
	return &project.Project{
		ID:           id,
		Name:         name,
		Client:       "ACME",
		Producer:     "Pat",
		Director:     "Sam",
		Group:        "commercials",
		Status:       project.StatusActive,
		TeamMembers:  []string{"Pat", "Sam"},
		CreatedAt:    now,
		LastActivity: now,
	}
}

func TestProjectRepository_Create(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := testProject("p1", "Spring Campaign")
	err := repo.Create(ctx, proj)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, proj.Name, retrieved.Name)
	require.Equal(t, proj.Client, retrieved.Client)
	require.Equal(t, project.StatusActive, retrieved.Status)
	require.Equal(t, []string{"Pat", "Sam"}, retrieved.TeamMembers)
	require.Nil(t, retrieved.FinalizedAt)
}

func TestProjectRepository_CreateDuplicate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProject("p1", "First")))

	err := repo.Create(ctx, testProject("p1", "Second"))
	require.Equal(t, repository.ErrDuplicate, err)
}

func TestProjectRepository_Get_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := testProject("p1", "Spring Campaign")
	require.NoError(t, repo.Create(ctx, proj))

	finalized := time.Now().UTC().Truncate(time.Second)
	proj.Name = "Spring Campaign v2"
	proj.Status = project.StatusFinalized
	proj.FinalizedAt = &finalized
	proj.TeamMembers = []string{"Pat"}
	require.NoError(t, repo.Update(ctx, proj))

	retrieved, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Spring Campaign v2", retrieved.Name)
	require.Equal(t, project.StatusFinalized, retrieved.Status)
	require.NotNil(t, retrieved.FinalizedAt)
	require.Equal(t, []string{"Pat"}, retrieved.TeamMembers)

	err = repo.Update(ctx, testProject("missing", "Nope"))
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProject("p1", "Doomed")))
	require.NoError(t, repo.Delete(ctx, "p1"))

	_, err := repo.Get(ctx, "p1")
	require.Equal(t, repository.ErrNotFound, err)

	err = repo.Delete(ctx, "p1")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_DeleteCascadesVideos(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	videos := NewVideoRepository(db)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, testProject("p1", "Parent")))
	require.NoError(t, videos.Create(ctx, testVideo("v1", "p1", "teaser", 1)))

	require.NoError(t, projects.Delete(ctx, "p1"))

	_, err := videos.Get(ctx, "v1")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProject("p1", "One")))
	require.NoError(t, repo.Create(ctx, testProject("p2", "Two")))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
}

func TestProjectRepository_ListSummaries(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	videos := NewVideoRepository(db)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, testProject("p1", "With Videos")))
	require.NoError(t, projects.Create(ctx, testProject("p2", "Empty")))
	require.NoError(t, videos.Create(ctx, testVideo("v1", "p1", "teaser", 1)))
	require.NoError(t, videos.Create(ctx, testVideo("v2", "p1", "teaser", 2)))

	summaries, err := projects.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[string]int{}
	for _, s := range summaries {
		byID[s.ID] = s.VideoCount
	}
	require.Equal(t, 2, byID["p1"])
	require.Equal(t, 0, byID["p2"])
}

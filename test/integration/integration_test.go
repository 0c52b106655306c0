package integration_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/video"
	"github.com/BVTRay/vioflow/internal/sqlite"
	"github.com/BVTRay/vioflow/internal/state"
	"github.com/BVTRay/vioflow/internal/workflow"
)

type testEnv struct {
	db    *sqlite.DB
	store *state.Store

	projectSvc  *workflow.ProjectService
	videoSvc    *workflow.VideoService
	deliverySvc *workflow.DeliveryService
	tagSvc      *workflow.TagService
	activitySvc *activity.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := state.NewStore(state.NewSnapshot(), logger)

	projectRepo := sqlite.NewProjectRepository(db)
	videoRepo := sqlite.NewVideoRepository(db)
	checklistRepo := sqlite.NewChecklistRepository(db)
	tagRepo := sqlite.NewTagRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	activitySvc := activity.NewService(activityRepo, logger)

	return &testEnv{
		db:          db,
		store:       store,
		projectSvc:  workflow.NewProjectService(projectRepo, checklistRepo, store, activitySvc, logger),
		videoSvc:    workflow.NewVideoService(videoRepo, tagRepo, store, activitySvc, logger),
		deliverySvc: workflow.NewDeliveryService(checklistRepo, store, activitySvc, logger),
		tagSvc:      workflow.NewTagService(tagRepo, store, logger),
		activitySvc: activitySvc,
	}
}

func TestIntegration_ProductionToDelivery(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, workflow.CreateProjectRequest{
		Name:   "Spring Promo",
		Client: "ACME",
		Group:  "promos",
	})
	require.NoError(t, err)

	v1, err := env.videoSvc.Register(ctx, workflow.RegisterRequest{
		ProjectID: proj.ID,
		Name:      "teaser.mp4",
	})
	require.NoError(t, err)
	require.Equal(t, 1, v1.Version)

	v2, err := env.videoSvc.Register(ctx, workflow.RegisterRequest{
		ProjectID: proj.ID,
		Name:      "v1_teaser.mp4",
	})
	require.NoError(t, err)
	require.Equal(t, "teaser.mp4", v2.BaseName)
	require.Equal(t, 2, v2.Version)

	// Delivery is gated until the project is finalized
	_, err = env.projectSvc.CompleteDelivery(ctx, proj.ID)
	require.ErrorIs(t, err, project.ErrInvalidTransition)

	finalized, err := env.projectSvc.Finalize(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusFinalized, finalized.Status)

	_, err = env.projectSvc.CompleteDelivery(ctx, proj.ID)
	require.ErrorIs(t, err, project.ErrNotReady)

	for _, f := range []delivery.Field{
		delivery.FieldCleanFeed,
		delivery.FieldTechReview,
		delivery.FieldCopyrightCheck,
		delivery.FieldMetadata,
	} {
		require.NoError(t, env.deliverySvc.SetFlag(ctx, proj.ID, f, true))
	}

	// Flags alone are not enough: a tagged main delivery video is required
	_, err = env.projectSvc.CompleteDelivery(ctx, proj.ID)
	require.ErrorIs(t, err, project.ErrNotReady)

	require.NoError(t, env.videoSvc.ToggleMainDelivery(ctx, v2.ID))
	_, err = env.projectSvc.CompleteDelivery(ctx, proj.ID)
	require.ErrorIs(t, err, project.ErrNotReady)

	_, err = env.tagSvc.Ensure(ctx, "teaser", "format")
	require.NoError(t, err)
	require.NoError(t, env.videoSvc.UpdateTags(ctx, v2.ID, []string{"teaser"}))

	delivered, err := env.projectSvc.CompleteDelivery(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)

	entries, err := env.activitySvc.Recent(ctx, activity.ListOptions{ProjectID: proj.ID})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	require.Equal(t, activity.TypeDeliveryCompleted, entries[0].Type)
}

func TestIntegration_DeliveryLinks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, workflow.CreateProjectRequest{Name: "Spring Promo"})
	require.NoError(t, err)

	v, err := env.videoSvc.Register(ctx, workflow.RegisterRequest{ProjectID: proj.ID, Name: "spot.mp4"})
	require.NoError(t, err)

	_, err = env.projectSvc.Finalize(ctx, proj.ID)
	require.NoError(t, err)

	pkg, err := env.deliverySvc.GenerateLink(ctx, workflow.GenerateLinkRequest{
		ProjectID: proj.ID,
		Title:     "Client Review",
		FileIDs:   []string{v.ID},
	})
	require.NoError(t, err)
	require.True(t, pkg.Active)

	require.NoError(t, env.deliverySvc.RecordDownload(ctx, proj.ID, pkg.ID))
	require.NoError(t, env.deliverySvc.SetPackageActive(ctx, proj.ID, pkg.ID, false))

	cl, ok := env.store.Snapshot().Checklist(proj.ID)
	require.True(t, ok)
	require.Len(t, cl.Packages, 1)
	require.Equal(t, 1, cl.Packages[0].Downloads)
	require.False(t, cl.Packages[0].Active)

	// The persisted checklist agrees with the snapshot
	stored, err := sqlite.NewChecklistRepository(env.db).Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, stored.Packages, 1)
	require.Equal(t, 1, stored.Packages[0].Downloads)
	require.False(t, stored.Packages[0].Active)
}

func TestIntegration_RestartRebuildsSnapshot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, workflow.CreateProjectRequest{Name: "Spring Promo"})
	require.NoError(t, err)
	v, err := env.videoSvc.Register(ctx, workflow.RegisterRequest{ProjectID: proj.ID, Name: "teaser.mp4"})
	require.NoError(t, err)
	_, err = env.projectSvc.Finalize(ctx, proj.ID)
	require.NoError(t, err)

	// A fresh store seeded from the repositories matches the live one
	projects, err := sqlite.NewProjectRepository(env.db).List(ctx)
	require.NoError(t, err)
	videos, err := sqlite.NewVideoRepository(env.db).List(ctx)
	require.NoError(t, err)
	checklists, err := sqlite.NewChecklistRepository(env.db).List(ctx)
	require.NoError(t, err)

	snap := state.NewSnapshot()
	snap.Projects = projects
	snap.Videos = videos
	for _, cl := range checklists {
		snap.Checklists[cl.ProjectID] = cl
	}

	rebuilt := state.NewStore(snap, slog.New(slog.NewTextHandler(io.Discard, nil))).Snapshot()
	got, ok := rebuilt.Project(proj.ID)
	require.True(t, ok)
	require.Equal(t, project.StatusFinalized, got.Status)
	gotVideo, ok := rebuilt.Video(v.ID)
	require.True(t, ok)
	require.Equal(t, video.StatusInitial, gotVideo.Status)
	_, ok = rebuilt.Checklist(proj.ID)
	require.True(t, ok)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BVTRay/vioflow/internal/config"
	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/mcp"
	"github.com/BVTRay/vioflow/internal/sqlite"
	"github.com/BVTRay/vioflow/internal/state"
	"github.com/BVTRay/vioflow/internal/transport"
	"github.com/BVTRay/vioflow/internal/workflow"
	"github.com/BVTRay/vioflow/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	videoRepo := sqlite.NewVideoRepository(db)
	checklistRepo := sqlite.NewChecklistRepository(db)
	tagRepo := sqlite.NewTagRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	snapshot, err := loadSnapshot(context.Background(), projectRepo, videoRepo, checklistRepo, tagRepo)
	if err != nil {
		logger.Error("failed to load state", "error", err)
		os.Exit(1)
	}
	store := state.NewStore(snapshot, logger)

	activitySvc := activity.NewService(activityRepo, logger)
	projectSvc := workflow.NewProjectService(projectRepo, checklistRepo, store, activitySvc, logger)
	videoSvc := workflow.NewVideoService(videoRepo, tagRepo, store, activitySvc, logger)
	deliverySvc := workflow.NewDeliveryService(checklistRepo, store, activitySvc, logger)
	tagSvc := workflow.NewTagService(tagRepo, store, logger)
	uploadMgr := workflow.NewUploadManager(workflow.NewLocalTransport(), videoSvc, store, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projectSvc,
			Activity: activitySvc,
			Store:    store,
		},
		Logger: logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}

	hub := ws.NewHub()
	go hub.Run()
	store.Watch(hub.NotifySnapshot)

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		authMiddleware = transport.AuthMiddleware(cfg.Auth.Token)
	}

	router := transport.NewServer(transport.Services{
		Store:      store,
		Projects:   projectSvc,
		Videos:     videoSvc,
		Deliveries: deliverySvc,
		Tags:       tagSvc,
		Uploads:    uploadMgr,
		Activities: activitySvc,
	}, logger, authMiddleware)

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/*", mcpHandler)
	router.Handle("/ws", &ws.Handler{Hub: hub, Store: store})

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// loadSnapshot rebuilds the in-memory state from persistence at startup.
func loadSnapshot(
	ctx context.Context,
	projects *sqlite.ProjectRepository,
	videos *sqlite.VideoRepository,
	checklists *sqlite.ChecklistRepository,
	tags *sqlite.TagRepository,
) (state.Snapshot, error) {
	snap := state.NewSnapshot()

	projs, err := projects.List(ctx)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("load projects: %w", err)
	}
	snap.Projects = projs

	vids, err := videos.List(ctx)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("load videos: %w", err)
	}
	snap.Videos = vids

	cls, err := checklists.List(ctx)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("load checklists: %w", err)
	}
	snap.Checklists = make(map[string]delivery.Checklist, len(cls))
	for _, cl := range cls {
		snap.Checklists[cl.ProjectID] = cl
	}

	tgs, err := tags.List(ctx)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("load tags: %w", err)
	}
	snap.Tags = tgs

	return snap, nil
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

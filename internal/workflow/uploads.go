package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/BVTRay/vioflow/internal/domain/upload"
	"github.com/BVTRay/vioflow/internal/domain/video"
	"github.com/BVTRay/vioflow/internal/state"
	"github.com/google/uuid"
)

// UploadTransport is the binary transfer collaborator. It reports progress
// through the callback and terminates with either a created video record or
// an error. The core never inspects bytes.
type UploadTransport interface {
	Upload(ctx context.Context, req UploadRequest, progress func(pct int)) error
}

// UploadRequest carries the coordinates of one transfer.
type UploadRequest struct {
	TaskID      string
	Filename    string
	ProjectID   string
	BaseName    string
	Type        video.MediaType
	ChangeLog   string
	TargetVideo string
}

// UploadManager drives the upload transport and translates its lifecycle
// into store events: task added, progress updates, completion (which
// registers the created video) or failure. Cancellation aborts the transfer
// through a per-task context.
type UploadManager struct {
	transport UploadTransport
	videos    *VideoService
	store     *state.Store
	logger    *slog.Logger

	mu     sync.Mutex
	aborts map[string]context.CancelFunc
}

// NewUploadManager creates a new upload manager.
func NewUploadManager(transport UploadTransport, videos *VideoService, store *state.Store, logger *slog.Logger) *UploadManager {
	return &UploadManager{
		transport: transport,
		videos:    videos,
		store:     store,
		logger:    logger,
		aborts:    map[string]context.CancelFunc{},
	}
}

// BeginRequest describes an upload to start.
type BeginRequest struct {
	Filename    string
	ProjectID   string
	ProjectName string
	BaseName    string
	Type        video.MediaType
	ChangeLog   string
	TargetVideo string
}

// Begin registers an upload task and starts the transfer in the background.
// It returns the task id used for progress tracking and cancellation, plus a
// preview of the version the resulting video will take.
func (m *UploadManager) Begin(ctx context.Context, req BeginRequest) (string, int, error) {
	if strings.TrimSpace(req.Filename) == "" || strings.TrimSpace(req.ProjectID) == "" {
		return "", 0, upload.ErrInvalidInput
	}

	snap := m.store.Snapshot()
	if _, ok := snap.Project(req.ProjectID); !ok {
		return "", 0, upload.ErrProjectUnknown
	}

	baseName := req.BaseName
	if strings.TrimSpace(baseName) == "" {
		baseName = video.StripVersionPrefix(req.Filename)
	}
	nextVersion := snap.NextVersion(req.ProjectID, baseName)

	taskID := uuid.NewString()
	m.store.Apply(state.AddUploadTask{Task: upload.Task{
		ID:          taskID,
		Filename:    req.Filename,
		Status:      upload.StatusUploading,
		ProjectName: req.ProjectName,
	}})

	transferCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.mu.Lock()
	m.aborts[taskID] = cancel
	m.mu.Unlock()

	go m.run(transferCtx, taskID, baseName, nextVersion, req)

	return taskID, nextVersion, nil
}

// Cancel aborts an in-flight transfer and evicts its task.
func (m *UploadManager) Cancel(taskID string) error {
	m.mu.Lock()
	cancel, ok := m.aborts[taskID]
	if ok {
		delete(m.aborts, taskID)
	}
	m.mu.Unlock()
	if !ok {
		return upload.ErrTaskNotFound
	}
	cancel()
	m.store.Apply(state.CancelUpload{ID: taskID})
	return nil
}

func (m *UploadManager) run(ctx context.Context, taskID, baseName string, version int, req BeginRequest) {
	defer m.forget(taskID)

	err := m.transport.Upload(ctx, UploadRequest{
		TaskID:      taskID,
		Filename:    req.Filename,
		ProjectID:   req.ProjectID,
		BaseName:    baseName,
		Type:        req.Type,
		ChangeLog:   req.ChangeLog,
		TargetVideo: req.TargetVideo,
	}, func(pct int) {
		m.store.Apply(state.UpdateUploadProgress{ID: taskID, Progress: pct})
	})

	if ctx.Err() != nil {
		// Cancelled; the task was already evicted.
		return
	}
	if err != nil {
		m.store.Apply(state.FailUpload{ID: taskID, Message: err.Error()})
		m.logger.Warn("upload failed", "task", taskID, "file", req.Filename, "error", err)
		return
	}

	// Display names carry the version prefix by convention.
	name := fmt.Sprintf("v%d_%s", version, baseName)

	v, err := m.videos.Register(ctx, RegisterRequest{
		ProjectID:        req.ProjectID,
		Name:             name,
		OriginalFilename: req.Filename,
		BaseName:         baseName,
		Type:             req.Type,
		ChangeLog:        req.ChangeLog,
	})
	if err != nil {
		m.store.Apply(state.FailUpload{ID: taskID, Message: err.Error()})
		m.logger.Error("upload registration failed", "task", taskID, "error", err)
		return
	}

	m.store.Apply(state.CompleteUpload{ID: taskID, Video: *v})
}

func (m *UploadManager) forget(taskID string) {
	m.mu.Lock()
	delete(m.aborts, taskID)
	m.mu.Unlock()
}

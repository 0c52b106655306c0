package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/video"
	"github.com/BVTRay/vioflow/internal/repository"
	"github.com/BVTRay/vioflow/internal/state"
	"github.com/google/uuid"
)

// VideoService coordinates video CRUD against the transport repository and
// the snapshot store.
type VideoService struct {
	videos     repository.VideoRepository
	tags       repository.TagRepository
	store      *state.Store
	activities *activity.Service
	logger     *slog.Logger
}

// NewVideoService creates a new video service.
func NewVideoService(
	videos repository.VideoRepository,
	tags repository.TagRepository,
	store *state.Store,
	activities *activity.Service,
	logger *slog.Logger,
) *VideoService {
	return &VideoService{
		videos:     videos,
		tags:       tags,
		store:      store,
		activities: activities,
		logger:     logger,
	}
}

// RegisterRequest describes a video created by a completed upload.
type RegisterRequest struct {
	ProjectID        string
	Name             string
	OriginalFilename string
	BaseName         string
	Type             video.MediaType
	ChangeLog        string
}

// Register persists a freshly uploaded video, assigning its series version
// from the current snapshot.
func (s *VideoService) Register(ctx context.Context, req RegisterRequest) (*video.Video, error) {
	if strings.TrimSpace(req.ProjectID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, video.ErrInvalidInput
	}

	snap := s.store.Snapshot()
	baseName := req.BaseName
	if strings.TrimSpace(baseName) == "" {
		baseName = video.StripVersionPrefix(req.Name)
	}

	mediaType := req.Type
	if mediaType == "" {
		mediaType = video.TypeVideo
	}

	v := &video.Video{
		ID:               uuid.NewString(),
		ProjectID:        req.ProjectID,
		Name:             req.Name,
		OriginalFilename: req.OriginalFilename,
		BaseName:         baseName,
		Type:             mediaType,
		Version:          snap.NextVersion(req.ProjectID, baseName),
		UploadedAt:       time.Now(),
		Status:           video.StatusInitial,
		ChangeLog:        req.ChangeLog,
	}

	if err := s.videos.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("creating video: %w", err)
	}

	s.store.Apply(state.AddVideo{Video: *v})
	s.logActivity(ctx, v.ProjectID, &v.ID, activity.TypeVideoUploaded,
		fmt.Sprintf("uploaded %s v%d", baseName, v.Version))
	return v, nil
}

// UpdateTags replaces a video's tag list and adjusts tag usage counters.
func (s *VideoService) UpdateTags(ctx context.Context, videoID string, tags []string) error {
	current, err := s.videos.Get(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return video.ErrVideoNotFound
		}
		return fmt.Errorf("getting video: %w", err)
	}

	if err := s.videos.SetTags(ctx, videoID, tags); err != nil {
		return fmt.Errorf("setting tags: %w", err)
	}

	s.adjustUsage(ctx, current.Tags, tags)
	s.store.Apply(state.UpdateVideoTags{VideoID: videoID, Tags: tags})
	s.logActivity(ctx, current.ProjectID, &videoID, activity.TypeVideoUpdated, "updated tags")
	return nil
}

// SetStatus updates a video's review status.
func (s *VideoService) SetStatus(ctx context.Context, videoID string, status video.Status) error {
	current, err := s.videos.Get(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return video.ErrVideoNotFound
		}
		return fmt.Errorf("getting video: %w", err)
	}

	updated := *current
	updated.Status = status
	if err := s.videos.Update(ctx, &updated); err != nil {
		return fmt.Errorf("updating video: %w", err)
	}

	s.store.Apply(state.SetVideoStatus{VideoID: videoID, Status: status})
	return nil
}

// ToggleCaseFile flips the case-file flag.
func (s *VideoService) ToggleCaseFile(ctx context.Context, videoID string) error {
	return s.toggleFlag(ctx, videoID, func(v *video.Video) state.Event {
		v.IsCaseFile = !v.IsCaseFile
		if !v.IsCaseFile {
			v.IsMainDelivery = false
		}
		return state.ToggleCaseFile{VideoID: videoID}
	})
}

// ToggleMainDelivery flips the main-delivery flag; setting it implies the
// case-file flag.
func (s *VideoService) ToggleMainDelivery(ctx context.Context, videoID string) error {
	return s.toggleFlag(ctx, videoID, func(v *video.Video) state.Event {
		v.IsMainDelivery = !v.IsMainDelivery
		if v.IsMainDelivery {
			v.IsCaseFile = true
		}
		return state.ToggleMainDelivery{VideoID: videoID}
	})
}

// Delete removes a video through the transport collaborator and evicts it
// from the snapshot on confirmation.
func (s *VideoService) Delete(ctx context.Context, videoID string) error {
	current, err := s.videos.Get(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return video.ErrVideoNotFound
		}
		return fmt.Errorf("getting video: %w", err)
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return fmt.Errorf("deleting video: %w", err)
	}

	s.adjustUsage(ctx, current.Tags, nil)
	s.store.Apply(state.RemoveVideo{ID: videoID})
	s.logActivity(ctx, current.ProjectID, &videoID, activity.TypeVideoDeleted,
		fmt.Sprintf("deleted %s v%d", video.SeriesKey(*current), current.Version))
	return nil
}

func (s *VideoService) toggleFlag(ctx context.Context, videoID string, mutate func(*video.Video) state.Event) error {
	current, err := s.videos.Get(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return video.ErrVideoNotFound
		}
		return fmt.Errorf("getting video: %w", err)
	}

	updated := *current
	ev := mutate(&updated)
	if err := s.videos.Update(ctx, &updated); err != nil {
		return fmt.Errorf("updating video: %w", err)
	}

	s.store.Apply(ev)
	return nil
}

func (s *VideoService) adjustUsage(ctx context.Context, before, after []string) {
	if s.tags == nil {
		return
	}
	was := make(map[string]bool, len(before))
	for _, t := range before {
		was[t] = true
	}
	now := make(map[string]bool, len(after))
	for _, t := range after {
		now[t] = true
	}
	for t := range now {
		if !was[t] {
			if err := s.tags.IncrementUsage(ctx, t, 1); err != nil && s.logger != nil {
				s.logger.Warn("tag usage update failed", "tag", t, "error", err)
			}
		}
	}
	for t := range was {
		if !now[t] {
			if err := s.tags.IncrementUsage(ctx, t, -1); err != nil && s.logger != nil {
				s.logger.Warn("tag usage update failed", "tag", t, "error", err)
			}
		}
	}
}

func (s *VideoService) logActivity(ctx context.Context, projectID string, videoID *string, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, &activity.Entry{
		ProjectID: projectID,
		VideoID:   videoID,
		Type:      typ,
		Summary:   summary,
	}); err != nil && s.logger != nil {
		s.logger.Warn("activity log failed", "error", err)
	}
}

package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/repository"
	"github.com/BVTRay/vioflow/internal/state"
	"github.com/google/uuid"
)

// ProjectService coordinates project CRUD and lifecycle transitions: it
// persists through the transport repository first and applies the matching
// store event only once persistence succeeded, so a failed call leaves the
// snapshot untouched.
type ProjectService struct {
	projects   repository.ProjectRepository
	checklists repository.ChecklistRepository
	store      *state.Store
	activities *activity.Service
	logger     *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	projects repository.ProjectRepository,
	checklists repository.ChecklistRepository,
	store *state.Store,
	activities *activity.Service,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		checklists: checklists,
		store:      store,
		activities: activities,
		logger:     logger,
	}
}

// CreateProjectRequest defines project creation inputs.
type CreateProjectRequest struct {
	Name        string
	Client      string
	Producer    string
	Director    string
	Group       string
	TeamMembers []string
}

// Create creates a new project.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*project.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, project.ErrInvalidInput
	}

	now := time.Now()
	proj := &project.Project{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Client:       req.Client,
		Producer:     req.Producer,
		Director:     req.Director,
		Group:        req.Group,
		Status:       project.StatusActive,
		TeamMembers:  req.TeamMembers,
		CreatedAt:    now,
		LastActivity: now,
	}

	if err := s.projects.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.store.Apply(state.AddProject{Project: *proj})
	s.logActivity(ctx, proj.ID, nil, activity.TypeProjectCreated, fmt.Sprintf("created project %q", proj.Name))
	return proj, nil
}

// UpdateSettingsRequest carries optional settings edits.
type UpdateSettingsRequest struct {
	ID          string
	Name        *string
	Client      *string
	Producer    *string
	Director    *string
	Group       *string
	TeamMembers []string
}

// UpdateSettings edits a project's settings fields.
func (s *ProjectService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*project.Project, error) {
	current, err := s.projects.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, project.ErrInvalidInput
		}
		updated.Name = *req.Name
	}
	if req.Client != nil {
		updated.Client = *req.Client
	}
	if req.Producer != nil {
		updated.Producer = *req.Producer
	}
	if req.Director != nil {
		updated.Director = *req.Director
	}
	if req.Group != nil {
		updated.Group = *req.Group
	}
	if req.TeamMembers != nil {
		updated.TeamMembers = req.TeamMembers
	}
	updated.LastActivity = time.Now()

	if err := s.projects.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.store.Apply(state.UpdateProject{Project: updated})
	s.logActivity(ctx, updated.ID, nil, activity.TypeProjectUpdated, fmt.Sprintf("updated settings of %q", updated.Name))
	return &updated, nil
}

// Delete removes a project through the transport collaborator and evicts it
// from the snapshot on confirmation.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	s.store.Apply(state.RemoveProject{ID: id})
	s.logActivity(ctx, id, nil, activity.TypeProjectDeleted, "deleted project")
	return nil
}

// Finalize advances a project to finalized and creates its delivery
// checklist on first finalize. Finalizing an already-finalized project is
// idempotent.
func (s *ProjectService) Finalize(ctx context.Context, id string) (*project.Project, error) {
	current, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	now := time.Now()
	if project.CanFinalize(current.Status) {
		updated := *current
		updated.Status = project.StatusFinalized
		updated.FinalizedAt = &now
		updated.LastActivity = now
		if err := s.projects.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("finalizing project: %w", err)
		}
		current = &updated
	} else if current.Status != project.StatusFinalized {
		return nil, project.ErrInvalidTransition
	}

	if _, err := s.checklists.Get(ctx, id); errors.Is(err, repository.ErrNotFound) {
		cl := delivery.New(id, now)
		if err := s.checklists.Create(ctx, &cl); err != nil {
			return nil, fmt.Errorf("creating checklist: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("getting checklist: %w", err)
	}

	s.store.Apply(state.FinalizeProject{ID: id, At: now})
	s.logActivity(ctx, id, nil, activity.TypeProjectFinalized, fmt.Sprintf("finalized project %q", current.Name))
	return current, nil
}

// CompleteDelivery advances a finalized project to delivered. The readiness
// gate is recomputed from the snapshot; an unready project is refused.
func (s *ProjectService) CompleteDelivery(ctx context.Context, id string) (*project.Project, error) {
	current, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if !project.CanDeliver(current.Status) {
		return nil, project.ErrInvalidTransition
	}
	if !s.store.Snapshot().ReadyForDelivery(id) {
		return nil, project.ErrNotReady
	}

	now := time.Now()
	updated := *current
	updated.Status = project.StatusDelivered
	updated.DeliveredAt = &now
	updated.LastActivity = now
	if err := s.projects.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("completing delivery: %w", err)
	}

	s.store.Apply(state.CompleteDelivery{ID: id, At: now})
	s.logActivity(ctx, id, nil, activity.TypeDeliveryCompleted, fmt.Sprintf("completed delivery of %q", updated.Name))
	return &updated, nil
}

// Archive moves a project to the terminal archived branch.
func (s *ProjectService) Archive(ctx context.Context, id string) (*project.Project, error) {
	current, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if err := project.ValidateTransition(current.Status, project.StatusArchived); err != nil {
		return nil, err
	}

	updated := *current
	updated.Status = project.StatusArchived
	updated.LastActivity = time.Now()
	if err := s.projects.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("archiving project: %w", err)
	}

	s.store.Apply(state.ArchiveProject{ID: id})
	s.logActivity(ctx, id, nil, activity.TypeProjectArchived, fmt.Sprintf("archived project %q", updated.Name))
	return &updated, nil
}

// List returns project summaries.
func (s *ProjectService) List(ctx context.Context) ([]project.Summary, error) {
	return s.projects.ListSummaries(ctx)
}

func (s *ProjectService) logActivity(ctx context.Context, projectID string, videoID *string, typ activity.Type, summary string) {
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

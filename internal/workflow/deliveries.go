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
	"github.com/BVTRay/vioflow/internal/repository"
	"github.com/BVTRay/vioflow/internal/state"
	"github.com/google/uuid"
)

// DeliveryService coordinates checklist edits and delivery link generation.
type DeliveryService struct {
	checklists repository.ChecklistRepository
	store      *state.Store
	activities *activity.Service
	logger     *slog.Logger
}

// NewDeliveryService creates a new delivery service.
func NewDeliveryService(
	checklists repository.ChecklistRepository,
	store *state.Store,
	activities *activity.Service,
	logger *slog.Logger,
) *DeliveryService {
	return &DeliveryService{
		checklists: checklists,
		store:      store,
		activities: activities,
		logger:     logger,
	}
}

// SetFlag updates one readiness flag on a project's checklist.
func (s *DeliveryService) SetFlag(ctx context.Context, projectID string, field delivery.Field, value bool) error {
	if !delivery.ValidField(field) {
		return delivery.ErrUnknownField
	}
	current, err := s.get(ctx, projectID)
	if err != nil {
		return err
	}

	updated := current.WithFlag(field, value)
	if err := s.checklists.Update(ctx, &updated); err != nil {
		return fmt.Errorf("updating checklist: %w", err)
	}

	s.store.Apply(state.UpdateChecklistField{ProjectID: projectID, Field: field, Value: value})
	s.logActivity(ctx, projectID, fmt.Sprintf("checklist %s=%t", field, value))
	return nil
}

// SetNote replaces the checklist's free-text note.
func (s *DeliveryService) SetNote(ctx context.Context, projectID, note string) error {
	current, err := s.get(ctx, projectID)
	if err != nil {
		return err
	}

	updated := *current
	updated.Note = note
	if err := s.checklists.Update(ctx, &updated); err != nil {
		return fmt.Errorf("updating checklist: %w", err)
	}

	s.store.Apply(state.UpdateChecklistNote{ProjectID: projectID, Note: note})
	return nil
}

// SetInfo sets the client-facing delivery title and description.
func (s *DeliveryService) SetInfo(ctx context.Context, projectID, title, description string) error {
	current, err := s.get(ctx, projectID)
	if err != nil {
		return err
	}

	updated := *current
	updated.Title = title
	updated.Description = description
	if err := s.checklists.Update(ctx, &updated); err != nil {
		return fmt.Errorf("updating checklist: %w", err)
	}

	s.store.Apply(state.SetDeliveryInfo{ProjectID: projectID, Title: title, Description: description})
	return nil
}

// GenerateLinkRequest describes a delivery package to mint.
type GenerateLinkRequest struct {
	ProjectID   string
	Title       string
	Description string
	FileIDs     []string
}

// GenerateLink mints a delivery package with a fresh link token, persists it
// and registers it in the snapshot.
func (s *DeliveryService) GenerateLink(ctx context.Context, req GenerateLinkRequest) (*delivery.Package, error) {
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, delivery.ErrInvalidInput
	}
	if _, err := s.get(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	pkg := &delivery.Package{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Link:        fmt.Sprintf("/d/%s", uuid.NewString()),
		FileIDs:     req.FileIDs,
		CreatedAt:   time.Now(),
		Active:      true,
	}

	if err := s.checklists.AddPackage(ctx, req.ProjectID, pkg); err != nil {
		return nil, fmt.Errorf("adding delivery package: %w", err)
	}

	s.store.Apply(state.AddDeliveryPackage{ProjectID: req.ProjectID, Package: *pkg})
	s.logActivity(ctx, req.ProjectID, fmt.Sprintf("generated delivery link %q", pkg.Title))
	return pkg, nil
}

// RecordDownload bumps a package's download counter.
func (s *DeliveryService) RecordDownload(ctx context.Context, projectID, packageID string) error {
	cl, err := s.get(ctx, projectID)
	if err != nil {
		return err
	}

	for _, pkg := range cl.Packages {
		if pkg.ID != packageID {
			continue
		}
		updated := pkg
		updated.Downloads++
		if err := s.checklists.UpdatePackage(ctx, projectID, &updated); err != nil {
			return fmt.Errorf("updating delivery package: %w", err)
		}
		s.store.Apply(state.RecordDownload{ProjectID: projectID, PackageID: packageID})
		return nil
	}
	return delivery.ErrPackageNotFound
}

// SetPackageActive enables or disables a delivery link.
func (s *DeliveryService) SetPackageActive(ctx context.Context, projectID, packageID string, active bool) error {
	cl, err := s.get(ctx, projectID)
	if err != nil {
		return err
	}

	for _, pkg := range cl.Packages {
		if pkg.ID != packageID {
			continue
		}
		updated := pkg
		updated.Active = active
		if err := s.checklists.UpdatePackage(ctx, projectID, &updated); err != nil {
			return fmt.Errorf("updating delivery package: %w", err)
		}
		s.store.Apply(state.SetPackageActive{ProjectID: projectID, PackageID: packageID, Active: active})
		return nil
	}
	return delivery.ErrPackageNotFound
}

func (s *DeliveryService) get(ctx context.Context, projectID string) (*delivery.Checklist, error) {
	cl, err := s.checklists.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, delivery.ErrChecklistNotFound
		}
		return nil, fmt.Errorf("getting checklist: %w", err)
	}
	return cl, nil
}

func (s *DeliveryService) logActivity(ctx context.Context, projectID, summary string) {
	if s.activities == nil {
		return
	}
	typ := activity.TypeChecklistUpdated
	if strings.HasPrefix(summary, "generated delivery link") {
		typ = activity.TypeDeliveryLinkCreated
	}
	if err := s.activities.Log(ctx, &activity.Entry{
		ProjectID: projectID,
		Type:      typ,
		Summary:   summary,
	}); err != nil && s.logger != nil {
		s.logger.Warn("activity log failed", "error", err)
	}
}

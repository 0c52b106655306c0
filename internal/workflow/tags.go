package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BVTRay/vioflow/internal/domain/tag"
	"github.com/BVTRay/vioflow/internal/repository"
	"github.com/BVTRay/vioflow/internal/state"
	"github.com/google/uuid"
)

// TagService coordinates the tag catalog.
type TagService struct {
	tags   repository.TagRepository
	store  *state.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(tags repository.TagRepository, store *state.Store, logger *slog.Logger) *TagService {
	return &TagService{tags: tags, store: store, logger: logger}
}

// Ensure inserts a tag by name if it doesn't exist yet and returns the
// canonical record.
func (s *TagService) Ensure(ctx context.Context, name, category string) (*tag.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, tag.ErrInvalidInput
	}

	existing, err := s.tags.GetByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("getting tag: %w", err)
	}

	t := &tag.Tag{
		ID:       uuid.NewString(),
		Name:     name,
		Category: category,
	}
	if err := s.tags.Upsert(ctx, t); err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	s.store.Apply(state.UpsertTag{Tag: *t})
	return t, nil
}

// List returns the tag catalog.
func (s *TagService) List(ctx context.Context) ([]tag.Tag, error) {
	return s.tags.List(ctx)
}

package mocks

import (
	"context"

	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/tag"
	"github.com/BVTRay/vioflow/internal/domain/video"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListSummaries(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// VideoRepository is a mock for repository.VideoRepository.
type VideoRepository struct {
	mock.Mock
}

func (m *VideoRepository) Create(ctx context.Context, v *video.Video) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VideoRepository) Get(ctx context.Context, id string) (*video.Video, error) {
	args := m.Called(ctx, id)
	if vid, ok := args.Get(0).(*video.Video); ok {
		return vid, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoRepository) Update(ctx context.Context, v *video.Video) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VideoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *VideoRepository) ListByProject(ctx context.Context, projectID string) ([]video.Video, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]video.Video); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoRepository) List(ctx context.Context) ([]video.Video, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]video.Video); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoRepository) SetTags(ctx context.Context, videoID string, tags []string) error {
	args := m.Called(ctx, videoID, tags)
	return args.Error(0)
}

// ChecklistRepository is a mock for repository.ChecklistRepository.
type ChecklistRepository struct {
	mock.Mock
}

func (m *ChecklistRepository) Create(ctx context.Context, cl *delivery.Checklist) error {
	args := m.Called(ctx, cl)
	return args.Error(0)
}

func (m *ChecklistRepository) Get(ctx context.Context, projectID string) (*delivery.Checklist, error) {
	args := m.Called(ctx, projectID)
	if cl, ok := args.Get(0).(*delivery.Checklist); ok {
		return cl, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChecklistRepository) Update(ctx context.Context, cl *delivery.Checklist) error {
	args := m.Called(ctx, cl)
	return args.Error(0)
}

func (m *ChecklistRepository) List(ctx context.Context) ([]delivery.Checklist, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]delivery.Checklist); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChecklistRepository) AddPackage(ctx context.Context, projectID string, pkg *delivery.Package) error {
	args := m.Called(ctx, projectID, pkg)
	return args.Error(0)
}

func (m *ChecklistRepository) UpdatePackage(ctx context.Context, projectID string, pkg *delivery.Package) error {
	args := m.Called(ctx, projectID, pkg)
	return args.Error(0)
}

// TagRepository is a mock for repository.TagRepository.
type TagRepository struct {
	mock.Mock
}

func (m *TagRepository) Upsert(ctx context.Context, t *tag.Tag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TagRepository) GetByName(ctx context.Context, name string) (*tag.Tag, error) {
	args := m.Called(ctx, name)
	if tg, ok := args.Get(0).(*tag.Tag); ok {
		return tg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TagRepository) List(ctx context.Context) ([]tag.Tag, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]tag.Tag); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TagRepository) IncrementUsage(ctx context.Context, name string, delta int) error {
	args := m.Called(ctx, name, delta)
	return args.Error(0)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

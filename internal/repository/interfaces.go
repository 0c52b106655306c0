package repository

import (
	"context"

	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/tag"
	"github.com/BVTRay/vioflow/internal/domain/video"
)

// ProjectRepository manages project persistence
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	Update(ctx context.Context, proj *project.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]project.Project, error)
	ListSummaries(ctx context.Context) ([]project.Summary, error)
}

// VideoRepository manages video persistence
type VideoRepository interface {
	Create(ctx context.Context, v *video.Video) error
	Get(ctx context.Context, id string) (*video.Video, error)
	Update(ctx context.Context, v *video.Video) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]video.Video, error)
	List(ctx context.Context) ([]video.Video, error)
	SetTags(ctx context.Context, videoID string, tags []string) error
}

// ChecklistRepository manages delivery checklist persistence
type ChecklistRepository interface {
	Create(ctx context.Context, cl *delivery.Checklist) error
	Get(ctx context.Context, projectID string) (*delivery.Checklist, error)
	Update(ctx context.Context, cl *delivery.Checklist) error
	List(ctx context.Context) ([]delivery.Checklist, error)
	AddPackage(ctx context.Context, projectID string, pkg *delivery.Package) error
	UpdatePackage(ctx context.Context, projectID string, pkg *delivery.Package) error
}

// TagRepository manages tag persistence
type TagRepository interface {
	Upsert(ctx context.Context, t *tag.Tag) error
	GetByName(ctx context.Context, name string) (*tag.Tag, error)
	List(ctx context.Context) ([]tag.Tag, error)
	IncrementUsage(ctx context.Context, name string, delta int) error
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
	List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

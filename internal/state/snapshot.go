package state

import (
	"time"

	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/tag"
	"github.com/BVTRay/vioflow/internal/domain/upload"
	"github.com/BVTRay/vioflow/internal/domain/video"
)

// ExplorerDepth is the derived level of the file-explorer hierarchy.
type ExplorerDepth string

const (
	DepthGroups   ExplorerDepth = "groups"
	DepthProjects ExplorerDepth = "projects"
	DepthVideos   ExplorerDepth = "videos"
)

// Notification is a message surfaced to the operator console. Delivery
// mechanics (toasts) live outside the core; the snapshot only holds them.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// BrowseState selects between the two browsing surfaces. RetrievalVisible
// true means search-and-filter mode; false means the hierarchical
// group -> project -> video explorer. Explorer depth is derived from the
// current selection, never stored.
type BrowseState struct {
	RetrievalVisible bool   `json:"retrieval_visible"`
	SelectedGroup    string `json:"selected_group,omitempty"`
}

// Snapshot is the complete, immutable view of the workflow state. Every
// applied event produces a structurally new snapshot; readers holding an old
// one never observe partial mutation.
type Snapshot struct {
	Version int64 `json:"version"`

	Projects   []project.Project             `json:"projects"`
	Videos     []video.Video                 `json:"videos"`
	Checklists map[string]delivery.Checklist `json:"checklists"`
	Tags       []tag.Tag                     `json:"tags"`

	Uploads       []upload.Task  `json:"uploads,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`

	SelectedProjectID string `json:"selected_project_id,omitempty"`
	SelectedVideoID   string `json:"selected_video_id,omitempty"`

	Workbench WorkbenchState `json:"workbench"`
	Browse    BrowseState    `json:"browse"`
	Filter    tag.Filter     `json:"filter"`
}

// NewSnapshot returns an empty snapshot in retrieval mode.
func NewSnapshot() Snapshot {
	return Snapshot{
		Checklists: map[string]delivery.Checklist{},
		Workbench:  WorkbenchState{View: ViewNone{}},
		Browse:     BrowseState{RetrievalVisible: true},
		Filter:     tag.NewFilter(),
	}
}

// Project returns the project with the given id.
func (s Snapshot) Project(id string) (project.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return project.Project{}, false
}

// Video returns the video with the given id.
func (s Snapshot) Video(id string) (video.Video, bool) {
	for _, v := range s.Videos {
		if v.ID == id {
			return v, true
		}
	}
	return video.Video{}, false
}

// ProjectVideos returns the videos belonging to one project.
func (s Snapshot) ProjectVideos(projectID string) []video.Video {
	var out []video.Video
	for _, v := range s.Videos {
		if v.ProjectID == projectID {
			out = append(out, v)
		}
	}
	return out
}

// Checklist returns the delivery checklist for a project, if one exists.
func (s Snapshot) Checklist(projectID string) (delivery.Checklist, bool) {
	cl, ok := s.Checklists[projectID]
	return cl, ok
}

// Upload looks an in-flight upload task up by id.
func (s Snapshot) Upload(id string) (upload.Task, bool) {
	for _, t := range s.Uploads {
		if t.ID == id {
			return t, true
		}
	}
	return upload.Task{}, false
}

// ReadyForDelivery recomputes the delivery gate for a project.
func (s Snapshot) ReadyForDelivery(projectID string) bool {
	cl, ok := s.Checklists[projectID]
	if !ok {
		return false
	}
	return delivery.Ready(&cl, s.ProjectVideos(projectID))
}

// NextVersion previews the version number the next upload into a series
// would take.
func (s Snapshot) NextVersion(projectID, baseName string) int {
	return video.NextVersion(s.ProjectVideos(projectID), baseName)
}

// ExplorerDepth derives the explorer level from the current selection:
// a selected project forces videos, else a selected group forces projects,
// else groups.
func (s Snapshot) ExplorerDepth() ExplorerDepth {
	if s.SelectedProjectID != "" {
		return DepthVideos
	}
	if s.Browse.SelectedGroup != "" {
		return DepthProjects
	}
	return DepthGroups
}

// FilteredProjects returns the projects matching the active tag filter.
// Projects match through the union of their videos' tags.
func (s Snapshot) FilteredProjects() []project.Project {
	if !s.Filter.Active() {
		return s.Projects
	}
	var out []project.Project
	for _, p := range s.Projects {
		var tags []string
		for _, v := range s.ProjectVideos(p.ID) {
			tags = append(tags, v.Tags...)
		}
		if s.Filter.Matches(tags) {
			out = append(out, p)
		}
	}
	return out
}

// FilteredVideos returns the videos matching the active tag filter.
func (s Snapshot) FilteredVideos() []video.Video {
	if !s.Filter.Active() {
		return s.Videos
	}
	var out []video.Video
	for _, v := range s.Videos {
		if s.Filter.Matches(v.Tags) {
			out = append(out, v)
		}
	}
	return out
}

func (s Snapshot) cloneProjects() []project.Project {
	out := make([]project.Project, len(s.Projects))
	copy(out, s.Projects)
	return out
}

func (s Snapshot) cloneVideos() []video.Video {
	out := make([]video.Video, len(s.Videos))
	copy(out, s.Videos)
	return out
}

func (s Snapshot) cloneChecklists() map[string]delivery.Checklist {
	out := make(map[string]delivery.Checklist, len(s.Checklists))
	for k, v := range s.Checklists {
		out[k] = v
	}
	return out
}

func (s Snapshot) cloneTags() []tag.Tag {
	out := make([]tag.Tag, len(s.Tags))
	copy(out, s.Tags)
	return out
}

func (s Snapshot) cloneUploads() []upload.Task {
	out := make([]upload.Task, len(s.Uploads))
	copy(out, s.Uploads)
	return out
}

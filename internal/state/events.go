package state

import (
	"time"

	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/tag"
	"github.com/BVTRay/vioflow/internal/domain/upload"
	"github.com/BVTRay/vioflow/internal/domain/video"
)

// Event is the sealed vocabulary the store accepts. Collaborators construct
// an event and hand it to Store.Apply; events the transition function does
// not recognize leave the snapshot unchanged.
type Event interface {
	isEvent()
}

// Selection and browsing events.

// SelectProject selects a project; an empty id clears the selection.
type SelectProject struct{ ID string }

// SelectVideo selects a video; an empty id clears the selection.
type SelectVideo struct{ ID string }

// SelectGroup picks an explorer group; an empty name clears it.
type SelectGroup struct{ Name string }

// ExplorerBack steps the explorer up one level.
type ExplorerBack struct{}

// ToggleRetrievalPanel flips between retrieval and explorer mode.
type ToggleRetrievalPanel struct{}

// SetGroupTag enters single-select tag filtering; empty name clears it.
type SetGroupTag struct{ Name string }

// ToggleGroupTagMultiSelect enters multi-select tag filtering and toggles
// one tag's membership.
type ToggleGroupTagMultiSelect struct{ Name string }

// Workbench events.

// OpenUpload opens the upload view.
type OpenUpload struct {
	ProjectID  string
	VideoID    string
	Provenance string
	Quick      bool
}

// OpenNewProject opens the project creation view.
type OpenNewProject struct{ PendingGroup string }

// OpenProjectSettings opens the settings view for one project.
type OpenProjectSettings struct{ ProjectID string }

// ShowVersionHistory opens the version history view for one series.
type ShowVersionHistory struct {
	BaseName  string
	ProjectID string
	Mode      DisplayMode
}

// HideVersionHistory closes version history, falling back to a pending
// NewProject/ProjectSettings view when one was stashed.
type HideVersionHistory struct{}

// CloseWorkbench closes the whole console surface.
type CloseWorkbench struct{}

// Project data events.

// AddProject inserts a server-assigned project record.
type AddProject struct{ Project project.Project }

// UpdateProject replaces a project's mutable fields.
type UpdateProject struct{ Project project.Project }

// RemoveProject evicts a project (and its videos and checklist) after the
// transport collaborator confirmed deletion.
type RemoveProject struct{ ID string }

// FinalizeProject advances a project to finalized, creating its checklist
// on first finalize. Idempotent for already-finalized projects.
type FinalizeProject struct {
	ID string
	At time.Time
}

// CompleteDelivery advances a finalized, ready project to delivered.
// Refused (no-op) when the readiness gate fails.
type CompleteDelivery struct {
	ID string
	At time.Time
}

// ArchiveProject moves a project to the terminal archived branch.
type ArchiveProject struct{ ID string }

// Video data events.

// AddVideo inserts a video created by an upload completion.
type AddVideo struct{ Video video.Video }

// UpdateVideo replaces a video's mutable fields.
type UpdateVideo struct{ Video video.Video }

// RemoveVideo evicts a video after the collaborator confirmed deletion.
type RemoveVideo struct{ ID string }

// ToggleCaseFile flips the case-file flag. Clearing it on a main-delivery
// video also clears main delivery, preserving the implication.
type ToggleCaseFile struct{ VideoID string }

// ToggleMainDelivery flips the main-delivery flag; setting it also sets
// case-file since main delivery implies case file.
type ToggleMainDelivery struct{ VideoID string }

// SetVideoStatus updates the review status.
type SetVideoStatus struct {
	VideoID string
	Status  video.Status
}

// UpdateVideoTags replaces a video's tag list.
type UpdateVideoTags struct {
	VideoID string
	Tags    []string
}

// Checklist events.

// UpdateChecklistField sets one readiness flag. Unknown fields and projects
// without a checklist are no-ops.
type UpdateChecklistField struct {
	ProjectID string
	Field     delivery.Field
	Value     bool
}

// UpdateChecklistNote replaces the free-text note.
type UpdateChecklistNote struct {
	ProjectID string
	Note      string
}

// SetDeliveryInfo sets the client-facing delivery title and description.
type SetDeliveryInfo struct {
	ProjectID   string
	Title       string
	Description string
}

// AddDeliveryPackage appends a generated delivery link.
type AddDeliveryPackage struct {
	ProjectID string
	Package   delivery.Package
}

// RecordDownload bumps a package's download counter.
type RecordDownload struct {
	ProjectID string
	PackageID string
}

// SetPackageActive enables or disables a delivery link.
type SetPackageActive struct {
	ProjectID string
	PackageID string
	Active    bool
}

// Tag events.

// UpsertTag inserts or replaces a tag record by name.
type UpsertTag struct{ Tag tag.Tag }

// Upload events.

// AddUploadTask registers an in-flight transfer.
type AddUploadTask struct{ Task upload.Task }

// UpdateUploadProgress sets a task's progress percentage (clamped 0..100).
type UpdateUploadProgress struct {
	ID       string
	Progress int
}

// CompleteUpload removes the task and registers the created video.
type CompleteUpload struct {
	ID    string
	Video video.Video
}

// FailUpload marks the task errored with a message.
type FailUpload struct {
	ID      string
	Message string
}

// CancelUpload evicts a task whose transfer was aborted.
type CancelUpload struct{ ID string }

// Notification events.

// AddNotification appends a console notification.
type AddNotification struct{ Notification Notification }

// MarkNotificationRead flags a notification as read.
type MarkNotificationRead struct{ ID string }

func (SelectProject) isEvent()             {}
func (SelectVideo) isEvent()               {}
func (SelectGroup) isEvent()               {}
func (ExplorerBack) isEvent()              {}
func (ToggleRetrievalPanel) isEvent()      {}
func (SetGroupTag) isEvent()               {}
func (ToggleGroupTagMultiSelect) isEvent() {}
func (OpenUpload) isEvent()                {}
func (OpenNewProject) isEvent()            {}
func (OpenProjectSettings) isEvent()       {}
func (ShowVersionHistory) isEvent()        {}
func (HideVersionHistory) isEvent()        {}
func (CloseWorkbench) isEvent()            {}
func (AddProject) isEvent()                {}
func (UpdateProject) isEvent()             {}
func (RemoveProject) isEvent()             {}
func (FinalizeProject) isEvent()           {}
func (CompleteDelivery) isEvent()          {}
func (ArchiveProject) isEvent()            {}
func (AddVideo) isEvent()                  {}
func (UpdateVideo) isEvent()               {}
func (RemoveVideo) isEvent()               {}
func (ToggleCaseFile) isEvent()            {}
func (ToggleMainDelivery) isEvent()        {}
func (SetVideoStatus) isEvent()            {}
func (UpdateVideoTags) isEvent()           {}
func (UpdateChecklistField) isEvent()      {}
func (UpdateChecklistNote) isEvent()       {}
func (SetDeliveryInfo) isEvent()           {}
func (AddDeliveryPackage) isEvent()        {}
func (RecordDownload) isEvent()            {}
func (SetPackageActive) isEvent()          {}
func (UpsertTag) isEvent()                 {}
func (AddUploadTask) isEvent()             {}
func (UpdateUploadProgress) isEvent()      {}
func (CompleteUpload) isEvent()            {}
func (FailUpload) isEvent()                {}
func (CancelUpload) isEvent()              {}
func (AddNotification) isEvent()           {}
func (MarkNotificationRead) isEvent()      {}

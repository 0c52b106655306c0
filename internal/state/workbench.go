package state

// DisplayMode selects how the version history view lays out its entries.
type DisplayMode string

const (
	DisplayList DisplayMode = "list"
	DisplayGrid DisplayMode = "grid"
)

// WorkbenchView is the sealed set of console views. Modeling the view as a
// single variant makes mutual exclusion structural: holding one view means
// the other three carry no state at all.
type WorkbenchView interface {
	isWorkbenchView()
}

// ViewNone means the workbench has no contextual view.
type ViewNone struct{}

// ViewUpload is the upload console, optionally targeting an existing video
// for a new version. Provenance records which surface opened it.
type ViewUpload struct {
	ProjectID  string `json:"project_id,omitempty"`
	VideoID    string `json:"video_id,omitempty"`
	Provenance string `json:"provenance,omitempty"`
}

// ViewNewProject is the project creation form.
type ViewNewProject struct {
	PendingGroup string `json:"pending_group,omitempty"`
}

// ViewProjectSettings edits one project's settings.
type ViewProjectSettings struct {
	ProjectID string `json:"project_id"`
}

// ViewVersionHistory browses one series' versions.
type ViewVersionHistory struct {
	BaseName  string      `json:"base_name"`
	ProjectID string      `json:"project_id"`
	Mode      DisplayMode `json:"mode"`
}

func (ViewNone) isWorkbenchView()            {}
func (ViewUpload) isWorkbenchView()          {}
func (ViewNewProject) isWorkbenchView()      {}
func (ViewProjectSettings) isWorkbenchView() {}
func (ViewVersionHistory) isWorkbenchView()  {}

// WorkbenchState is the operator console state. Pending holds the
// NewProject or ProjectSettings view that version history was opened on top
// of, so HideVersionHistory can fall back to it instead of closing the
// workbench. That fallback is the one stateful exception to "closing closes
// everything".
type WorkbenchState struct {
	View        WorkbenchView `json:"view"`
	Visible     bool          `json:"visible"`
	QuickUpload bool          `json:"quick_upload,omitempty"`
	Pending     WorkbenchView `json:"pending,omitempty"`
}

// CurrentView names the active view for consumers that switch on a string.
func (w WorkbenchState) CurrentView() string {
	switch w.View.(type) {
	case ViewUpload:
		return "upload"
	case ViewNewProject:
		return "newProject"
	case ViewProjectSettings:
		return "projectSettings"
	case ViewVersionHistory:
		return "versionHistory"
	default:
		return "none"
	}
}

func closedWorkbench() WorkbenchState {
	return WorkbenchState{View: ViewNone{}}
}

// openView replaces the workbench view, forcing visibility and dropping any
// pending fallback. Setting the single View field is what clears the other
// views' context.
func openView(w WorkbenchState, view WorkbenchView) WorkbenchState {
	w.View = view
	w.Visible = true
	w.Pending = nil
	return w
}

// showVersionHistory opens the version history view. An active NewProject or
// ProjectSettings view is stashed as the fallback target.
func showVersionHistory(w WorkbenchState, view ViewVersionHistory) WorkbenchState {
	switch prev := w.View.(type) {
	case ViewNewProject:
		w.Pending = prev
	case ViewProjectSettings:
		w.Pending = prev
	default:
		w.Pending = nil
	}
	w.View = view
	w.Visible = true
	return w
}

// hideVersionHistory clears the version history view. With a pending
// NewProject/ProjectSettings view it falls back to that; otherwise the whole
// workbench closes. A no-op when version history isn't showing.
func hideVersionHistory(w WorkbenchState) WorkbenchState {
	if _, ok := w.View.(ViewVersionHistory); !ok {
		return w
	}
	if w.Pending != nil {
		w.View = w.Pending
		w.Pending = nil
		w.Visible = true
		return w
	}
	return closedWorkbench()
}

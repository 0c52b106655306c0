package state

import "github.com/BVTRay/vioflow/internal/domain/tag"

// Selection, explorer-mode, workbench, and tag-filter transitions.

func applySelectProject(s Snapshot, ev SelectProject) (Snapshot, bool) {
	if ev.ID != "" {
		if _, ok := s.Project(ev.ID); !ok {
			return s, false
		}
	}
	if s.SelectedProjectID == ev.ID {
		return s, false
	}
	s.SelectedProjectID = ev.ID
	s.SelectedVideoID = ""
	// A stale workbench context must not leak into the next opened view.
	if !s.Workbench.Visible {
		s.Workbench = closedWorkbench()
	}
	return s, true
}

func applySelectVideo(s Snapshot, ev SelectVideo) (Snapshot, bool) {
	if ev.ID != "" {
		if _, ok := s.Video(ev.ID); !ok {
			return s, false
		}
	}
	if s.SelectedVideoID == ev.ID {
		return s, false
	}
	s.SelectedVideoID = ev.ID
	if !s.Workbench.Visible {
		s.Workbench = closedWorkbench()
	}
	return s, true
}

func applySelectGroup(s Snapshot, ev SelectGroup) (Snapshot, bool) {
	if s.Browse.SelectedGroup == ev.Name && s.SelectedProjectID == "" {
		return s, false
	}
	s.Browse.SelectedGroup = ev.Name
	// Depth is derived from selection; picking a group lands on its
	// project listing.
	s.SelectedProjectID = ""
	s.SelectedVideoID = ""
	return s, true
}

func applyExplorerBack(s Snapshot) (Snapshot, bool) {
	switch s.ExplorerDepth() {
	case DepthVideos:
		s.SelectedProjectID = ""
		s.SelectedVideoID = ""
		return s, true
	case DepthProjects:
		s.Browse.SelectedGroup = ""
		return s, true
	default:
		return s, false
	}
}

func applyToggleRetrievalPanel(s Snapshot) (Snapshot, bool) {
	s.Browse.RetrievalVisible = !s.Browse.RetrievalVisible
	if !s.Browse.RetrievalVisible {
		// Entering explorer mode restarts navigation at the group level.
		s.SelectedProjectID = ""
		s.SelectedVideoID = ""
		s.Browse.SelectedGroup = ""
		if !hasCreateIntent(s.Workbench) {
			s.Workbench = closedWorkbench()
		}
	}
	return s, true
}

func hasCreateIntent(w WorkbenchState) bool {
	if _, ok := w.View.(ViewNewProject); ok {
		return true
	}
	_, pending := w.Pending.(ViewNewProject)
	return pending
}

func applySetGroupTag(s Snapshot, ev SetGroupTag) (Snapshot, bool) {
	if s.Filter.Mode == tag.ModeSingle && s.Filter.Selected == ev.Name {
		return s, false
	}
	s.Filter = s.Filter.WithSingle(ev.Name)
	return s, true
}

func applyToggleGroupTagMultiSelect(s Snapshot, ev ToggleGroupTagMultiSelect) (Snapshot, bool) {
	if ev.Name == "" {
		return s, false
	}
	s.Filter = s.Filter.WithToggledMulti(ev.Name)
	return s, true
}

func applyOpenUpload(s Snapshot, ev OpenUpload) (Snapshot, bool) {
	s.Workbench = openView(s.Workbench, ViewUpload{
		ProjectID:  ev.ProjectID,
		VideoID:    ev.VideoID,
		Provenance: ev.Provenance,
	})
	s.Workbench.QuickUpload = ev.Quick
	return s, true
}

func applyOpenNewProject(s Snapshot, ev OpenNewProject) (Snapshot, bool) {
	s.Workbench = openView(s.Workbench, ViewNewProject{PendingGroup: ev.PendingGroup})
	return s, true
}

func applyOpenProjectSettings(s Snapshot, ev OpenProjectSettings) (Snapshot, bool) {
	if _, ok := s.Project(ev.ProjectID); !ok {
		return s, false
	}
	s.Workbench = openView(s.Workbench, ViewProjectSettings{ProjectID: ev.ProjectID})
	return s, true
}

func applyShowVersionHistory(s Snapshot, ev ShowVersionHistory) (Snapshot, bool) {
	mode := ev.Mode
	if mode == "" {
		mode = DisplayList
	}
	s.Workbench = showVersionHistory(s.Workbench, ViewVersionHistory{
		BaseName:  ev.BaseName,
		ProjectID: ev.ProjectID,
		Mode:      mode,
	})
	return s, true
}

func applyHideVersionHistory(s Snapshot) (Snapshot, bool) {
	next := hideVersionHistory(s.Workbench)
	if next == s.Workbench {
		return s, false
	}
	s.Workbench = next
	return s, true
}

func applyCloseWorkbench(s Snapshot) (Snapshot, bool) {
	if !s.Workbench.Visible && s.Workbench.CurrentView() == "none" && !s.Workbench.QuickUpload {
		return s, false
	}
	s.Workbench = closedWorkbench()
	return s, true
}

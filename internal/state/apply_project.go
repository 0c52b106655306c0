package state

import (
	"time"

	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/video"
)

// Project lifecycle transitions. Transitions on unknown projects and
// transitions refused by the lifecycle rules are silent no-ops.

func applyAddProject(s Snapshot, ev AddProject) (Snapshot, bool) {
	p := ev.Project
	if p.ID == "" {
		return s, false
	}
	if _, exists := s.Project(p.ID); exists {
		return s, false
	}
	if p.Status == "" {
		p.Status = project.StatusActive
	}
	s.Projects = append(s.cloneProjects(), p)
	return s, true
}

func applyUpdateProject(s Snapshot, ev UpdateProject) (Snapshot, bool) {
	idx, current, ok := findProject(s.Projects, ev.Project.ID)
	if !ok {
		return s, false
	}
	updated := ev.Project
	// Settings edits never move the lifecycle; those fields only change
	// through their dedicated transitions.
	updated.Status = current.Status
	updated.CreatedAt = current.CreatedAt
	updated.FinalizedAt = current.FinalizedAt
	updated.DeliveredAt = current.DeliveredAt
	updated.LastActivity = time.Now()

	projects := s.cloneProjects()
	projects[idx] = updated
	s.Projects = projects
	return s, true
}

func applyRemoveProject(s Snapshot, ev RemoveProject) (Snapshot, bool) {
	_, _, ok := findProject(s.Projects, ev.ID)
	if !ok {
		return s, false
	}

	var projects []project.Project
	for _, p := range s.Projects {
		if p.ID != ev.ID {
			projects = append(projects, p)
		}
	}
	s.Projects = projects

	var kept []video.Video
	for _, v := range s.Videos {
		if v.ProjectID != ev.ID {
			kept = append(kept, v)
		}
	}
	s.Videos = kept

	if _, ok := s.Checklists[ev.ID]; ok {
		checklists := s.cloneChecklists()
		delete(checklists, ev.ID)
		s.Checklists = checklists
	}

	if s.SelectedProjectID == ev.ID {
		s.SelectedProjectID = ""
		s.SelectedVideoID = ""
	}
	return s, true
}

func applyFinalizeProject(s Snapshot, ev FinalizeProject) (Snapshot, bool) {
	idx, current, ok := findProject(s.Projects, ev.ID)
	if !ok {
		return s, false
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	changed := false
	if project.CanFinalize(current.Status) {
		updated := current
		updated.Status = project.StatusFinalized
		updated.FinalizedAt = &at
		updated.LastActivity = at
		projects := s.cloneProjects()
		projects[idx] = updated
		s.Projects = projects
		current = updated
		changed = true
	}

	// The checklist is created exactly once; re-finalizing never duplicates
	// or resets it.
	if current.Status == project.StatusFinalized {
		if _, exists := s.Checklists[ev.ID]; !exists {
			checklists := s.cloneChecklists()
			checklists[ev.ID] = delivery.New(ev.ID, at)
			s.Checklists = checklists
			changed = true
		}
	}

	return s, changed
}

func applyCompleteDelivery(s Snapshot, ev CompleteDelivery) (Snapshot, bool) {
	idx, current, ok := findProject(s.Projects, ev.ID)
	if !ok {
		return s, false
	}
	if !project.CanDeliver(current.Status) {
		return s, false
	}
	if !s.ReadyForDelivery(ev.ID) {
		return s, false
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	updated := current
	updated.Status = project.StatusDelivered
	updated.DeliveredAt = &at
	updated.LastActivity = at
	projects := s.cloneProjects()
	projects[idx] = updated
	s.Projects = projects
	return s, true
}

func applyArchiveProject(s Snapshot, ev ArchiveProject) (Snapshot, bool) {
	idx, current, ok := findProject(s.Projects, ev.ID)
	if !ok {
		return s, false
	}
	if err := project.ValidateTransition(current.Status, project.StatusArchived); err != nil {
		return s, false
	}

	updated := current
	updated.Status = project.StatusArchived
	updated.LastActivity = time.Now()
	projects := s.cloneProjects()
	projects[idx] = updated
	s.Projects = projects
	return s, true
}

func findProject(projects []project.Project, id string) (int, project.Project, bool) {
	if id == "" {
		return 0, project.Project{}, false
	}
	for i, p := range projects {
		if p.ID == id {
			return i, p, true
		}
	}
	return 0, project.Project{}, false
}

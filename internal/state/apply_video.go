package state

import (
	"time"

	"github.com/BVTRay/vioflow/internal/domain/video"
)

// Video transitions. Events referencing unknown videos are silent no-ops;
// deletes only evict (soft-delete semantics live with the transport
// collaborator).

func applyAddVideo(s Snapshot, v video.Video) (Snapshot, bool) {
	if v.ID == "" {
		return s, false
	}
	if _, exists := s.Video(v.ID); exists {
		return s, false
	}
	if _, ok := s.Project(v.ProjectID); !ok {
		return s, false
	}
	if v.BaseName == "" {
		v.BaseName = video.StripVersionPrefix(v.Name)
	}
	if v.Version <= 0 {
		v.Version = s.NextVersion(v.ProjectID, v.BaseName)
	}
	if v.Status == "" {
		v.Status = video.StatusInitial
	}
	if v.IsMainDelivery {
		v.IsCaseFile = true
	}
	s.Videos = append(s.cloneVideos(), v)
	s = touchProject(s, v.ProjectID)
	return s, true
}

func applyUpdateVideo(s Snapshot, ev UpdateVideo) (Snapshot, bool) {
	idx, current, ok := findVideo(s.Videos, ev.Video.ID)
	if !ok {
		return s, false
	}
	updated := ev.Video
	updated.ProjectID = current.ProjectID
	updated.UploadedAt = current.UploadedAt
	if updated.Version <= 0 {
		updated.Version = current.Version
	}
	if updated.IsMainDelivery {
		updated.IsCaseFile = true
	}
	videos := s.cloneVideos()
	videos[idx] = updated
	s.Videos = videos
	return s, true
}

func applyRemoveVideo(s Snapshot, ev RemoveVideo) (Snapshot, bool) {
	_, _, ok := findVideo(s.Videos, ev.ID)
	if !ok {
		return s, false
	}
	var kept []video.Video
	for _, v := range s.Videos {
		if v.ID != ev.ID {
			kept = append(kept, v)
		}
	}
	s.Videos = kept
	if s.SelectedVideoID == ev.ID {
		s.SelectedVideoID = ""
	}
	return s, true
}

func applyToggleCaseFile(s Snapshot, ev ToggleCaseFile) (Snapshot, bool) {
	idx, current, ok := findVideo(s.Videos, ev.VideoID)
	if !ok {
		return s, false
	}
	current.IsCaseFile = !current.IsCaseFile
	if !current.IsCaseFile {
		// Main delivery implies case file, so clearing case file also
		// drops main delivery.
		current.IsMainDelivery = false
	}
	videos := s.cloneVideos()
	videos[idx] = current
	s.Videos = videos
	return s, true
}

func applyToggleMainDelivery(s Snapshot, ev ToggleMainDelivery) (Snapshot, bool) {
	idx, current, ok := findVideo(s.Videos, ev.VideoID)
	if !ok {
		return s, false
	}
	current.IsMainDelivery = !current.IsMainDelivery
	if current.IsMainDelivery {
		current.IsCaseFile = true
	}
	videos := s.cloneVideos()
	videos[idx] = current
	s.Videos = videos
	return s, true
}

func applySetVideoStatus(s Snapshot, ev SetVideoStatus) (Snapshot, bool) {
	switch ev.Status {
	case video.StatusInitial, video.StatusAnnotated, video.StatusApproved:
	default:
		return s, false
	}
	idx, current, ok := findVideo(s.Videos, ev.VideoID)
	if !ok || current.Status == ev.Status {
		return s, false
	}
	current.Status = ev.Status
	videos := s.cloneVideos()
	videos[idx] = current
	s.Videos = videos
	return s, true
}

func applyUpdateVideoTags(s Snapshot, ev UpdateVideoTags) (Snapshot, bool) {
	idx, current, ok := findVideo(s.Videos, ev.VideoID)
	if !ok {
		return s, false
	}
	tags := make([]string, len(ev.Tags))
	copy(tags, ev.Tags)
	current.Tags = tags
	videos := s.cloneVideos()
	videos[idx] = current
	s.Videos = videos
	return s, true
}

func findVideo(videos []video.Video, id string) (int, video.Video, bool) {
	if id == "" {
		return 0, video.Video{}, false
	}
	for i, v := range videos {
		if v.ID == id {
			return i, v, true
		}
	}
	return 0, video.Video{}, false
}

func touchProject(s Snapshot, projectID string) Snapshot {
	idx, current, ok := findProject(s.Projects, projectID)
	if !ok {
		return s
	}
	current.LastActivity = time.Now()
	projects := s.cloneProjects()
	projects[idx] = current
	s.Projects = projects
	return s
}

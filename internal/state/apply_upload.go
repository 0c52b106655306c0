package state

import "github.com/BVTRay/vioflow/internal/domain/upload"

// Upload-task and notification transitions. The transfer itself happens in a
// collaborator; the store only tracks the discrete progress events it emits.

func applyAddUploadTask(s Snapshot, ev AddUploadTask) (Snapshot, bool) {
	t := ev.Task
	if t.ID == "" {
		return s, false
	}
	for _, existing := range s.Uploads {
		if existing.ID == t.ID {
			return s, false
		}
	}
	if t.Status == "" {
		t.Status = upload.StatusUploading
	}
	s.Uploads = append(s.cloneUploads(), t)
	return s, true
}

func applyUpdateUploadProgress(s Snapshot, ev UpdateUploadProgress) (Snapshot, bool) {
	idx, t, ok := findUpload(s.Uploads, ev.ID)
	if !ok || t.Status != upload.StatusUploading {
		return s, false
	}
	progress := ev.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if t.Progress == progress {
		return s, false
	}
	t.Progress = progress
	uploads := s.cloneUploads()
	uploads[idx] = t
	s.Uploads = uploads
	return s, true
}

func applyCompleteUpload(s Snapshot, ev CompleteUpload) (Snapshot, bool) {
	_, _, ok := findUpload(s.Uploads, ev.ID)
	if !ok {
		return s, false
	}
	s = removeUpload(s, ev.ID)
	if next, added := applyAddVideo(s, ev.Video); added {
		s = next
	}
	return s, true
}

func applyFailUpload(s Snapshot, ev FailUpload) (Snapshot, bool) {
	idx, t, ok := findUpload(s.Uploads, ev.ID)
	if !ok || t.Status == upload.StatusError {
		return s, false
	}
	t.Status = upload.StatusError
	t.Error = ev.Message
	uploads := s.cloneUploads()
	uploads[idx] = t
	s.Uploads = uploads
	return s, true
}

func applyCancelUpload(s Snapshot, ev CancelUpload) (Snapshot, bool) {
	_, _, ok := findUpload(s.Uploads, ev.ID)
	if !ok {
		return s, false
	}
	return removeUpload(s, ev.ID), true
}

func applyAddNotification(s Snapshot, ev AddNotification) (Snapshot, bool) {
	n := ev.Notification
	if n.ID == "" {
		return s, false
	}
	for _, existing := range s.Notifications {
		if existing.ID == n.ID {
			return s, false
		}
	}
	notifications := make([]Notification, len(s.Notifications), len(s.Notifications)+1)
	copy(notifications, s.Notifications)
	s.Notifications = append(notifications, n)
	return s, true
}

func applyMarkNotificationRead(s Snapshot, ev MarkNotificationRead) (Snapshot, bool) {
	for i, n := range s.Notifications {
		if n.ID != ev.ID || n.Read {
			continue
		}
		notifications := make([]Notification, len(s.Notifications))
		copy(notifications, s.Notifications)
		notifications[i].Read = true
		s.Notifications = notifications
		return s, true
	}
	return s, false
}

func findUpload(uploads []upload.Task, id string) (int, upload.Task, bool) {
	if id == "" {
		return 0, upload.Task{}, false
	}
	for i, t := range uploads {
		if t.ID == id {
			return i, t, true
		}
	}
	return 0, upload.Task{}, false
}

func removeUpload(s Snapshot, id string) Snapshot {
	var kept []upload.Task
	for _, t := range s.Uploads {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.Uploads = kept
	return s
}

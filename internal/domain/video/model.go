package video

import "time"

// MediaType distinguishes the kinds of assets a project holds.
type MediaType string

const (
	TypeVideo MediaType = "video"
	TypeImage MediaType = "image"
	TypeAudio MediaType = "audio"
)

// Status represents the review state of a video.
type Status string

const (
	StatusInitial   Status = "initial"
	StatusAnnotated Status = "annotated"
	StatusApproved  Status = "approved"
)

// Video represents one uploaded version of a project asset.
//
// Videos sharing a (ProjectID, BaseName) pair form a version series; Version
// numbers within a series are distinct and the entry with the highest version
// is the series representative.
type Video struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"project_id"`
	Name             string    `json:"name"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	BaseName         string    `json:"base_name"`
	Type             MediaType `json:"type"`
	Version          int       `json:"version"`
	UploadedAt       time.Time `json:"uploaded_at"`
	IsCaseFile       bool      `json:"is_case_file"`
	IsMainDelivery   bool      `json:"is_main_delivery"`
	Status           Status    `json:"status"`
	ChangeLog        string    `json:"change_log,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
}

// HasTags reports whether the video carries at least one tag.
func (v Video) HasTags() bool {
	return len(v.Tags) > 0
}

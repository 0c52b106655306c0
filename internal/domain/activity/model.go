package activity

import "time"

// Type represents the kind of workflow event recorded in the audit trail.
type Type string

const (
	TypeProjectCreated      Type = "project_created"
	TypeProjectUpdated      Type = "project_updated"
	TypeProjectFinalized    Type = "project_finalized"
	TypeDeliveryCompleted   Type = "delivery_completed"
	TypeProjectArchived     Type = "project_archived"
	TypeProjectDeleted      Type = "project_deleted"
	TypeVideoUploaded       Type = "video_uploaded"
	TypeVideoUpdated        Type = "video_updated"
	TypeVideoDeleted        Type = "video_deleted"
	TypeChecklistUpdated    Type = "checklist_updated"
	TypeDeliveryLinkCreated Type = "delivery_link_created"
)

// Entry represents one event in the project audit trail.
type Entry struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id"`
	VideoID   *string   `json:"video_id,omitempty"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

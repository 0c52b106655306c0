package upload

// TaskStatus represents the transfer state of an upload.
type TaskStatus string

const (
	StatusUploading TaskStatus = "uploading"
	StatusCompleted TaskStatus = "completed"
	StatusError     TaskStatus = "error"
)

// Task tracks one in-flight transfer. Progress and terminal outcomes arrive
// from the transport collaborator as discrete events.
type Task struct {
	ID          string     `json:"id"`
	Filename    string     `json:"filename"`
	Progress    int        `json:"progress"`
	Status      TaskStatus `json:"status"`
	ProjectName string     `json:"project_name,omitempty"`
	Error       string     `json:"error,omitempty"`
}

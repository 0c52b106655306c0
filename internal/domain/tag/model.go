package tag

// Tag labels videos and projects. Names are unique across the system;
// entities reference tags by name, and a dangling reference simply never
// matches.
type Tag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Usage    int    `json:"usage"`
}

package project

import "time"

// Status represents the delivery workflow stage of a project.
type Status string

const (
	StatusActive    Status = "active"
	StatusFinalized Status = "finalized"
	StatusDelivered Status = "delivered"
	StatusArchived  Status = "archived"
)

// Project represents one client engagement moving through production.
//
// Names carry a year-month prefix by convention ("2406_Launch Film") but the
// core treats name, client and leads as free text.
type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Client       string     `json:"client,omitempty"`
	Producer     string     `json:"producer,omitempty"`
	Director     string     `json:"director,omitempty"`
	Group        string     `json:"group,omitempty"`
	Status       Status     `json:"status"`
	TeamMembers  []string   `json:"team_members,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActivity time.Time  `json:"last_activity"`
	FinalizedAt  *time.Time `json:"finalized_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
}

// Summary is a lightweight representation for listing.
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Client       string    `json:"client,omitempty"`
	Group        string    `json:"group,omitempty"`
	Status       Status    `json:"status"`
	VideoCount   int       `json:"video_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

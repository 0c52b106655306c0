package delivery

import "time"

// Field names one of the checklist's readiness flags.
type Field string

const (
	FieldCleanFeed       Field = "clean_feed"
	FieldMusicLicense    Field = "music_license"
	FieldMetadata        Field = "metadata"
	FieldTechReview      Field = "tech_review"
	FieldCopyrightCheck  Field = "copyright_check"
	FieldScript          Field = "script"
	FieldCopyrightFiles  Field = "copyright_files"
	FieldMultiResolution Field = "multi_resolution"
)

// Fields lists every checklist flag in display order.
func Fields() []Field {
	return []Field{
		FieldCleanFeed,
		FieldMusicLicense,
		FieldMetadata,
		FieldTechReview,
		FieldCopyrightCheck,
		FieldScript,
		FieldCopyrightFiles,
		FieldMultiResolution,
	}
}

// Checklist gates a finalized project's release to the client. One exists per
// finalized project, created all-false when the project finalizes.
type Checklist struct {
	ProjectID       string    `json:"project_id"`
	CleanFeed       bool      `json:"clean_feed"`
	MusicLicense    bool      `json:"music_license"`
	Metadata        bool      `json:"metadata"`
	TechReview      bool      `json:"tech_review"`
	CopyrightCheck  bool      `json:"copyright_check"`
	Script          bool      `json:"script"`
	CopyrightFiles  bool      `json:"copyright_files"`
	MultiResolution bool      `json:"multi_resolution"`
	Note            string    `json:"note,omitempty"`
	Title           string    `json:"title,omitempty"`
	Description     string    `json:"description,omitempty"`
	Packages        []Package `json:"packages,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Package is a client-facing delivery link generated from a checklist.
type Package struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link"`
	FileIDs     []string  `json:"file_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Downloads   int       `json:"downloads"`
	Active      bool      `json:"active"`
}

// New returns an all-false checklist for a project.
func New(projectID string, now time.Time) Checklist {
	return Checklist{ProjectID: projectID, CreatedAt: now}
}

// Flag reads one readiness flag by field name; unknown fields read false.
func (c Checklist) Flag(f Field) bool {
	switch f {
	case FieldCleanFeed:
		return c.CleanFeed
	case FieldMusicLicense:
		return c.MusicLicense
	case FieldMetadata:
		return c.Metadata
	case FieldTechReview:
		return c.TechReview
	case FieldCopyrightCheck:
		return c.CopyrightCheck
	case FieldScript:
		return c.Script
	case FieldCopyrightFiles:
		return c.CopyrightFiles
	case FieldMultiResolution:
		return c.MultiResolution
	}
	return false
}

// WithFlag returns a copy of the checklist with one flag set. Unknown fields
// leave the checklist unchanged.
func (c Checklist) WithFlag(f Field, value bool) Checklist {
	switch f {
	case FieldCleanFeed:
		c.CleanFeed = value
	case FieldMusicLicense:
		c.MusicLicense = value
	case FieldMetadata:
		c.Metadata = value
	case FieldTechReview:
		c.TechReview = value
	case FieldCopyrightCheck:
		c.CopyrightCheck = value
	case FieldScript:
		c.Script = value
	case FieldCopyrightFiles:
		c.CopyrightFiles = value
	case FieldMultiResolution:
		c.MultiResolution = value
	}
	return c
}

// ValidField reports whether f names a known checklist flag.
func ValidField(f Field) bool {
	for _, known := range Fields() {
		if f == known {
			return true
		}
	}
	return false
}

package tag

// FilterMode selects between the two tag selection behaviors.
type FilterMode string

const (
	ModeSingle FilterMode = "single"
	ModeMulti  FilterMode = "multi"
)

// Filter holds the active tag selection. The two modes are mutually
// exclusive: entering one clears the other's selection.
type Filter struct {
	Mode     FilterMode `json:"mode"`
	Selected string     `json:"selected,omitempty"`
	Multi    []string   `json:"multi,omitempty"`
}

// NewFilter returns an empty single-select filter.
func NewFilter() Filter {
	return Filter{Mode: ModeSingle}
}

// WithSingle returns a filter in single-select mode with the given tag
// selected; an empty name clears the selection.
func (f Filter) WithSingle(name string) Filter {
	return Filter{Mode: ModeSingle, Selected: name}
}

// WithToggledMulti returns a filter in multi-select mode with the given tag
// toggled in or out of the selection set.
func (f Filter) WithToggledMulti(name string) Filter {
	next := Filter{Mode: ModeMulti}
	if f.Mode == ModeMulti {
		for _, t := range f.Multi {
			if t != name {
				next.Multi = append(next.Multi, t)
			}
		}
		if len(next.Multi) < len(f.Multi) {
			return next
		}
	}
	next.Multi = append(next.Multi, name)
	return next
}

// Active reports whether any tag is selected.
func (f Filter) Active() bool {
	if f.Mode == ModeMulti {
		return len(f.Multi) > 0
	}
	return f.Selected != ""
}

// Matches reports whether an entity's tag list intersects the active
// selection. An inactive filter matches everything; multiple selected tags
// use OR semantics.
func (f Filter) Matches(tags []string) bool {
	if !f.Active() {
		return true
	}
	if f.Mode == ModeMulti {
		for _, want := range f.Multi {
			for _, have := range tags {
				if have == want {
					return true
				}
			}
		}
		return false
	}
	for _, have := range tags {
		if have == f.Selected {
			return true
		}
	}
	return false
}

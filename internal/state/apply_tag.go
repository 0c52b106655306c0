package state

import "github.com/BVTRay/vioflow/internal/domain/tag"

func applyUpsertTag(s Snapshot, ev UpsertTag) (Snapshot, bool) {
	t := ev.Tag
	if t.Name == "" {
		return s, false
	}
	tags := s.cloneTags()
	for i, existing := range tags {
		if existing.Name == t.Name {
			if t.ID == "" {
				t.ID = existing.ID
			}
			tags[i] = t
			s.Tags = tags
			return s, true
		}
	}
	s.Tags = append(tags, t)
	return s, true
}

// TagByName looks a tag up by its unique name.
func (s Snapshot) TagByName(name string) (tag.Tag, bool) {
	for _, t := range s.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return tag.Tag{}, false
}

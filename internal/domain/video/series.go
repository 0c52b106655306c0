package video

import (
	"regexp"
	"sort"
	"strings"
)

var versionPrefix = regexp.MustCompile(`^[vV]\d+_`)

// SeriesKey returns the series identity for a video: the stored BaseName, or
// the display name with any leading vN_ prefix stripped when BaseName is
// missing.
func SeriesKey(v Video) string {
	if strings.TrimSpace(v.BaseName) != "" {
		return v.BaseName
	}
	return StripVersionPrefix(v.Name)
}

// StripVersionPrefix removes a leading vN_ version marker from a name.
func StripVersionPrefix(name string) string {
	return versionPrefix.ReplaceAllString(name, "")
}

// NextVersion computes the version number the next upload into a series
// should take: one past the highest existing version, or 1 for an empty
// series. Missing version numbers count as 0, so a malformed series still
// yields a usable answer.
func NextVersion(videos []Video, baseName string) int {
	max := 0
	for _, v := range videos {
		if SeriesKey(v) != baseName {
			continue
		}
		if v.Version > max {
			max = v.Version
		}
	}
	return max + 1
}

// Series returns the videos of one series ordered latest-first.
func Series(videos []Video, baseName string) []Video {
	var out []Video
	for _, v := range videos {
		if SeriesKey(v) == baseName {
			out = append(out, v)
		}
	}
	sortLatestFirst(out)
	return out
}

// Latest returns the representative (highest-version) video of a series.
func Latest(videos []Video, baseName string) (Video, bool) {
	series := Series(videos, baseName)
	if len(series) == 0 {
		return Video{}, false
	}
	return series[0], true
}

// GroupBySeries buckets videos by series key, each bucket latest-first.
func GroupBySeries(videos []Video) map[string][]Video {
	groups := make(map[string][]Video)
	for _, v := range videos {
		key := SeriesKey(v)
		groups[key] = append(groups[key], v)
	}
	for key := range groups {
		sortLatestFirst(groups[key])
	}
	return groups
}

func sortLatestFirst(videos []Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		if videos[i].Version != videos[j].Version {
			return videos[i].Version > videos[j].Version
		}
		return videos[i].UploadedAt.After(videos[j].UploadedAt)
	})
}

package video

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seriesVideo(id, baseName string, version int, uploadedAt time.Time) Video {
	return Video{
		ID:         id,
		ProjectID:  "p1",
		Name:       baseName,
		BaseName:   baseName,
		Type:       TypeVideo,
		Version:    version,
		UploadedAt: uploadedAt,
		Status:     StatusInitial,
	}
}

func TestSeriesKey(t *testing.T) {
	require.Equal(t, "teaser.mp4", SeriesKey(Video{BaseName: "teaser.mp4", Name: "v3_teaser.mp4"}))

	// Without a stored base name the key falls back to the stripped display name
	require.Equal(t, "teaser.mp4", SeriesKey(Video{Name: "v3_teaser.mp4"}))
	require.Equal(t, "teaser.mp4", SeriesKey(Video{Name: "teaser.mp4"}))
}

func TestStripVersionPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"v1_spot.mp4", "spot.mp4"},
		{"V12_spot.mp4", "spot.mp4"},
		{"v_spot.mp4", "v_spot.mp4"},
		{"vspot.mp4", "vspot.mp4"},
		{"spot_v2.mp4", "spot_v2.mp4"},
		{"v2_v3_spot.mp4", "v3_spot.mp4"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, StripVersionPrefix(tt.name), tt.name)
	}
}

func TestNextVersion(t *testing.T) {
	now := time.Now()
	videos := []Video{
		seriesVideo("a", "teaser.mp4", 1, now),
		seriesVideo("b", "teaser.mp4", 3, now),
		seriesVideo("c", "spot.mp4", 5, now),
	}
	require.Equal(t, 4, NextVersion(videos, "teaser.mp4"))
	require.Equal(t, 6, NextVersion(videos, "spot.mp4"))
	require.Equal(t, 1, NextVersion(videos, "fresh.mp4"))
	require.Equal(t, 1, NextVersion(nil, "teaser.mp4"))
}

func TestSeriesOrdering(t *testing.T) {
	now := time.Now()
	videos := []Video{
		seriesVideo("a", "teaser.mp4", 1, now),
		seriesVideo("c", "spot.mp4", 1, now),
		seriesVideo("b", "teaser.mp4", 3, now.Add(-time.Hour)),
		seriesVideo("d", "teaser.mp4", 2, now),
	}
	series := Series(videos, "teaser.mp4")
	require.Len(t, series, 3)
	require.Equal(t, []string{"b", "d", "a"}, []string{series[0].ID, series[1].ID, series[2].ID})
}

func TestSeriesUploadTimeBreaksVersionTies(t *testing.T) {
	now := time.Now()
	videos := []Video{
		seriesVideo("old", "teaser.mp4", 2, now.Add(-time.Hour)),
		seriesVideo("new", "teaser.mp4", 2, now),
	}
	series := Series(videos, "teaser.mp4")
	require.Equal(t, "new", series[0].ID)
}

func TestLatest(t *testing.T) {
	now := time.Now()
	videos := []Video{
		seriesVideo("a", "teaser.mp4", 1, now),
		seriesVideo("b", "teaser.mp4", 2, now),
	}
	latest, ok := Latest(videos, "teaser.mp4")
	require.True(t, ok)
	require.Equal(t, "b", latest.ID)

	_, ok = Latest(videos, "missing.mp4")
	require.False(t, ok)
}

func TestGroupBySeries(t *testing.T) {
	now := time.Now()
	videos := []Video{
		seriesVideo("a", "teaser.mp4", 1, now),
		seriesVideo("b", "spot.mp4", 1, now),
		seriesVideo("c", "teaser.mp4", 2, now),
	}
	groups := GroupBySeries(videos)
	require.Len(t, groups, 2)
	require.Equal(t, "c", groups["teaser.mp4"][0].ID)
	require.Len(t, groups["spot.mp4"], 1)
}

package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BVTRay/vioflow/internal/domain/tag"
)

func TestUpsertTagKeepsOriginalID(t *testing.T) {
	store := newTestStore(t)
	store.Apply(UpsertTag{Tag: tag.Tag{ID: "t1", Name: "teaser", Category: "format"}})
	store.Apply(UpsertTag{Tag: tag.Tag{Name: "teaser", Category: "promo"}})

	got, ok := store.Snapshot().TagByName("teaser")
	require.True(t, ok)
	require.Equal(t, "t1", got.ID)
	require.Equal(t, "promo", got.Category)
	require.Len(t, store.Snapshot().Tags, 1)
}

func TestUpsertTagRejectsEmptyName(t *testing.T) {
	store := newTestStore(t)
	version := store.Snapshot().Version
	snap := store.Apply(UpsertTag{Tag: tag.Tag{ID: "t1"}})
	require.Equal(t, version, snap.Version)
}

func TestNotifications(t *testing.T) {
	store := newTestStore(t)
	n := Notification{ID: "n1", Kind: "upload", Message: "teaser.mp4 uploaded", CreatedAt: time.Now()}
	store.Apply(AddNotification{Notification: n})

	// Duplicate ids are dropped
	version := store.Snapshot().Version
	require.Equal(t, version, store.Apply(AddNotification{Notification: n}).Version)

	store.Apply(MarkNotificationRead{ID: "n1"})
	require.True(t, store.Snapshot().Notifications[0].Read)

	// Marking an already-read or unknown notification changes nothing
	version = store.Snapshot().Version
	require.Equal(t, version, store.Apply(MarkNotificationRead{ID: "n1"}).Version)
	require.Equal(t, version, store.Apply(MarkNotificationRead{ID: "ghost"}).Version)
}

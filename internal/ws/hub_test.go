package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/BVTRay/vioflow/internal/state"
)

func dialTestServer(t *testing.T, h *Handler) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUpdate(t *testing.T, conn *websocket.Conn) Update {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var update Update
	require.NoError(t, json.Unmarshal(payload, &update))
	return update
}

func TestHandler_InitialSnapshot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := state.NewStore(state.NewSnapshot(), logger)
	hub := NewHub()
	go hub.Run()

	conn := dialTestServer(t, &Handler{Hub: hub, Store: store})

	update := readUpdate(t, conn)
	require.Equal(t, "snapshot", update.Type)
	require.Zero(t, update.Version)
}

func TestHub_BroadcastsSnapshotVersions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := state.NewStore(state.NewSnapshot(), logger)
	hub := NewHub()
	go hub.Run()
	store.Watch(hub.NotifySnapshot)

	conn := dialTestServer(t, &Handler{Hub: hub, Store: store})
	readUpdate(t, conn) // drain the initial snapshot message

	store.Apply(state.ToggleRetrievalPanel{})

	update := readUpdate(t, conn)
	require.Equal(t, "snapshot", update.Type)
	require.EqualValues(t, 1, update.Version)
}

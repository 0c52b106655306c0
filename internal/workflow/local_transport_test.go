package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalTransport_Upload(t *testing.T) {
	staged := filepath.Join(t.TempDir(), "teaser.mp4")
	require.NoError(t, os.WriteFile(staged, []byte("frames"), 0o644))

	transport := &LocalTransport{Root: t.TempDir()}
	var reported []int
	err := transport.Upload(context.Background(), UploadRequest{
		Filename:  staged,
		ProjectID: "p1",
	}, func(pct int) {
		reported = append(reported, pct)
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(transport.Root, "p1", "teaser.mp4"))
	require.NoError(t, err)
	require.Equal(t, []byte("frames"), data)

	require.NotEmpty(t, reported)
	require.Equal(t, 100, reported[len(reported)-1])
}

func TestLocalTransport_UploadMissingSource(t *testing.T) {
	transport := &LocalTransport{Root: t.TempDir()}
	err := transport.Upload(context.Background(), UploadRequest{
		Filename:  filepath.Join(t.TempDir(), "missing.mp4"),
		ProjectID: "p1",
	}, nil)
	require.Error(t, err)
}

func TestLocalTransport_UploadCancelled(t *testing.T) {
	staged := filepath.Join(t.TempDir(), "teaser.mp4")
	require.NoError(t, os.WriteFile(staged, []byte("frames"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := &LocalTransport{Root: t.TempDir()}
	err := transport.Upload(ctx, UploadRequest{Filename: staged, ProjectID: "p1"}, nil)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(transport.Root, "p1", "teaser.mp4"))
	require.True(t, os.IsNotExist(statErr))
}

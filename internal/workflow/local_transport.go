package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const copyChunkSize = 1 << 20

// LocalTransport stores uploads on the local filesystem. Filename in the
// request is the path of the staged source file; the transport copies it
// into the media root under the project's directory.
type LocalTransport struct {
	Root string
}

// NewLocalTransport creates a transport rooted at the default media dir.
func NewLocalTransport() *LocalTransport {
	return &LocalTransport{Root: "data/media"}
}

// Upload copies the staged file into place, reporting progress in percent.
func (t *LocalTransport) Upload(ctx context.Context, req UploadRequest, progress func(pct int)) error {
	src, err := os.Open(req.Filename)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	destDir := filepath.Join(t.Root, req.ProjectID)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}

	destPath := filepath.Join(destDir, filepath.Base(req.Filename))
	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer dest.Close()

	var copied int64
	buf := make([]byte, copyChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			os.Remove(destPath)
			return err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dest.Write(buf[:n]); err != nil {
				os.Remove(destPath)
				return fmt.Errorf("write destination: %w", err)
			}
			copied += int64(n)
			if progress != nil && info.Size() > 0 {
				progress(int(copied * 100 / info.Size()))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			os.Remove(destPath)
			return fmt.Errorf("read source: %w", readErr)
		}
	}

	if progress != nil {
		progress(100)
	}
	return nil
}

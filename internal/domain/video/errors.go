package video

import "errors"

var (
	// ErrVideoNotFound indicates the video doesn't exist.
	ErrVideoNotFound = errors.New("video not found")
	// ErrInvalidInput indicates invalid video input.
	ErrInvalidInput = errors.New("invalid video input")
)

package upload

import "errors"

var (
	// ErrTaskNotFound indicates the upload task doesn't exist.
	ErrTaskNotFound = errors.New("upload task not found")
	// ErrProjectUnknown indicates the upload targets an unknown project.
	ErrProjectUnknown = errors.New("upload target project unknown")
	// ErrInvalidInput indicates invalid upload input.
	ErrInvalidInput = errors.New("invalid upload input")
)

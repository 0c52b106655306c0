package delivery

import "errors"

var (
	// ErrChecklistNotFound indicates the project has no checklist yet.
	ErrChecklistNotFound = errors.New("checklist not found")
	// ErrPackageNotFound indicates the delivery package doesn't exist.
	ErrPackageNotFound = errors.New("delivery package not found")
	// ErrInvalidInput indicates invalid checklist input.
	ErrInvalidInput = errors.New("invalid checklist input")
	// ErrUnknownField indicates an unrecognized checklist field name.
	ErrUnknownField = errors.New("unknown checklist field")
)

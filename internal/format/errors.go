package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrInvalidName indicates a name that cannot be stored in a header.
	ErrInvalidName = errors.New("format: invalid area name")
)

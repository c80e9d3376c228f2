package area

import (
	"errors"

	"github.com/joshuapare/persistkit/eeprom/directory"
)

var (
	// ErrNotFound indicates that no area carries the requested name.
	ErrNotFound = directory.ErrNotFound

	// ErrSizeMismatch indicates a caller size that differs from the stored payload size.
	ErrSizeMismatch = errors.New("area: size mismatch")
)

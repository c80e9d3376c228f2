package alloc

import (
	"errors"

	"github.com/joshuapare/persistkit/eeprom/directory"
)

var (
	// ErrNotFound indicates that no area carries the requested name.
	ErrNotFound = directory.ErrNotFound

	// ErrNameInUse indicates an allocation for a name that already exists.
	ErrNameInUse = errors.New("alloc: name already in use")

	// ErrAlreadyInUse indicates a claim on a cell that is not free.
	ErrAlreadyInUse = errors.New("alloc: cell already in use")

	// ErrTooSmall indicates a claim on a cell whose capacity cannot hold the payload.
	ErrTooSmall = errors.New("alloc: cell too small")

	// ErrNoSpace indicates that no cell in the region can hold the payload.
	ErrNoSpace = errors.New("alloc: no free cell large enough")

	// ErrInvalidSize indicates a payload size outside [1, format.MaxPayload].
	ErrInvalidSize = errors.New("alloc: invalid payload size")

	// ErrHeaderWrite indicates that freeing failed while updating the header.
	ErrHeaderWrite = errors.New("alloc: header update failed")

	// ErrPayloadScrub indicates that a freed area's payload could not be cleared.
	ErrPayloadScrub = errors.New("alloc: payload scrub failed")
)

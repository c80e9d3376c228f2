package directory

import "errors"

var (
	// ErrNotFound indicates that no live area carries the requested name.
	ErrNotFound = errors.New("directory: area not found")

	// ErrBadAddress indicates a payload address outside the allocatable region.
	ErrBadAddress = errors.New("directory: address outside region")

	// ErrCorruptChain indicates a header whose next offset cannot advance the walk.
	ErrCorruptChain = errors.New("directory: corrupt header chain")
)

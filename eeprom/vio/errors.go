package vio

import (
	"errors"
	"fmt"
)

var (
	// ErrWrite indicates that a byte read back differently from what was written.
	ErrWrite = errors.New("vio: write verification failed")

	// ErrOutOfRange indicates an access beyond the end of the medium.
	ErrOutOfRange = errors.New("vio: address out of range")
)

// WriteError reports a verification failure during Store or Clear.
type WriteError struct {
	Addr    uint32 // address of the byte that failed to verify
	Written int    // bytes stored correctly before the failure
	Want    int    // bytes requested
	Got     byte   // value read back
	Expect  byte   // value written
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("vio: write verification failed at 0x%04X (wrote 0x%02X, read 0x%02X) after %d of %d bytes",
		e.Addr, e.Expect, e.Got, e.Written, e.Want)
}

// Is lets errors.Is match ErrWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

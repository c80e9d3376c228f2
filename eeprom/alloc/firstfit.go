package alloc

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/eeprom/directory"
	"github.com/joshuapare/persistkit/eeprom/vio"
	"github.com/joshuapare/persistkit/internal/format"
)

const debugAlloc = false

// errFound ends a chain walk once a candidate is located.
var errFound = errors.New("alloc: found")

// FirstFit allocates cells from the header chain in chain order.
type FirstFit struct {
	io     *vio.IO
	dir    *directory.Directory
	region eeprom.Region
}

var _ Allocator = (*FirstFit)(nil)

// New returns a first-fit allocator over the region managed by dir.
func New(io *vio.IO, dir *directory.Directory) *FirstFit {
	return &FirstFit{io: io, dir: dir, region: dir.Region()}
}

func checkSize(size int) error {
	if size < 1 || size > format.MaxPayload {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSize, size, format.MaxPayload)
	}
	return nil
}

// FindFree returns the payload address of the first cell in chain order that
// can hold size payload bytes: a freed cell whose capacity is at least
// format.HeaderSize+size, or the virgin tail when the cell would end at or
// before Region.End. Nothing is written.
func (a *FirstFit) FindFree(size int) (uint32, error) {
	if err := checkSize(size); err != nil {
		return 0, err
	}
	need := uint32(format.HeaderSize + size)

	var found uint32
	err := a.dir.Walk(func(e directory.Entry) error {
		if e.Hdr.Data != format.Sentinel {
			return nil
		}
		if e.Hdr.Next == format.Sentinel {
			if a.region.Holds(e.Header, need) {
				found = e.Data
				return errFound
			}
			return nil
		}
		if uint32(e.Hdr.Next) >= need {
			found = e.Data
			return errFound
		}
		return nil
	})
	switch {
	case errors.Is(err, errFound):
		return found, nil
	case err != nil:
		return 0, err
	}
	debugLogf("FindFree(%d): no cell in %s", size, a.region)
	return 0, fmt.Errorf("%w: %d bytes in %s", ErrNoSpace, size, a.region)
}

// Claim writes a header for name into the free cell whose payload starts at
// dataAddr and returns size. The next field is only written when the cell
// was virgin; a reused freed cell keeps its capacity.
func (a *FirstFit) Claim(name string, dataAddr uint32, size int) (int, error) {
	key, err := format.EncodeName(name)
	if err != nil {
		return 0, err
	}
	if err := checkSize(size); err != nil {
		return 0, err
	}
	addr, h, err := a.dir.HeaderAt(dataAddr)
	if err != nil {
		return 0, err
	}
	if h.Data != format.Sentinel {
		return 0, fmt.Errorf("%w: header at 0x%X", ErrAlreadyInUse, addr)
	}

	need := format.HeaderSize + size
	if h.Next == format.Sentinel {
		if !a.region.Holds(addr, uint32(need)) {
			return 0, fmt.Errorf("%w: %d bytes at 0x%X cross region end 0x%X", ErrTooSmall, need, addr, a.region.End)
		}
	} else if int(h.Next) < need {
		return 0, fmt.Errorf("%w: capacity %d < %d at 0x%X", ErrTooSmall, h.Next, need, addr)
	}

	claimed := h.Claimed(key, size)
	if _, err := a.io.Store(addr, claimed.Encode()); err != nil {
		return 0, fmt.Errorf("alloc: claim %q at 0x%X: %w", name, addr, err)
	}
	debugLogf("Claim(%q, %d): header 0x%X next=%d", name, size, addr, claimed.Next)
	return size, nil
}

// Allocate reserves size payload bytes for name and returns the payload
// address. The stored capacity may exceed size when a freed cell is reused.
func (a *FirstFit) Allocate(name string, size int) (uint32, error) {
	if _, err := format.EncodeName(name); err != nil {
		return 0, err
	}
	if err := checkSize(size); err != nil {
		return 0, err
	}
	switch _, err := a.dir.Lookup(name); {
	case err == nil:
		return 0, fmt.Errorf("%w: %q", ErrNameInUse, name)
	case !errors.Is(err, directory.ErrNotFound):
		return 0, err
	}

	dataAddr, err := a.FindFree(size)
	if err != nil {
		return 0, err
	}
	if _, err := a.Claim(name, dataAddr, size); err != nil {
		return 0, err
	}
	return dataAddr, nil
}

// Free releases the area called name. The header's data field and name are
// cleared; when the cell is the last one before the virgin tail its next
// field is cleared too, returning it to virgin. The payload is then scrubbed
// to format.ResetValue.
//
// A header that already reads as freed yields StatusAlreadyFreed and no error.
// A name with no header at all, such as one already freed cleanly, yields
// StatusAlreadyFreed and an error wrapping ErrNotFound.
// A failed header write yields StatusFailed and an error wrapping
// ErrHeaderWrite; a failed scrub yields StatusFreed and an error wrapping
// ErrPayloadScrub. Both also wrap the *vio.WriteError.
func (a *FirstFit) Free(name string) (Status, error) {
	e, err := a.dir.Lookup(name)
	if errors.Is(err, directory.ErrNotFound) {
		e, err = a.dir.LookupNamed(name)
	}
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return StatusAlreadyFreed, err
	case err != nil:
		return StatusFailed, err
	}
	h := e.Hdr
	if h.Data == format.Sentinel {
		return StatusAlreadyFreed, nil
	}
	if h.State() != format.StateAllocated || h.Data > h.Next {
		return StatusFailed, fmt.Errorf("%w: header 0x%X next=%d data=%d", directory.ErrCorruptChain, e.Header, h.Next, h.Data)
	}

	tail, err := a.isTail(e)
	if err != nil {
		return StatusFailed, err
	}
	dataAddr := e.Header + uint32(h.Data)
	dataLen := int(h.Next - h.Data)

	if _, err := a.io.Store(e.Header, h.Freed(tail).Encode()); err != nil {
		return StatusFailed, fmt.Errorf("%w: %q: %w", ErrHeaderWrite, name, err)
	}
	if _, err := a.io.Clear(dataAddr, format.ResetValue, dataLen); err != nil {
		return StatusFreed, fmt.Errorf("%w: %q: %w", ErrPayloadScrub, name, err)
	}
	debugLogf("Free(%q): header 0x%X tail=%v", name, e.Header, tail)
	return StatusFreed, nil
}

// isTail reports whether nothing is allocated after e: the following header
// is the virgin tail, or no further header fits in the region.
func (a *FirstFit) isTail(e directory.Entry) (bool, error) {
	next := e.Header + uint32(e.Hdr.Next)
	if !a.region.Holds(next, format.HeaderSize) {
		return true, nil
	}
	v, err := a.io.U16(next + format.NextOffset)
	if err != nil {
		return false, err
	}
	return v == format.Sentinel, nil
}

// debugLogf prints debug messages if debugAlloc is enabled.
func debugLogf(format string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+format+"\n", args...)
	}
}

package format

import (
	"fmt"

	"github.com/joshuapare/persistkit/internal/buf"
)

// State is the decoded lifecycle state of a cell.
type State uint8

const (
	// StateVirgin is the chain tail; everything from the header on is unused.
	StateVirgin State = iota
	// StateFreed is a released cell that keeps its capacity in Next.
	StateFreed
	// StateAllocated is a live cell owned by Name.
	StateAllocated
	// StateCorrupt is a header with a virgin next but a concrete data field.
	StateCorrupt
)

func (s State) String() string {
	switch s {
	case StateVirgin:
		return "virgin"
	case StateFreed:
		return "freed"
	case StateAllocated:
		return "allocated"
	default:
		return "corrupt"
	}
}

// Header is the fixed-size record stored at the start of each cell.
type Header struct {
	Next uint16
	Data uint16
	Name [NameSize]byte
}

// DecodeHeader decodes the header at the start of b.
func DecodeHeader(b []byte) (Header, error) {
	raw, ok := buf.Slice(b, 0, HeaderSize)
	if !ok {
		return Header{}, fmt.Errorf("header: %w", ErrTruncated)
	}
	h := Header{
		Next: buf.U16LE(raw[NextOffset:]),
		Data: buf.U16LE(raw[DataOffset:]),
	}
	copy(h.Name[:], raw[NameOffset:HeaderSize])
	return h, nil
}

// Encode returns the on-medium representation of h.
func (h Header) Encode() []byte {
	b := make([]byte, HeaderSize)
	buf.PutU16LE(b[NextOffset:], h.Next)
	buf.PutU16LE(b[DataOffset:], h.Data)
	copy(b[NameOffset:], h.Name[:])
	return b
}

// State interprets the sentinel encoding of Next and Data.
func (h Header) State() State {
	switch {
	case h.Next == Sentinel && h.Data == Sentinel:
		return StateVirgin
	case h.Next == Sentinel:
		return StateCorrupt
	case h.Data == Sentinel:
		return StateFreed
	default:
		return StateAllocated
	}
}

// Capacity is the total cell size a freed or allocated cell can hold,
// header included. It is 0 for the virgin tail.
func (h Header) Capacity() int {
	if h.Next == Sentinel {
		return 0
	}
	return int(h.Next)
}

// PayloadSize is the stored payload length of a live cell.
func (h Header) PayloadSize() int {
	if h.State() != StateAllocated || h.Next < h.Data {
		return 0
	}
	return int(h.Next - h.Data)
}

// NameString decodes the stored name for display.
func (h Header) NameString() string {
	return DecodeName(h.Name[:])
}

// Freed returns h with the data field and name cleared. When tail is true
// the next field is cleared too, returning the cell to virgin state.
func (h Header) Freed(tail bool) Header {
	h.Data = Sentinel
	for i := range h.Name {
		h.Name[i] = NameFiller
	}
	if tail {
		h.Next = Sentinel
	}
	return h
}

// Claimed returns the header written when a cell is handed to name. The
// next field is only set when the cell was virgin; a reused freed cell keeps
// its capacity so the chain stays intact.
func (h Header) Claimed(name [NameSize]byte, payload int) Header {
	if h.Next == Sentinel {
		h.Next = uint16(HeaderSize + payload)
	}
	h.Data = HeaderSize
	h.Name = name
	return h
}

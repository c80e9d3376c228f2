package verify

import (
	"errors"
	"fmt"

	farm "github.com/dgryski/go-farm"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/eeprom/directory"
	"github.com/joshuapare/persistkit/eeprom/vio"
	"github.com/joshuapare/persistkit/internal/format"
)

// ValidationError describes the first violated invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Chain walks the chain in r and returns a *ValidationError for the first
// inconsistency, or nil.
func Chain(io *vio.IO, r eeprom.Region) error {
	if err := r.Validate(io.Medium()); err != nil {
		return &ValidationError{Type: "Region", Message: err.Error(), Offset: -1}
	}

	seen := make(map[string]uint32)
	tail := r.End
	err := directory.New(io, r).Walk(func(e directory.Entry) error {
		h := e.Hdr
		switch h.State() {
		case format.StateVirgin:
			tail = e.Header
			return nil
		case format.StateCorrupt:
			return &ValidationError{
				Type:    "HeaderState",
				Message: fmt.Sprintf("virgin next with data=%d", h.Data),
				Offset:  int(e.Header),
			}
		}

		if h.Next < format.HeaderSize {
			return &ValidationError{
				Type:    "ChainLink",
				Message: fmt.Sprintf("next=%d is shorter than a header", h.Next),
				Offset:  int(e.Header + format.NextOffset),
			}
		}
		if !r.Holds(e.Header, uint32(h.Next)) {
			return &ValidationError{
				Type:    "CellBounds",
				Message: fmt.Sprintf("cell of %d bytes crosses region end 0x%X", h.Next, r.End),
				Offset:  int(e.Header),
			}
		}
		if h.State() == format.StateFreed {
			return nil
		}

		if h.Data != format.HeaderSize {
			return &ValidationError{
				Type:    "DataOffset",
				Message: fmt.Sprintf("data=%d, expected %d", h.Data, format.HeaderSize),
				Offset:  int(e.Header + format.DataOffset),
			}
		}
		if h.Next <= h.Data {
			return &ValidationError{
				Type:    "DataOffset",
				Message: fmt.Sprintf("live cell with next=%d has no payload", h.Next),
				Offset:  int(e.Header),
			}
		}
		name := h.NameString()
		if name == "" {
			return &ValidationError{
				Type:    "Name",
				Message: "live cell without a name",
				Offset:  int(e.Header + format.NameOffset),
			}
		}
		if prev, dup := seen[name]; dup {
			return &ValidationError{
				Type:    "DuplicateName",
				Message: fmt.Sprintf("%q also at 0x%X", name, prev),
				Offset:  int(e.Header),
				Details: map[string]any{"name": name, "first": prev},
			}
		}
		seen[name] = e.Header
		return nil
	})

	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve
	case errors.Is(err, directory.ErrCorruptChain):
		return &ValidationError{Type: "ChainLink", Message: err.Error(), Offset: -1}
	case err != nil:
		return err
	}

	return virginTail(io, tail, r.End)
}

// virginTail checks that [from, end) holds only the reset value.
func virginTail(io *vio.IO, from, end uint32) error {
	if from >= end {
		return nil
	}
	b, err := io.Read(from, int(end-from))
	if err != nil {
		return err
	}
	for i, c := range b {
		if c != format.ResetValue {
			return &ValidationError{
				Type:    "VirginTail",
				Message: fmt.Sprintf("byte 0x%02X after the chain tail", c),
				Offset:  int(from) + i,
			}
		}
	}
	return nil
}

// Stats summarizes the occupancy of a region.
type Stats struct {
	Region       eeprom.Region `json:"region"`
	Live         int           `json:"live"`
	Freed        int           `json:"freed"`
	LiveBytes    int           `json:"live_bytes"`    // payload bytes held by live cells
	FreedBytes   int           `json:"freed_bytes"`   // payload capacity of freed cells
	VirginBytes  int           `json:"virgin_bytes"`  // bytes from the tail to Region.End
	LargestFreed int           `json:"largest_freed"` // largest payload a freed cell can take
	Fingerprint  uint64        `json:"fingerprint"`   // farm fingerprint of the region bytes
}

// Collect walks the chain in r and summarizes it. The fingerprint covers
// every byte of the region, so two images with equal fingerprints hold the
// same areas with the same contents.
func Collect(io *vio.IO, r eeprom.Region) (Stats, error) {
	st := Stats{Region: r}
	if err := r.Validate(io.Medium()); err != nil {
		return st, err
	}

	end := r.Start
	err := directory.New(io, r).Walk(func(e directory.Entry) error {
		h := e.Hdr
		switch h.State() {
		case format.StateVirgin:
			return nil
		case format.StateFreed:
			st.Freed++
			n := h.Capacity() - format.HeaderSize
			st.FreedBytes += n
			st.LargestFreed = max(st.LargestFreed, n)
		case format.StateAllocated:
			st.Live++
			st.LiveBytes += h.PayloadSize()
		}
		if h.Next != format.Sentinel {
			end = e.Header + uint32(h.Next)
		}
		return nil
	})
	if err != nil {
		return st, err
	}
	if end < r.End {
		st.VirginBytes = int(r.End - end)
	}

	raw, err := io.Read(r.Start, int(r.Len()))
	if err != nil {
		return st, err
	}
	st.Fingerprint = farm.Fingerprint64(raw)
	return st, nil
}

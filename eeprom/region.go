package eeprom

import (
	"errors"
	"fmt"

	"github.com/joshuapare/persistkit/internal/buf"
	"github.com/joshuapare/persistkit/internal/format"
)

var (
	// ErrRegion indicates region bounds that do not fit the medium.
	ErrRegion = errors.New("eeprom: invalid region")

	// ErrLayout indicates a layout whose reserved regions do not fit the medium.
	ErrLayout = errors.New("eeprom: invalid layout")
)

// Region is the half-open allocatable range [Start, End).
type Region struct {
	Start uint32 `yaml:"start" json:"start"`
	End   uint32 `yaml:"end" json:"end"`
}

// Validate checks that r lies inside m and can hold at least one header.
func (r Region) Validate(m Medium) error {
	if r.End > m.Size() {
		return fmt.Errorf("%w: end 0x%X beyond medium size 0x%X", ErrRegion, r.End, m.Size())
	}
	if r.Start >= r.End {
		return fmt.Errorf("%w: start 0x%X not below end 0x%X", ErrRegion, r.Start, r.End)
	}
	if r.Len() < format.HeaderSize {
		return fmt.Errorf("%w: %d bytes cannot hold a %d byte header", ErrRegion, r.Len(), format.HeaderSize)
	}
	return nil
}

// Len is the number of bytes in the region.
func (r Region) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether addr lies in [Start, End).
func (r Region) Contains(addr uint32) bool {
	return addr >= r.Start && addr < r.End
}

// Holds reports whether the n bytes at addr lie entirely in the region.
func (r Region) Holds(addr, n uint32) bool {
	return buf.Within(addr, n, r.Start, r.End)
}

func (r Region) String() string {
	return fmt.Sprintf("[0x%04X, 0x%04X)", r.Start, r.End)
}

// Whole returns the region spanning all of m.
func Whole(m Medium) Region {
	return Region{Start: 0, End: m.Size()}
}

package eeprom

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/persistkit/internal/buf"
)

// Reserved describes a region kept at the end of the medium by another
// subsystem. Its size is either constant, or an element count stored as a
// little-endian u16 at SizeAt multiplied by ElemSize.
type Reserved struct {
	Name     string  `yaml:"name"`
	Size     uint32  `yaml:"size,omitempty"`
	SizeAt   *uint32 `yaml:"size_at,omitempty"`
	ElemSize uint32  `yaml:"elem_size,omitempty"`
}

// Layout describes how a medium is partitioned around the allocatable region.
// Reserved regions are stacked downwards from the end of the medium in order.
type Layout struct {
	// Size overrides the medium size when non-zero; it must not exceed it.
	Size     uint32     `yaml:"size,omitempty"`
	Fixed    uint32     `yaml:"fixed"`
	Reserved []Reserved `yaml:"reserved,omitempty"`
}

// ParseLayout decodes a YAML layout description.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrLayout, err)
	}
	return l, nil
}

// LoadLayout reads and decodes a YAML layout file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}
	return ParseLayout(data)
}

// Region computes the allocatable region of m, reading stored element counts
// from the medium where the layout asks for them.
func (l Layout) Region(m Medium) (Region, error) {
	end := m.Size()
	if l.Size != 0 {
		if l.Size > end {
			return Region{}, fmt.Errorf("%w: size 0x%X beyond medium size 0x%X", ErrLayout, l.Size, end)
		}
		end = l.Size
	}
	for _, res := range l.Reserved {
		n, err := res.size(m)
		if err != nil {
			return Region{}, err
		}
		if n > end {
			return Region{}, fmt.Errorf("%w: reserved %q (%d bytes) does not fit below 0x%X", ErrLayout, res.Name, n, end)
		}
		end -= n
	}
	r := Region{Start: l.Fixed, End: end}
	if err := r.Validate(m); err != nil {
		return Region{}, fmt.Errorf("%w: %w", ErrLayout, err)
	}
	return r, nil
}

func (res Reserved) size(m Medium) (uint32, error) {
	if res.SizeAt == nil {
		return res.Size, nil
	}
	at := *res.SizeAt
	if !buf.Within(at, 2, 0, m.Size()) {
		return 0, fmt.Errorf("%w: reserved %q size field 0x%X outside medium", ErrLayout, res.Name, at)
	}
	count := uint32(buf.U16At(m.ByteAt(at), m.ByteAt(at+1)))
	elem := res.ElemSize
	if elem == 0 {
		elem = 1
	}
	return count * elem, nil
}

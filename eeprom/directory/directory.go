package directory

import (
	"errors"
	"fmt"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/eeprom/vio"
	"github.com/joshuapare/persistkit/internal/format"
)

// errStop ends a walk early without reporting an error.
var errStop = errors.New("directory: stop walk")

// Entry is one header visited during a walk.
type Entry struct {
	Header uint32 // address of the header
	Data   uint32 // conventional payload address, Header + format.HeaderSize
	Hdr    format.Header
}

// State is the decoded cell state.
func (e Entry) State() format.State { return e.Hdr.State() }

// Directory resolves names against the header chain. It is not safe for
// concurrent use.
type Directory struct {
	io     *vio.IO
	region eeprom.Region
}

// New returns a directory over region r of the medium behind io.
func New(io *vio.IO, r eeprom.Region) *Directory {
	return &Directory{io: io, region: r}
}

// Region returns the allocatable region.
func (d *Directory) Region() eeprom.Region { return d.region }

// ReadHeaderAt reads the header stored at addr. The whole header must lie
// inside the region.
func (d *Directory) ReadHeaderAt(addr uint32) (format.Header, error) {
	if !d.region.Holds(addr, format.HeaderSize) {
		return format.Header{}, fmt.Errorf("%w: header at 0x%X", ErrBadAddress, addr)
	}
	raw, err := d.io.Read(addr, format.HeaderSize)
	if err != nil {
		return format.Header{}, err
	}
	return format.DecodeHeader(raw)
}

// Walk calls fn for every header in chain order, the virgin tail included.
// The walk ends at Region.End, at the virgin tail, or at a header that would
// cross Region.End. A next offset shorter than a header is ErrCorruptChain.
// An error returned by fn stops the walk and is returned.
func (d *Directory) Walk(fn func(Entry) error) error {
	addr := d.region.Start
	for addr < d.region.End {
		if addr == uint32(format.Sentinel) {
			return nil
		}
		if !d.region.Holds(addr, format.HeaderSize) {
			return nil
		}
		h, err := d.ReadHeaderAt(addr)
		if err != nil {
			return err
		}
		if err := fn(Entry{Header: addr, Data: addr + format.HeaderSize, Hdr: h}); err != nil {
			return err
		}
		if h.Next == format.Sentinel {
			return nil
		}
		if h.Next < format.HeaderSize {
			return fmt.Errorf("%w: next=%d at 0x%X", ErrCorruptChain, h.Next, addr)
		}
		addr += uint32(h.Next)
	}
	return nil
}

// Lookup finds the live area called name. Freed cells never match, even
// when a failed header write left their name in place.
func (d *Directory) Lookup(name string) (Entry, error) {
	return d.lookup(name, false)
}

// LookupNamed finds the first cell whose name field matches name, freed
// cells included. It lets a release that was interrupted after the data
// field was cleared be recognized.
func (d *Directory) LookupNamed(name string) (Entry, error) {
	return d.lookup(name, true)
}

func (d *Directory) lookup(name string, freed bool) (Entry, error) {
	key, err := format.EncodeName(name)
	if err != nil {
		return Entry{}, err
	}
	var found *Entry
	err = d.Walk(func(e Entry) error {
		if e.Hdr.Next == format.Sentinel {
			return nil
		}
		if !freed && e.Hdr.Data == format.Sentinel {
			return nil
		}
		if d.io.NameEquals(e.Header+format.NameOffset, key[:]) {
			found = &e
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return Entry{}, err
	}
	if found == nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return *found, nil
}

// FindHeader returns the address of the header of area name.
func (d *Directory) FindHeader(name string) (uint32, error) {
	e, err := d.Lookup(name)
	if err != nil {
		return 0, err
	}
	return e.Header, nil
}

// FindData returns the payload address of area name, the header address plus
// format.HeaderSize.
func (d *Directory) FindData(name string) (uint32, error) {
	e, err := d.Lookup(name)
	if err != nil {
		return 0, err
	}
	return e.Data, nil
}

// Exists reports whether a live area called name is present.
func (d *Directory) Exists(name string) bool {
	_, err := d.Lookup(name)
	return err == nil
}

// HeaderAt resolves the header of the cell whose payload address is dataAddr.
// dataAddr must lie inside the region and its header must start at or after
// Region.Start.
func (d *Directory) HeaderAt(dataAddr uint32) (uint32, format.Header, error) {
	if !d.region.Contains(dataAddr) || dataAddr < d.region.Start+format.HeaderSize {
		return 0, format.Header{}, fmt.Errorf("%w: payload at 0x%X", ErrBadAddress, dataAddr)
	}
	addr := dataAddr - format.HeaderSize
	h, err := d.ReadHeaderAt(addr)
	if err != nil {
		return 0, format.Header{}, err
	}
	return addr, h, nil
}

// Entries returns every header in chain order.
func (d *Directory) Entries() ([]Entry, error) {
	var out []Entry
	err := d.Walk(func(e Entry) error {
		out = append(out, e)
		return nil
	})
	return out, err
}

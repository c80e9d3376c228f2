package eeprom

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/joshuapare/persistkit/internal/mmfile"
)

// File is an image file used as a medium. On unix the file is mapped shared
// and read-write, so every SetByte lands in the page cache immediately; use a
// dirty.Tracker to flush the touched pages.
type File struct {
	f       *os.File
	data    []byte
	release func() error
}

// Open maps an existing image file read-write.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("eeprom: empty image file: %s", path)
	}
	if sz > math.MaxUint32 {
		_ = f.Close()
		return nil, fmt.Errorf("eeprom: image file too large: %d bytes", sz)
	}

	data, release, err := mmfile.Map(f, sz)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{f: f, data: data, release: release}, nil
}

// Create writes a virgin image file of size bytes and opens it. An existing
// file at path is not overwritten.
func Create(path string, size int) (*File, error) {
	if size <= 0 {
		return nil, fmt.Errorf("eeprom: invalid image size %d", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(NewImage(size).Bytes()); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return Open(path)
}

// Close releases the mapping and the file handle.
func (m *File) Close() error {
	var errs []error
	if m.release != nil {
		errs = append(errs, m.release())
		m.release = nil
	}
	m.data = nil
	if m.f != nil {
		errs = append(errs, m.f.Close())
		m.f = nil
	}
	return errors.Join(errs...)
}

func (m *File) ByteAt(addr uint32) byte { return m.data[addr] }

func (m *File) SetByte(addr uint32, v byte) { m.data[addr] = v }

func (m *File) Size() uint32 { return uint32(len(m.data)) }

// Bytes returns the mapped contents.
func (m *File) Bytes() []byte { return m.data }

// File returns the underlying file handle, or nil once closed.
func (m *File) File() *os.File { return m.f }


package area

import (
	"fmt"

	"github.com/joshuapare/persistkit/eeprom/directory"
	"github.com/joshuapare/persistkit/eeprom/vio"
	"github.com/joshuapare/persistkit/internal/format"
)

// IO transfers area payloads. It is not safe for concurrent use.
type IO struct {
	io  *vio.IO
	dir *directory.Directory
}

// New returns payload I/O for the areas in dir.
func New(io *vio.IO, dir *directory.Directory) *IO {
	return &IO{io: io, dir: dir}
}

// resolve returns the payload address and stored size of area name.
func (a *IO) resolve(name string) (uint32, int, error) {
	e, err := a.dir.Lookup(name)
	if err != nil {
		return 0, 0, err
	}
	if e.Hdr.Data == format.Sentinel {
		return 0, 0, fmt.Errorf("%w: %q is freed", ErrNotFound, name)
	}
	if e.Hdr.State() != format.StateAllocated || e.Hdr.Data > e.Hdr.Next {
		return 0, 0, fmt.Errorf("%w: header 0x%X next=%d data=%d", directory.ErrCorruptChain, e.Header, e.Hdr.Next, e.Hdr.Data)
	}
	return e.Header + uint32(e.Hdr.Data), e.Hdr.PayloadSize(), nil
}

// Size returns the stored payload size of area name. It can exceed the size
// requested at allocation when a larger freed cell was reused.
func (a *IO) Size(name string) (int, error) {
	_, n, err := a.resolve(name)
	return n, err
}

// Read returns the payload of area name, which must be exactly size bytes.
// Nothing is allocated or read when the sizes differ.
func (a *IO) Read(name string, size int) ([]byte, error) {
	addr, err := a.sized(name, size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	if err := a.io.ReadInto(addr, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadInto fills dst with the payload of area name; len(dst) must equal the
// stored size.
func (a *IO) ReadInto(name string, dst []byte) error {
	addr, err := a.sized(name, len(dst))
	if err != nil {
		return err
	}
	return a.io.ReadInto(addr, dst)
}

// sized resolves area name and checks that its stored size is size.
func (a *IO) sized(name string, size int) (uint32, error) {
	addr, n, err := a.resolve(name)
	if err != nil {
		return 0, err
	}
	if size != n {
		return 0, fmt.Errorf("%w: %q holds %d bytes, want %d", ErrSizeMismatch, name, n, size)
	}
	return addr, nil
}

// Write stores payload as the content of area name and returns the number of
// bytes stored. The payload must fill the area exactly. On a verification
// failure the count covers the bytes stored before the failing one and the
// error is a *vio.WriteError.
func (a *IO) Write(name string, payload []byte) (int, error) {
	addr, err := a.sized(name, len(payload))
	if err != nil {
		return 0, err
	}
	return a.io.Store(addr, payload)
}

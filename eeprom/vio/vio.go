package vio

import (
	"fmt"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/eeprom/dirty"
	"github.com/joshuapare/persistkit/internal/buf"
	"github.com/joshuapare/persistkit/internal/format"
)

// IO performs verified reads and writes on a medium. It is not safe for
// concurrent use.
type IO struct {
	m      eeprom.Medium
	dt     dirty.DirtyTracker
	writes int
}

// Option configures an IO.
type Option func(*IO)

// WithTracker reports every modified byte to dt.
func WithTracker(dt dirty.DirtyTracker) Option {
	return func(v *IO) { v.dt = dt }
}

// New returns verified I/O over m.
func New(m eeprom.Medium, opts ...Option) *IO {
	v := &IO{m: m}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Medium returns the underlying medium.
func (v *IO) Medium() eeprom.Medium { return v.m }

// Writes returns the number of physical byte writes issued so far.
func (v *IO) Writes() int { return v.writes }

func (v *IO) check(addr uint32, n int) error {
	if n < 0 || int64(n) > int64(v.m.Size()) || !buf.Within(addr, uint32(n), 0, v.m.Size()) {
		return fmt.Errorf("%w: %d bytes at 0x%X (size 0x%X)", ErrOutOfRange, n, addr, v.m.Size())
	}
	return nil
}

// put writes one byte unless it already holds want, then verifies it.
func (v *IO) put(addr uint32, want byte) bool {
	if v.m.ByteAt(addr) == want {
		return true
	}
	v.m.SetByte(addr, want)
	v.writes++
	if v.dt != nil {
		v.dt.Add(int(addr), 1)
	}
	return v.m.ByteAt(addr) == want
}

// Store writes b at addr, skipping bytes that already match and verifying
// every byte written. It returns len(b) on success. On a verification failure
// it stops and returns the number of bytes stored before the failing one,
// together with a *WriteError.
func (v *IO) Store(addr uint32, b []byte) (int, error) {
	if err := v.check(addr, len(b)); err != nil {
		return 0, err
	}
	for i, want := range b {
		a := addr + uint32(i)
		if !v.put(a, want) {
			return i, &WriteError{Addr: a, Written: i, Want: len(b), Got: v.m.ByteAt(a), Expect: want}
		}
	}
	return len(b), nil
}

// Clear sets n bytes at addr to fill with the same discipline as Store.
func (v *IO) Clear(addr uint32, fill byte, n int) (int, error) {
	if err := v.check(addr, n); err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		a := addr + uint32(i)
		if !v.put(a, fill) {
			return i, &WriteError{Addr: a, Written: i, Want: n, Got: v.m.ByteAt(a), Expect: fill}
		}
	}
	return n, nil
}

// Read returns n bytes starting at addr.
func (v *IO) Read(addr uint32, n int) ([]byte, error) {
	if err := v.check(addr, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if err := v.ReadInto(addr, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadInto fills dst with the bytes starting at addr.
func (v *IO) ReadInto(addr uint32, dst []byte) error {
	if err := v.check(addr, len(dst)); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = v.m.ByteAt(addr + uint32(i))
	}
	return nil
}

// U16 reads a little-endian 16-bit field at addr.
func (v *IO) U16(addr uint32) (uint16, error) {
	if err := v.check(addr, 2); err != nil {
		return 0, err
	}
	return buf.U16At(v.m.ByteAt(addr), v.m.ByteAt(addr+1)), nil
}

// IsVirgin reports whether every byte of the whole medium, not just the
// allocatable region, still holds the factory-reset value.
func (v *IO) IsVirgin() bool {
	size := v.m.Size()
	for a := uint32(0); a < size; a++ {
		if v.m.ByteAt(a) != format.ResetValue {
			return false
		}
	}
	return true
}

// NameEquals compares the stored name at addr with name (stored form, see
// format.EncodeName). The comparison is bounded by format.MaxNameLen: names
// are equal when they terminate at the same index, or when all MaxNameLen
// visible bytes agree.
func (v *IO) NameEquals(addr uint32, name []byte) bool {
	if v.check(addr, format.MaxNameLen) != nil {
		return false
	}
	for i := 0; i < format.MaxNameLen; i++ {
		var want byte
		if i < len(name) {
			want = name[i]
		}
		got := v.m.ByteAt(addr + uint32(i))
		if got != want {
			return false
		}
		if got == 0 {
			return true
		}
	}
	return true
}

package eeprom

import "github.com/joshuapare/persistkit/internal/format"

// Medium is single-byte access over an addressable range [0, Size()).
// Callers never pass addresses outside that range.
type Medium interface {
	ByteAt(addr uint32) byte
	SetByte(addr uint32, v byte)
	Size() uint32
}

// Image is a medium backed by a byte slice.
type Image struct {
	data []byte
}

// NewImage returns a virgin image of size bytes.
func NewImage(size int) *Image {
	data := make([]byte, size)
	for i := range data {
		data[i] = format.ResetValue
	}
	return &Image{data: data}
}

// ImageFrom wraps b without copying it.
func ImageFrom(b []byte) *Image {
	return &Image{data: b}
}

func (m *Image) ByteAt(addr uint32) byte { return m.data[addr] }

func (m *Image) SetByte(addr uint32, v byte) { m.data[addr] = v }

func (m *Image) Size() uint32 { return uint32(len(m.data)) }

// Bytes returns the backing slice.
func (m *Image) Bytes() []byte { return m.data }

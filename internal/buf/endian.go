// Package buf contains helpers for endian-safe decoding and bounds checks on
// medium addresses.
package buf

import "encoding/binary"

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// PutU16LE writes v into b in little-endian order. It is a no-op when b is
// too short.
func PutU16LE(b []byte, v uint16) {
	if len(b) < 2 {
		return
	}
	binary.LittleEndian.PutUint16(b, v)
}

// U16At joins a low and a high byte into a uint16, the order in which the
// medium stores 16-bit fields.
func U16At(lo, hi byte) uint16 {
	return uint16(lo) | uint16(hi)<<8
}

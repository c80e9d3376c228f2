// Package format houses the persisted layout of the area chain: header field
// offsets, sentinel values, and the name codec. It is kept independent from
// the medium so higher-level packages decode headers in exactly one place.
package format

// Area header layout (little-endian, HeaderSize bytes):
//
//	Offset  Size  Description
//	0x00    2     next: offset from this header to the next one; equals the
//	              total cell size. 0xFFFF marks the virgin tail.
//	0x02    2     data: offset from this header to the payload. 0xFFFF marks
//	              a freed cell whose next still holds its capacity.
//	0x04    16    name: Windows-1252 bytes, NUL-terminated.
//	0x14    ...   payload
const (
	// NextOffset is the offset of the next field within a header.
	NextOffset = 0x00

	// DataOffset is the offset of the data field within a header.
	DataOffset = 0x02

	// NameOffset is the offset of the name buffer within a header.
	NameOffset = 0x04

	// NameSize is the size of the name buffer, terminator included.
	NameSize = 16

	// MaxNameLen is the number of visible name bytes kept on the medium.
	MaxNameLen = NameSize - 1

	// HeaderSize is the size of the header that prefixes every cell.
	HeaderSize = NameOffset + NameSize

	// Sentinel marks an unset 16-bit header field.
	Sentinel uint16 = 0xFFFF

	// ResetValue is the factory-reset value of every medium byte.
	ResetValue byte = 0xFF

	// NameFiller overwrites every name byte of a freed header.
	NameFiller byte = 0xFF

	// MaxPayload is the largest payload whose cell size stays below Sentinel.
	MaxPayload = int(Sentinel) - 1 - HeaderSize
)

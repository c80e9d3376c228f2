package format

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// EncodeName converts a UTF-8 name to its stored form: Windows-1252 bytes,
// truncated to MaxNameLen and NUL-padded to NameSize.
func EncodeName(name string) ([NameSize]byte, error) {
	var out [NameSize]byte
	if name == "" {
		return out, fmt.Errorf("%w: empty", ErrInvalidName)
	}
	encoded := []byte(name)
	if !isASCII(encoded) {
		var err error
		encoded, err = charmap.Windows1252.NewEncoder().Bytes(encoded)
		if err != nil {
			return out, fmt.Errorf("%w: %q: %w", ErrInvalidName, name, err)
		}
	}
	if len(encoded) > MaxNameLen {
		encoded = encoded[:MaxNameLen]
	}
	for _, c := range encoded {
		switch c {
		case 0:
			return out, fmt.Errorf("%w: %q contains NUL", ErrInvalidName, name)
		case NameFiller:
			return out, fmt.Errorf("%w: %q contains the filler byte", ErrInvalidName, name)
		}
	}
	copy(out[:], encoded)
	return out, nil
}

// DecodeName converts a stored name back to UTF-8, stopping at the first
// NUL or filler byte.
func DecodeName(b []byte) string {
	n := 0
	for n < len(b) && n < MaxNameLen && b[n] != 0 && b[n] != NameFiller {
		n++
	}
	raw := b[:n]
	if isASCII(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// isASCII reports whether every byte is below 0x80; such names are identical
// in Windows-1252 and UTF-8.
func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

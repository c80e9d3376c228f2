package buf

import "math"

// AddU32 adds a and b, returning ok = false when the result would overflow uint32.
func AddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// Within reports whether the n-byte range starting at addr lies entirely in
// [lo, hi). A zero-length range is within bounds when lo <= addr <= hi.
func Within(addr, n, lo, hi uint32) bool {
	if addr < lo || addr > hi {
		return false
	}
	end, ok := AddU32(addr, n)
	if !ok {
		return false
	}
	return end <= hi
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	if n > len(b)-off {
		return nil, false
	}
	return b[off : off+n], true
}

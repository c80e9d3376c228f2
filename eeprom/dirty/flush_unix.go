//go:build linux || freebsd

package dirty

import (
	"os"

	"golang.org/x/sys/unix"
)

// flushRanges msyncs each coalesced range. Linux accepts page-aligned
// sub-slices of the mapping.
func (t *Tracker) flushRanges(_ *os.File, data []byte) error {
	for _, r := range t.coalesce() {
		start, end, ok := clamp(r, len(data))
		if !ok {
			continue
		}
		if err := unix.Msync(data[start:end], unix.MS_SYNC); err != nil {
			return err
		}
	}
	return nil
}

// fdatasync syncs file data. fullfsync only matters on macOS.
func fdatasync(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}

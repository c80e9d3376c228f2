//go:build darwin

package dirty

import (
	"os"

	"golang.org/x/sys/unix"
)

// flushRanges syncs the whole mapping: on macOS msync needs the address
// returned by mmap, and the kernel only writes pages that are dirty anyway.
func (t *Tracker) flushRanges(_ *os.File, data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

// fdatasync uses F_FULLFSYNC when asked, plain fsync otherwise; macOS has no
// fdatasync.
func fdatasync(f *os.File, fullfsync bool) error {
	if fullfsync {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}

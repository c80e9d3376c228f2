//go:build linux || darwin || freebsd

// Package mmfile provides platform-specific helpers for mapping image files.
package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps size bytes of f read-write and shared, so stores land in the file.
// The returned release function unmaps the region; calling it twice is a no-op.
func Map(f *os.File, size int64) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: cannot map %d bytes", size)
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: mmap: %w", err)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}
	return data, release, nil
}

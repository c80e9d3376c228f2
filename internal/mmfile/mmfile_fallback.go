//go:build !linux && !darwin && !freebsd

// Package mmfile provides platform-specific helpers for mapping image files.
package mmfile

import (
	"fmt"
	"io"
	"os"
)

// Map reads size bytes of f into memory when mmap is not available. The
// release function writes the buffer back to the file.
func Map(f *os.File, size int64) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: cannot map %d bytes", size)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, size), data); err != nil {
		return nil, nil, fmt.Errorf("mmfile: read: %w", err)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		_, err := f.WriteAt(data, 0)
		data = nil
		return err
	}
	return data, release, nil
}

//go:build !linux && !freebsd && !darwin

package dirty

import "os"

// flushRanges writes the coalesced ranges back, since the image is held in
// memory rather than mapped on these platforms.
func (t *Tracker) flushRanges(f *os.File, data []byte) error {
	for _, r := range t.coalesce() {
		start, end, ok := clamp(r, len(data))
		if !ok {
			continue
		}
		if _, err := f.WriteAt(data[start:end], int64(start)); err != nil {
			return err
		}
	}
	return nil
}

func fdatasync(f *os.File, _ bool) error {
	return f.Sync()
}

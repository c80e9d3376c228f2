package dirty

import "os"

// DirtyTracker is the minimal interface for components that only need to
// report modified byte ranges (the verified I/O layer).
type DirtyTracker interface {
	// Add marks length bytes starting at off as dirty.
	Add(off, length int)
}

// Mapped is an image whose bytes can be flushed to a backing file.
type Mapped interface {
	Bytes() []byte
	File() *os.File
}

package alloc

// Status is the outcome of Free.
type Status uint8

const (
	// StatusFailed means the header was not (fully) released.
	StatusFailed Status = iota
	// StatusFreed means the area was released.
	StatusFreed
	// StatusAlreadyFreed means the header was already marked free.
	StatusAlreadyFreed
)

func (s Status) String() string {
	switch s {
	case StatusFreed:
		return "freed"
	case StatusAlreadyFreed:
		return "already freed"
	default:
		return "failed"
	}
}

// Allocator reserves and releases named areas.
//
// Implementations:
//   - FirstFit: first-fit over the header chain with whole-cell reuse
type Allocator interface {
	// Allocate reserves size payload bytes for name and returns the payload
	// address.
	Allocate(name string, size int) (uint32, error)

	// Free releases the area called name.
	Free(name string) (Status, error)
}

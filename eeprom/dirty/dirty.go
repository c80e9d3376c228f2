package dirty

import (
	"context"
	"sort"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// FlushMode controls durability guarantees of Flush.
type FlushMode int

const (
	// FlushAuto syncs the dirty pages, then syncs file data.
	FlushAuto FlushMode = iota

	// FlushDataOnly only syncs the dirty pages. The caller is responsible
	// for a later file sync.
	FlushDataOnly

	// FlushFull syncs the dirty pages and forces the file to stable storage
	// (F_FULLFSYNC on macOS).
	FlushFull
)

// Range represents a dirty byte range.
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates dirty ranges and flushes them.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	m        Mapped
	ranges   []Range // coalesced at flush time
	pageSize int64
}

// NewTracker creates a dirty tracker for the given image.
func NewTracker(m Mapped) *Tracker {
	return &Tracker{
		m:        m,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
}

// Add records a dirty range. Adjacent single-byte writes, the common case for
// verified stores, extend the previous range instead of appending.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	if n := len(t.ranges); n > 0 {
		last := &t.ranges[n-1]
		if last.Off+last.Len == int64(off) {
			last.Len += int64(length)
			return
		}
	}
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Pending reports whether there are unflushed ranges.
func (t *Tracker) Pending() bool {
	return len(t.ranges) > 0
}

// Flush writes all dirty pages to disk and, depending on mode, syncs the file.
//
// The context is checked before each phase; a cancelled flush may have synced
// some ranges but not others, and keeps all ranges pending.
func (t *Tracker) Flush(ctx context.Context, mode FlushMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(t.ranges) == 0 {
		return nil
	}

	data := t.m.Bytes()
	f := t.m.File()
	if len(data) == 0 || f == nil {
		return nil
	}

	if err := t.flushRanges(f, data); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if mode != FlushDataOnly {
		if err := fdatasync(f, mode == FlushFull); err != nil {
			return err
		}
	}

	t.ranges = t.ranges[:0]
	return nil
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns the page-aligned, coalesced ranges a flush would write.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping or
// adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize

		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}

		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			end := max(current.Off+current.Len, next.Off+next.Len)
			current.Len = end - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// clamp trims r to a buffer of n bytes.
func clamp(r Range, n int) (int, int, bool) {
	start := int(r.Off)
	end := int(r.Off + r.Len)
	if start >= n {
		return 0, 0, false
	}
	return start, min(end, n), true
}

package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/eeprom/alloc"
	"github.com/joshuapare/persistkit/eeprom/area"
	"github.com/joshuapare/persistkit/eeprom/directory"
	"github.com/joshuapare/persistkit/eeprom/dirty"
	"github.com/joshuapare/persistkit/eeprom/verify"
	"github.com/joshuapare/persistkit/eeprom/vio"
	"github.com/joshuapare/persistkit/internal/format"
)

// Status is the outcome of Free.
type Status = alloc.Status

// Free outcomes.
const (
	StatusFailed       = alloc.StatusFailed
	StatusFreed        = alloc.StatusFreed
	StatusAlreadyFreed = alloc.StatusAlreadyFreed
)

var (
	// ErrClosed is returned by every method of a closed Store.
	ErrClosed = errors.New("persist: store closed")

	// ErrNotFound indicates that no area carries the requested name.
	ErrNotFound = directory.ErrNotFound
)

// AreaInfo describes one cell of the chain.
type AreaInfo struct {
	Name   string `json:"name,omitempty"`
	Header uint32 `json:"header"`
	Data   uint32 `json:"data"`
	Size   int    `json:"size"` // payload bytes; the reusable capacity for a freed cell
	Freed  bool   `json:"freed,omitempty"`
}

// Store manages the named areas of one region.
type Store struct {
	mu     sync.Mutex
	m      eeprom.Medium
	region eeprom.Region
	io     *vio.IO
	dir    *directory.Directory
	alloc  *alloc.FirstFit
	area   *area.IO
	log    *slog.Logger

	// Set by OpenFile.
	file    *eeprom.File
	tracker *dirty.Tracker
	closed  bool
}

// New returns a store over region r of m. Nothing is written.
func New(m eeprom.Medium, r eeprom.Region, opts *Options) (*Store, error) {
	if err := r.Validate(m); err != nil {
		return nil, err
	}
	var vopts []vio.Option
	if dt := opts.tracker(); dt != nil {
		vopts = append(vopts, vio.WithTracker(dt))
	}
	v := vio.New(m, vopts...)
	dir := directory.New(v, r)
	return &Store{
		m:      m,
		region: r,
		io:     v,
		dir:    dir,
		alloc:  alloc.New(v, dir),
		area:   area.New(v, dir),
		log:    opts.logger().With("region", r.String()),
	}, nil
}

// OpenFile maps an image file and returns a store over the region described
// by l. Modified pages are flushed by Flush and Close.
func OpenFile(path string, l eeprom.Layout, opts *Options) (*Store, error) {
	f, err := eeprom.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := l.Region(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	o := Options{Logger: opts.logger(), Tracker: opts.tracker()}
	var tr *dirty.Tracker
	if o.Tracker == nil {
		tr = dirty.NewTracker(f)
		o.Tracker = tr
	}
	s, err := New(f, r, &o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.file = f
	s.tracker = tr
	s.log = s.log.With("path", path)
	return s, nil
}

// Region returns the allocatable region.
func (s *Store) Region() eeprom.Region { return s.region }

// IsVirgin reports whether the whole medium still holds the reset value.
func (s *Store) IsVirgin() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	return s.io.IsVirgin(), nil
}

// Allocate reserves size payload bytes for name and returns the payload
// address.
func (s *Store) Allocate(name string, size int) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	addr, err := s.alloc.Allocate(name, size)
	if err != nil {
		s.logFailure("allocate", err, slog.String("name", name), slog.Int("size", size))
		return 0, err
	}
	s.log.Debug("allocate", "name", name, "size", size, "addr", addr)
	return addr, nil
}

// Free releases area name and scrubs its payload.
//
// Freeing is idempotent but not silent: a name with no area, whether never
// allocated or already freed, returns StatusAlreadyFreed together with an
// error wrapping ErrNotFound. Callers that only need the area gone should
// test the status:
//
//	if st, err := s.Free(name); st != persist.StatusAlreadyFreed && err != nil {
//	    return err
//	}
//
// A failed header update returns StatusFailed; a failed scrub returns
// StatusFreed with an error wrapping alloc.ErrPayloadScrub.
func (s *Store) Free(name string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return StatusFailed, ErrClosed
	}
	st, err := s.alloc.Free(name)
	switch {
	case st == StatusAlreadyFreed:
		s.log.Debug("free", "name", name, "status", st.String())
	case err != nil:
		s.logFailure("free", err, slog.String("name", name), slog.String("status", st.String()))
	default:
		s.log.Debug("free", "name", name, "status", st.String())
	}
	return st, err
}

// ReadArea returns the payload of area name, which must be exactly size
// bytes.
func (s *Store) ReadArea(name string, size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.area.Read(name, size)
}

// WriteArea stores payload as the content of area name and returns the
// number of bytes stored.
func (s *Store) WriteArea(name string, payload []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	before := s.io.Writes()
	n, err := s.area.Write(name, payload)
	if err != nil {
		s.logFailure("write", err, slog.String("name", name))
		return n, err
	}
	s.log.Debug("write", "name", name, "size", n, "changed", s.io.Writes()-before)
	return n, nil
}

// Exists reports whether area name is allocated.
func (s *Store) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.dir.Exists(name)
}

// HeaderAddressOf returns the header address of area name.
func (s *Store) HeaderAddressOf(name string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.dir.FindHeader(name)
}

// DataAddressOf returns the payload address of area name.
func (s *Store) DataAddressOf(name string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.dir.FindData(name)
}

// SizeOf returns the stored payload size of area name.
func (s *Store) SizeOf(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.area.Size(name)
}

// Areas lists every allocated or freed cell in chain order.
func (s *Store) Areas() ([]AreaInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	entries, err := s.dir.Entries()
	if err != nil {
		return nil, err
	}
	out := make([]AreaInfo, 0, len(entries))
	for _, e := range entries {
		switch e.State() {
		case format.StateAllocated:
			out = append(out, AreaInfo{
				Name:   e.Hdr.NameString(),
				Header: e.Header,
				Data:   e.Header + uint32(e.Hdr.Data),
				Size:   e.Hdr.PayloadSize(),
			})
		case format.StateFreed:
			out = append(out, AreaInfo{
				Header: e.Header,
				Data:   e.Data,
				Size:   e.Hdr.Capacity() - format.HeaderSize,
				Freed:  true,
			})
		}
	}
	return out, nil
}

// Dump returns n raw medium bytes starting at addr. The range may extend
// outside the region.
func (s *Store) Dump(addr uint32, n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.io.Read(addr, n)
}

// Verify checks the chain and returns a *verify.ValidationError for the
// first inconsistency.
func (s *Store) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return verify.Chain(s.io, s.region)
}

// Stats summarizes the occupancy of the region.
func (s *Store) Stats() (verify.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return verify.Stats{}, ErrClosed
	}
	return verify.Collect(s.io, s.region)
}

// Flush syncs modified pages of a file-backed store. It is a no-op for other
// media.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.flush(ctx)
}

func (s *Store) flush(ctx context.Context) error {
	if s.tracker == nil || !s.tracker.Pending() {
		return nil
	}
	if err := s.tracker.Flush(ctx, dirty.FlushAuto); err != nil {
		return fmt.Errorf("persist: flush: %w", err)
	}
	s.log.Debug("flush")
	return nil
}

// Close flushes a file-backed store and releases the file. Closing twice is
// a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.flush(context.Background())
	if s.file != nil {
		err = errors.Join(err, s.file.Close())
		s.file = nil
	}
	return err
}

// logFailure reports verification failures at Warn and everything else at
// Debug.
func (s *Store) logFailure(op string, err error, attrs ...slog.Attr) {
	level := slog.LevelDebug
	var we *vio.WriteError
	if errors.As(err, &we) {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("addr", fmt.Sprintf("0x%04X", we.Addr)), slog.Int("written", we.Written))
	}
	attrs = append(attrs, slog.String("err", err.Error()))
	s.log.LogAttrs(context.Background(), level, op, attrs...)
}

package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/eeprom/alloc"
	"github.com/joshuapare/persistkit/eeprom/area"
	"github.com/joshuapare/persistkit/eeprom/directory"
	"github.com/joshuapare/persistkit/eeprom/verify"
	"github.com/joshuapare/persistkit/eeprom/vio"
	"github.com/joshuapare/persistkit/internal/format"
	"github.com/joshuapare/persistkit/internal/testutil"
)

var testRegion = eeprom.Region{Start: 16, End: 512}

func newStore(t *testing.T, m eeprom.Medium, opts *Options) *Store {
	t.Helper()
	s, err := New(m, testRegion, opts)
	require.NoError(t, err)
	return s
}

func TestNew_InvalidRegion(t *testing.T) {
	_, err := New(eeprom.NewImage(64), eeprom.Region{Start: 0, End: 65}, nil)
	require.ErrorIs(t, err, eeprom.ErrRegion)
}

func TestStore_Lifecycle(t *testing.T) {
	m := eeprom.NewImage(512)
	s := newStore(t, m, nil)

	virgin, err := s.IsVirgin()
	require.NoError(t, err)
	require.True(t, virgin)

	addr, err := s.Allocate("boot-count", 4)
	require.NoError(t, err)
	require.Equal(t, testRegion.Start+format.HeaderSize, addr)

	virgin, err = s.IsVirgin()
	require.NoError(t, err)
	require.False(t, virgin)
	require.True(t, s.Exists("boot-count"))

	hdr, err := s.HeaderAddressOf("boot-count")
	require.NoError(t, err)
	require.Equal(t, testRegion.Start, hdr)
	data, err := s.DataAddressOf("boot-count")
	require.NoError(t, err)
	require.Equal(t, addr, data)

	n, err := s.WriteArea("boot-count", []byte{7, 0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, 4, n)

	got, err := s.ReadArea("boot-count", 4)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 0, 0, 0}, got)

	status, err := s.Free("boot-count")
	require.NoError(t, err)
	require.Equal(t, StatusFreed, status)
	require.False(t, s.Exists("boot-count"))

	virgin, err = s.IsVirgin()
	require.NoError(t, err)
	require.True(t, virgin)

	status, err = s.Free("boot-count")
	require.ErrorIs(t, err, directory.ErrNotFound)
	require.Equal(t, StatusAlreadyFreed, status)
}

func TestStore_Errors(t *testing.T) {
	s := newStore(t, eeprom.NewImage(512), nil)

	_, err := s.Allocate("a", 10)
	require.NoError(t, err)
	_, err = s.Allocate("a", 3)
	require.ErrorIs(t, err, alloc.ErrNameInUse)
	_, err = s.Allocate("b", 1000)
	require.ErrorIs(t, err, alloc.ErrNoSpace)
	_, err = s.ReadArea("a", 9)
	require.ErrorIs(t, err, area.ErrSizeMismatch)
	_, err = s.ReadArea("zz", 1)
	require.ErrorIs(t, err, directory.ErrNotFound)
	_, err = s.HeaderAddressOf("zz")
	require.ErrorIs(t, err, directory.ErrNotFound)
	_, err = s.DataAddressOf("zz")
	require.ErrorIs(t, err, directory.ErrNotFound)
}

func TestStore_BadSizesReturnErrors(t *testing.T) {
	m := testutil.NewCounting(eeprom.NewImage(512))
	s := newStore(t, m, nil)

	_, err := s.Allocate("A", 8)
	require.NoError(t, err)

	for _, size := range []int{-1, 0, 7, 9, 1 << 40} {
		var got []byte
		require.NotPanics(t, func() { got, err = s.ReadArea("A", size) }, "size %d", size)
		require.ErrorIs(t, err, area.ErrSizeMismatch, "size %d", size)
		require.Nil(t, got)
	}

	var raw []byte
	require.NotPanics(t, func() { raw, err = s.Dump(0, -1) })
	require.ErrorIs(t, err, vio.ErrOutOfRange)
	require.Nil(t, raw)

	m.Reset()
	_, err = s.Dump(0, 1<<40)
	require.ErrorIs(t, err, vio.ErrOutOfRange)
	require.Zero(t, m.Reads, "rejected before touching the medium")
}

func TestStore_AreasAndStats(t *testing.T) {
	s := newStore(t, eeprom.NewImage(512), nil)

	for _, a := range []struct {
		name string
		size int
	}{{"alpha", 8}, {"beta", 12}, {"gamma", 2}} {
		_, err := s.Allocate(a.name, a.size)
		require.NoError(t, err)
	}
	_, err := s.Free("beta")
	require.NoError(t, err)

	areas, err := s.Areas()
	require.NoError(t, err)
	require.Len(t, areas, 3)
	assert.Equal(t, AreaInfo{Name: "alpha", Header: 16, Data: 36, Size: 8}, areas[0])
	assert.Equal(t, AreaInfo{Header: 44, Data: 64, Size: 12, Freed: true}, areas[1])
	assert.Equal(t, AreaInfo{Name: "gamma", Header: 76, Data: 96, Size: 2}, areas[2])

	require.NoError(t, s.Verify())

	st, err := s.Stats()
	require.NoError(t, err)
	require.Equal(t, 2, st.Live)
	require.Equal(t, 1, st.Freed)
	require.Equal(t, 12, st.LargestFreed)
	require.Equal(t, int(testRegion.End)-98, st.VirginBytes)

	// Reuse hands out the whole freed cell.
	_, err = s.Allocate("delta", 5)
	require.NoError(t, err)
	n, err := s.SizeOf("delta")
	require.NoError(t, err)
	require.Equal(t, 12, n)
}

func TestStore_Dump(t *testing.T) {
	s := newStore(t, eeprom.NewImage(512), nil)

	_, err := s.Allocate("ab", 1)
	require.NoError(t, err)

	raw, err := s.Dump(testRegion.Start, format.HeaderSize)
	require.NoError(t, err)
	require.Equal(t, []byte{21, 0, 20, 0, 'a', 'b', 0}, raw[:7])

	_, err = s.Dump(500, 13)
	require.ErrorIs(t, err, vio.ErrOutOfRange)
}

func TestStore_VerifyReportsCorruption(t *testing.T) {
	m := eeprom.NewImage(512)
	s := newStore(t, m, nil)

	_, err := s.Allocate("alpha", 8)
	require.NoError(t, err)
	m.SetByte(testRegion.Start+format.DataOffset, 0x30)

	var ve *verify.ValidationError
	require.True(t, errors.As(s.Verify(), &ve))
	require.Equal(t, "DataOffset", ve.Type)
}

func TestStore_LogsWriteFailures(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	m := testutil.NewFaulty(eeprom.NewImage(512))
	s := newStore(t, m, &Options{Logger: logger})

	addr, err := s.Allocate("cfg", 4)
	require.NoError(t, err)
	require.Empty(t, logs.String(), "successful operations log at Debug")

	m.Stick(addr + 1)
	n, err := s.WriteArea("cfg", []byte{1, 2, 3, 4})
	require.ErrorIs(t, err, vio.ErrWrite)
	require.Equal(t, 1, n)

	out := logs.String()
	require.Contains(t, out, `"level":"WARN"`)
	require.Contains(t, out, `"msg":"write"`)
	require.Contains(t, out, `"name":"cfg"`)
	require.Contains(t, out, `"written":1`)
}

func TestStore_RepeatedFreeIsNotLoggedAsFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newStore(t, eeprom.NewImage(512), &Options{Logger: logger})

	_, err := s.Allocate("cfg", 4)
	require.NoError(t, err)
	status, err := s.Free("cfg")
	require.NoError(t, err)
	require.Equal(t, StatusFreed, status)

	for _, name := range []string{"cfg", "never"} {
		status, err = s.Free(name)
		require.Equal(t, StatusAlreadyFreed, status, name)
		require.ErrorIs(t, err, ErrNotFound, name)
	}
	out := logs.String()
	require.Contains(t, out, `"status":"already freed"`)
	require.NotContains(t, out, `"err"`)
	require.NotContains(t, out, `"level":"WARN"`)
}

type recordingTracker struct {
	ranges [][2]int
}

func (r *recordingTracker) Add(off, length int) {
	r.ranges = append(r.ranges, [2]int{off, length})
}

func TestStore_TrackerSeesWrites(t *testing.T) {
	tr := &recordingTracker{}
	s := newStore(t, eeprom.NewImage(512), &Options{Tracker: tr})

	_, err := s.Allocate("x", 2)
	require.NoError(t, err)
	require.NotEmpty(t, tr.ranges)

	tr.ranges = nil
	_, err = s.WriteArea("x", []byte{0xFF, 0xFF})
	require.NoError(t, err)
	require.Empty(t, tr.ranges, "unchanged bytes are not written")

	_, err = s.WriteArea("x", []byte{0xFF, 0x01})
	require.NoError(t, err)
	require.Equal(t, [][2]int{{int(testRegion.Start) + format.HeaderSize + 1, 1}}, tr.ranges)
}

func TestStore_Closed(t *testing.T) {
	s := newStore(t, eeprom.NewImage(512), nil)
	require.NoError(t, s.Flush(context.Background()), "flush is a no-op without a file")
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Allocate("a", 1)
	require.ErrorIs(t, err, ErrClosed)
	_, err = s.Free("a")
	require.ErrorIs(t, err, ErrClosed)
	_, err = s.ReadArea("a", 1)
	require.ErrorIs(t, err, ErrClosed)
	_, err = s.WriteArea("a", []byte{1})
	require.ErrorIs(t, err, ErrClosed)
	_, err = s.Areas()
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Verify(), ErrClosed)
	require.ErrorIs(t, s.Flush(context.Background()), ErrClosed)
	require.False(t, s.Exists("a"))
}

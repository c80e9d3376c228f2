package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/eeprom/directory"
	"github.com/joshuapare/persistkit/eeprom/vio"
	"github.com/joshuapare/persistkit/internal/format"
)

const (
	// testStart mirrors a board with ten bytes of fixed configuration.
	testStart = 10
	// testImageSize is the medium size used by most tests.
	testImageSize = 256
)

type fixture struct {
	m   eeprom.Medium
	io  *vio.IO
	dir *directory.Directory
	fa  *FirstFit
}

// newFixture builds an allocator over [testStart, end) of m.
func newFixture(t testing.TB, m eeprom.Medium, end uint32) *fixture {
	t.Helper()
	r := eeprom.Region{Start: testStart, End: end}
	require.NoError(t, r.Validate(m))
	io := vio.New(m)
	dir := directory.New(io, r)
	return &fixture{m: m, io: io, dir: dir, fa: New(io, dir)}
}

func newImageFixture(t testing.TB) *fixture {
	t.Helper()
	return newFixture(t, eeprom.NewImage(testImageSize), testImageSize)
}

// header reads the header of the cell whose payload starts at dataAddr.
func (f *fixture) header(t testing.TB, dataAddr uint32) format.Header {
	t.Helper()
	_, h, err := f.dir.HeaderAt(dataAddr)
	require.NoError(t, err)
	return h
}

// requireVirgin asserts that n bytes from addr hold the reset value.
func (f *fixture) requireVirgin(t testing.TB, addr uint32, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.Equal(t, format.ResetValue, f.m.ByteAt(addr+uint32(i)), "byte 0x%X", addr+uint32(i))
	}
}

//go:build linux || darwin || freebsd

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xde, 0xad, 0xbe, 0xef, 0x42}, 0o644))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()

	data, release, err := Map(f, 5)
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef, 0x42}, data)

	data[4] = 0x24
	require.NoError(t, release())
	require.NoError(t, release(), "second release must be a no-op")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, byte(0x24), got[4])
}

func TestMapRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, _, err = Map(f, 0)
	require.Error(t, err)
}

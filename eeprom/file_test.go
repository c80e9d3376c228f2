//go:build linux || darwin

package eeprom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateWritesVirginImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.img")

	m, err := Create(path, 512)
	require.NoError(t, err)
	require.Equal(t, uint32(512), m.Size())
	require.Equal(t, byte(0xFF), m.ByteAt(0))
	require.Equal(t, byte(0xFF), m.ByteAt(511))

	m.SetByte(100, 0x5A)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close must be harmless")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, 512)
	require.Equal(t, byte(0x5A), raw[100])
}

func TestCreateRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.img")
	require.NoError(t, os.WriteFile(path, []byte{1}, 0o644))

	_, err := Create(path, 16)
	require.ErrorIs(t, err, os.ErrExist)
}

func TestOpenRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.img")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Open(path)
	require.Error(t, err)
}

func TestOpenSeesExistingContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.img")
	require.NoError(t, os.WriteFile(path, []byte{0xAA, 0xBB}, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, []byte{0xAA, 0xBB}, m.Bytes())
	require.NotNil(t, m.File())
}

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/persistkit/eeprom/alloc"
	"github.com/joshuapare/persistkit/eeprom/area"
)

func TestInitRefusesExistingFile(t *testing.T) {
	path := testImage(t, 256)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, 256)
	require.Equal(t, strings.Repeat("\xff", 256), string(raw))

	require.Error(t, runInit([]string{path}))
}

func TestAllocWriteRead(t *testing.T) {
	path := testImage(t, 256)
	startAddr = 16

	out, err := captureOutput(t, func() error {
		return runAlloc([]string{path, "greeting", "5"})
	})
	require.NoError(t, err)
	require.Contains(t, out, `Allocated "greeting": 5 bytes at 0x0024`)

	writeString = "hello"
	out, err = captureOutput(t, func() error {
		return runWrite([]string{path, "greeting"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "Wrote 5 bytes")

	out, err = captureOutput(t, func() error {
		return runRead([]string{path, "greeting"})
	})
	require.NoError(t, err)
	require.Equal(t, "hello", out)

	readHex = true
	out, err = captureOutput(t, func() error {
		return runRead([]string{path, "greeting"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "68 65 6c 6c 6f")
}

func TestAllocErrors(t *testing.T) {
	path := testImage(t, 128)
	quiet = true

	require.NoError(t, runAlloc([]string{path, "a", "10"}))
	require.ErrorIs(t, runAlloc([]string{path, "a", "10"}), alloc.ErrNameInUse)
	require.ErrorIs(t, runAlloc([]string{path, "b", "500"}), alloc.ErrNoSpace)
	require.Error(t, runAlloc([]string{path, "c", "ten"}))
}

func TestWriteSizeMismatch(t *testing.T) {
	path := testImage(t, 128)
	quiet = true

	require.NoError(t, runAlloc([]string{path, "cfg", "4"}))
	writeHex = "0102"
	require.ErrorIs(t, runWrite([]string{path, "cfg"}), area.ErrSizeMismatch)

	writeHex = ""
	require.Error(t, runWrite([]string{path, "cfg"}), "a payload source is required")

	payload := filepath.Join(t.TempDir(), "cfg.bin")
	require.NoError(t, os.WriteFile(payload, []byte{1, 2, 3, 4}, 0o644))
	writeFile = payload
	require.NoError(t, runWrite([]string{path, "cfg"}))
}

func TestFreeAndList(t *testing.T) {
	path := testImage(t, 256)
	quiet = true
	for _, name := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, runAlloc([]string{path, name, "8"}))
	}
	require.NoError(t, runFree([]string{path, "beta"}))
	quiet = false

	out, err := captureOutput(t, func() error {
		return runFree([]string{path, "beta"})
	})
	require.NoError(t, err, "freeing twice is not an error")
	require.Contains(t, out, "beta: already freed")

	out, err = captureOutput(t, func() error {
		return runList([]string{path})
	})
	require.NoError(t, err)
	require.Contains(t, out, "alpha")
	require.Contains(t, out, "gamma")
	require.NotContains(t, out, "<freed>")

	listFreed = true
	jsonOut = true
	out, err = captureOutput(t, func() error {
		return runList([]string{path})
	})
	require.NoError(t, err)

	var areas []struct {
		Name  string `json:"name"`
		Size  int    `json:"size"`
		Freed bool   `json:"freed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &areas))
	require.Len(t, areas, 3)
	require.Equal(t, "alpha", areas[0].Name)
	require.True(t, areas[1].Freed)
	require.Equal(t, 8, areas[1].Size)
}

func TestHeaderAndDump(t *testing.T) {
	path := testImage(t, 128)
	quiet = true
	require.NoError(t, runAlloc([]string{path, "ab", "2"}))
	quiet = false

	jsonOut = true
	out, err := captureOutput(t, func() error {
		return runHeader([]string{path, "ab"})
	})
	require.NoError(t, err)

	var h headerResult
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	require.Equal(t, "ab", h.Name)
	require.Equal(t, uint32(0), h.Header)
	require.Equal(t, uint32(20), h.Data)
	require.Equal(t, uint16(22), h.Next)
	require.Equal(t, "allocated", h.State)
	require.True(t, strings.HasPrefix(h.Raw, "16001400616200"))

	jsonOut = false
	dumpLen = 4
	out, err = captureOutput(t, func() error {
		return runDump(nil, []string{path})
	})
	require.NoError(t, err)
	require.Contains(t, out, "00000000  16 00 14 00")
}

func TestHexDumpOffsets(t *testing.T) {
	data := make([]byte, 20)
	out := hexDump(0x40, data)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "00000040  00 00"))
	require.True(t, strings.HasPrefix(lines[1], "00000050  00 00"))
}

func TestInfoAndVerify(t *testing.T) {
	path := testImage(t, 512)
	startAddr = 32
	quiet = true
	require.NoError(t, runAlloc([]string{path, "x", "10"}))
	quiet = false

	jsonOut = true
	out, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	require.NoError(t, err)

	var info infoResult
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.False(t, info.Virgin)
	require.Equal(t, 1, info.Stats.Live)
	require.Equal(t, 512-32-30, info.Stats.VirginBytes)

	jsonOut = false
	out, err = captureOutput(t, func() error {
		return runVerify([]string{path})
	})
	require.NoError(t, err)
	require.Contains(t, out, "Chain consistent")

	// A stray byte in unclaimed space.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[500] = 0
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	out, err = captureOutput(t, func() error {
		return runVerify([]string{path})
	})
	require.Error(t, err)
	require.Contains(t, out, "VirginTail")
}

func TestLayoutFile(t *testing.T) {
	path := testImage(t, 512)
	layoutFile := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(layoutFile, []byte("fixed: 64\nreserved:\n  - name: calib\n    size: 128\n"), 0o644))
	layoutPath = layoutFile
	jsonOut = true

	out, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	require.NoError(t, err)

	var info infoResult
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, uint32(64), info.Stats.Region.Start)
	require.Equal(t, uint32(384), info.Stats.Region.End)
}

func TestVersion(t *testing.T) {
	resetFlags()

	out, err := captureOutput(t, runVersion)
	require.NoError(t, err)
	require.Contains(t, out, "persistctl dev")
	require.Contains(t, out, "header: 20 bytes, names up to 15 bytes")

	jsonOut = true
	out, err = captureOutput(t, runVersion)
	require.NoError(t, err)

	var v versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Equal(t, "dev", v.Version)
	require.Equal(t, 20, v.HeaderSize)
	require.NotEmpty(t, v.Go)
}

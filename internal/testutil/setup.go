package testutil

import (
	"path/filepath"
	"testing"

	"github.com/joshuapare/persistkit/eeprom"
)

// SetupImageFile creates a virgin image file of size bytes in a temporary
// directory and opens it. Returns the image, its path, and a cleanup function.
//
// Example:
//
//	img, path, cleanup := testutil.SetupImageFile(t, 4096)
//	defer cleanup()
func SetupImageFile(t testing.TB, size int) (*eeprom.File, string, func()) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "eeprom.img")
	img, err := eeprom.Create(path, size)
	if err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}

	cleanup := func() {
		img.Close()
	}
	return img, path, cleanup
}

// Fill sets n bytes starting at addr to v, bypassing any verification layer.
func Fill(m eeprom.Medium, addr uint32, v byte, n int) {
	for i := 0; i < n; i++ {
		m.SetByte(addr+uint32(i), v)
	}
}

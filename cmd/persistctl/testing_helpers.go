package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores every global and command flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut, noColor = false, false, false, true
	startAddr, endAddr, layoutPath = 0, 0, ""
	initSize = 1024
	readHex = false
	writeHex, writeFile, writeString = "", "", ""
	listFreed = false
	dumpAddr, dumpLen = 0, 0
}

// testImage creates a virgin image of size bytes and returns its path.
func testImage(t *testing.T, size int) string {
	t.Helper()
	resetFlags()
	path := filepath.Join(t.TempDir(), "board.img")
	initSize = size
	quiet = true
	if err := runInit([]string{path}); err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	resetFlags()
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

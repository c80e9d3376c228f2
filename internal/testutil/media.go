// Package testutil provides instrumented media and fixtures for tests.
package testutil

import "github.com/joshuapare/persistkit/eeprom"

// CountingMedium wraps a medium and counts physical reads and writes.
type CountingMedium struct {
	eeprom.Medium
	Reads  int
	Writes int
}

// NewCounting wraps m.
func NewCounting(m eeprom.Medium) *CountingMedium {
	return &CountingMedium{Medium: m}
}

func (c *CountingMedium) ByteAt(addr uint32) byte {
	c.Reads++
	return c.Medium.ByteAt(addr)
}

func (c *CountingMedium) SetByte(addr uint32, v byte) {
	c.Writes++
	c.Medium.SetByte(addr, v)
}

// Reset zeroes both counters.
func (c *CountingMedium) Reset() {
	c.Reads, c.Writes = 0, 0
}

// FaultyMedium simulates worn-out cells. Writes to a stuck address are
// silently dropped, so the verifying read-back sees the old value.
type FaultyMedium struct {
	eeprom.Medium
	stuck map[uint32]bool

	// FailAfter, when positive, makes every write after the first FailAfter
	// successful ones fail.
	FailAfter int
	writes    int
}

// NewFaulty wraps m with the given stuck addresses.
func NewFaulty(m eeprom.Medium, stuck ...uint32) *FaultyMedium {
	f := &FaultyMedium{Medium: m, stuck: make(map[uint32]bool, len(stuck))}
	for _, a := range stuck {
		f.stuck[a] = true
	}
	return f
}

// Stick marks addr as unwritable.
func (f *FaultyMedium) Stick(addr uint32) {
	f.stuck[addr] = true
}

// Heal makes every address writable again and clears FailAfter.
func (f *FaultyMedium) Heal() {
	clear(f.stuck)
	f.FailAfter = 0
}

func (f *FaultyMedium) SetByte(addr uint32, v byte) {
	f.writes++
	if f.stuck[addr] {
		return
	}
	if f.FailAfter > 0 && f.writes > f.FailAfter {
		return
	}
	f.Medium.SetByte(addr, v)
}

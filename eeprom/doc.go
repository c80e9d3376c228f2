// Package eeprom models the raw byte-addressable medium the area allocator
// manages, and the region of it the allocator owns.
//
// # Overview
//
// A Medium is the narrow driver interface the allocator consumes: read one
// byte, write one byte, report the size. Two implementations ship here:
//
//   - Image: a heap-backed medium, virgin (all 0xFF) when created
//   - File: an image file mapped read-write, so stores land on disk
//
// # Memory Map
//
// The allocator owns the half-open range [Region.Start, Region.End). Bytes in
// front of it hold fixed-size configuration, bytes after it hold trailing
// reserved regions whose sizes may themselves be stored on the medium:
//
//	+---------------+ 0
//	|  fixed data   |
//	+---------------+ Region.Start
//	|  area chain   |
//	|      |        |
//	|      v        |
//	+---------------+ Region.End
//	|   reserved    |
//	+---------------+ Medium.Size()
//
// Layout derives a Region from such a description.
//
// # Thread Safety
//
// Media are not thread-safe. Callers must serialize access externally or go
// through pkg/persist, which holds a single lock.
package eeprom

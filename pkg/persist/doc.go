// Package persist is the public entry point for named persistent areas on a
// byte-addressable medium such as an EEPROM or an image file standing in
// for one.
//
// # Overview
//
// A Store manages one allocatable region of a medium. Inside the region,
// areas are identified by short names (up to 15 bytes) and hold a fixed-size
// payload chosen at allocation time. Everything the store knows lives on the
// medium itself, so a Store can be dropped and reopened at any time.
//
// # Quick Start
//
// In memory:
//
//	m := eeprom.NewImage(1024)
//	st, err := persist.New(m, eeprom.Region{Start: 16, End: 1024}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := st.Allocate("wifi-ssid", 32); err != nil {
//	    log.Fatal(err)
//	}
//	_, err = st.WriteArea("wifi-ssid", ssid[:32])
//
// Backed by an image file, flushed on Close:
//
//	st, err := persist.OpenFile("board.img", eeprom.Layout{Fixed: 16}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
// # Payload Sizes
//
// Reads and writes always cover the whole payload. A freed cell is reused
// whole, so an area may hold more bytes than were requested; SizeOf reports
// the stored size.
//
// # Error Handling
//
// Errors wrap the sentinels of the eeprom packages and can be tested with
// errors.Is: alloc.ErrNameInUse, alloc.ErrNoSpace, area.ErrSizeMismatch,
// ErrNotFound, and vio.ErrWrite for a byte that failed to verify. Partial
// writes are never retried. Free of an unknown name reports
// StatusAlreadyFreed alongside ErrNotFound.
//
// # Thread Safety
//
// Store methods are serialized by a single mutex. The packages below it are
// not safe for concurrent use on their own.
package persist

// Package dirty tracks which bytes of an image file have been written and
// flushes just those pages to disk.
//
// # Overview
//
// Verified writes report every byte range they modify to a DirtyTracker. The
// Tracker implementation keeps those ranges, page-aligns and coalesces them
// at flush time, and syncs them with msync (unix) or writes them back
// (platforms without a shared mapping).
//
// # Usage
//
//	img, _ := eeprom.Open("board.img")
//	tracker := dirty.NewTracker(img)
//	io := vio.New(img, vio.WithTracker(tracker))
//	// ... allocate, write ...
//	err := tracker.Flush(ctx, dirty.FlushAuto)
//
// # Range Coalescing
//
// Ranges are rounded out to 4 KiB pages, sorted and merged:
//
//	Dirty pages: [0, 1, 2, 5, 6] → Ranges: [0x0-0x3000, 0x5000-0x7000]
//
// # Thread Safety
//
// Tracker instances are not thread-safe.
package dirty

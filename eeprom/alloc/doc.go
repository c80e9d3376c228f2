// Package alloc claims and releases cells in the area chain.
//
// # Overview
//
// The allocator has no side index: the header chain on the medium is the only
// record of what is allocated. Every operation walks it from Region.Start.
//
//   - Allocate(name, size): first-fit search, then Claim
//   - FindFree(size): first cell that can hold size payload bytes
//   - Claim(name, addr, size): write a populated header into a free cell
//   - Free(name): clear the header and scrub the payload
//
// # Cell Reuse
//
// A freed cell keeps its total size in the header's next field and is handed
// out whole to any later request that fits; it is never split and never grows.
// Only the virgin tail of the chain can be sized to the request:
//
//	[alpha 30B][freed 40B][beta 24B][virgin ........................]
//	Allocate("gamma", 12) → reuses the 40B cell (payload capacity 20)
//	Allocate("delta", 30) → skips it, claims 50B from the virgin tail
//
// Freeing the last live cell of the chain returns it to virgin state, so the
// tail can be resized by the next allocation.
//
// # Failure Handling
//
// Header writes go through verified I/O. A failed verification is returned as
// is; the allocator neither retries nor rolls back. Free distinguishes a
// failed header update (ErrHeaderWrite, the chain may be inconsistent) from a
// failed payload scrub (ErrPayloadScrub, the area is released but stale bytes
// remain).
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must serialize access; the
// pkg/persist Store does so with a single lock.
package alloc

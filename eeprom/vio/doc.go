// Package vio implements verified byte-range I/O on top of a raw medium.
//
// Every byte written is read back immediately; a mismatch stops the operation
// and is reported as a *WriteError carrying the number of bytes that were
// stored correctly before the failure. Bytes that already hold their target
// value are never rewritten, which keeps wear on the medium to a minimum.
//
// There are no retries: on this class of medium a failed write usually means
// the cell is worn out, and the caller must learn about it.
package vio

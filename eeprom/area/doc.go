// Package area reads and writes the payload of named areas.
//
// A payload is always transferred whole: the caller states the size it
// expects and the operation fails with ErrSizeMismatch, touching nothing,
// when the size stored in the header differs. Writes go through verified
// I/O, so rewriting an unchanged payload costs no medium writes.
//
// Area headers are only read here, never written.
package area

// Package directory walks the chain of area headers in the allocatable region
// and resolves area names to addresses.
//
// Headers are laid out back to back from Region.Start; the header following
// the one at address A sits at A + next(A). A header whose next field is
// 0xFFFF is the virgin tail and ends the chain. The walk never reads at or
// beyond Region.End.
package directory

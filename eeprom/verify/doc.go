// Package verify checks the structural invariants of an area chain.
//
// # Overview
//
// The allocator trusts the chain it finds on the medium. These checks are
// for tooling and tests that want to know whether a region is consistent
// before (or after) mutating it:
//   - Chain links: every next offset advances by at least a header
//   - Cell bounds: no cell extends past Region.End
//   - Headers: live cells have data == HeaderSize and a non-empty name, no
//     header has a virgin next with a concrete data field
//   - Names: live names are unique
//   - Tail: the virgin tail and everything after it up to Region.End hold
//     the reset value
//
// # Quick Start
//
//	if err := verify.Chain(io, region); err != nil {
//	    var ve *verify.ValidationError
//	    if errors.As(err, &ve) {
//	        fmt.Printf("%s at 0x%X\n", ve.Type, ve.Offset)
//	    }
//	}
//
// Collect summarizes occupancy and fingerprints the region contents:
//
//	st, err := verify.Collect(io, region)
//	fmt.Printf("%d live, %d bytes left, fp=%016x\n", st.Live, st.VirginBytes, st.Fingerprint)
package verify

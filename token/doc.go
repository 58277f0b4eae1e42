// Package token implements the cell-local token wire format: a fixed-arity,
// tab-delimited string encoding with a type prefix per token kind, plus the
// pure refresh transitions that derive new access and refresh credentials
// from an existing refresh token.
//
// # Wire format
//
// Every local kind serializes as
//
//	<prefix> + field0 TAB field1 TAB ... TAB fieldN-1
//
// where the prefix selects the kind ("RA~", "AA~", "AL~", "RT~") and the
// field count is fixed per kind. The issued-at field is written with its
// decimal digits reversed. The transform is legacy wire compatibility and
// carries no cryptographic meaning, but it must be reproduced exactly so
// previously issued tokens keep parsing.
//
// # Validity
//
// A token is valid at time T (milliseconds since epoch) iff
// T < IssuedAt + Lifespan. Parse never reads a clock; expiry is always the
// caller's check, performed after a successful parse.
//
// # Architecture boundaries
//
// This package owns encoding, strict parsing, and the refresh state
// transitions. Default lifespans, clocks, audit, and metrics belong to the
// goCellAuth Authority. Signature computation for trans-cell tokens belongs
// to the signing collaborator and is not implemented here.
//
// # What this package must NOT do
//
//   - Read wall-clock time during Parse.
//   - Perform I/O of any kind.
//   - Import goCellAuth or any sibling package.
package token

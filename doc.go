// Package goCellAuth provides a cell-scoped token authority: delimiter-encoded
// local refresh and access tokens, a fail-closed parser bound to the issuing
// cell, and a refresh protocol that mints same-cell or cross-cell credentials
// without re-authenticating the subject.
//
// The package is designed for concurrent server workloads: Authority methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goCellAuth is the public surface. It exposes [Authority], [Builder],
// [Config], and value types (MetricsSnapshot, AuditEvent, etc.). The pure
// token codec lives in the token sub-package and knows nothing about clocks,
// configuration, or observability; OpenID Connect ID token verification lives
// in idtoken. This package composes them.
//
// # What this package must NOT do
//
//   - Sign, encrypt, or verify trans-cell token envelopes; that is the
//     signature collaborator's job.
//   - Persist tokens or revocation state. Tokens are pure values.
//   - Perform I/O outside of Authority methods (construction via Builder is
//     allocation-only until Build).
//
// # Performance contract
//
// Parse and refresh are the hot paths. They must not allocate beyond the
// returned token value plus one audit event when auditing is enabled, and
// they never block: audit emission is asynchronous and drops under
// backpressure when configured to.
package goCellAuth

// Package idtoken verifies externally issued OpenID Connect ID tokens against
// registered keys with strict validation semantics suitable for federated
// sign-in paths. Keys are registered at construction; no network key fetching.
package idtoken

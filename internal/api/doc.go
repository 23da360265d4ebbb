// Package api implements the HTTP client for the Discourse Encrypt plugin
// endpoints. The server is a pure persistence collaborator: every value it
// stores through this package is an opaque string — a public JWK, a
// passphrase-wrapped private key, or a per-participant encrypted topic key.
// No plaintext key material ever crosses this boundary.
//
// The package handles authentication, request/response serialization,
// retries with exponential backoff, and maps HTTP failures to typed errors
// that the public SDK package converts to its sentinel errors.
package api

// Package devicestore persists the active device's key pair in durable
// local storage. Keys on the account record are only "enabled"; a device
// becomes "active" once a usable private key is saved here.
//
// The store is append-only with last-write-wins semantics: saving a new
// record supersedes older ones for lookup, but older records are kept as
// history. Keys are stored in serialized (JWK) form, which keeps the store
// portable across storage backends; callers never see the representation.
package devicestore

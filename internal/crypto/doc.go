// Package crypto provides the cryptographic primitives for the Discourse
// Encrypt protocol: identity key pairs, passphrase-based private-key
// wrapping, and per-topic symmetric keys.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - RSA-4096 with OAEP padding (SHA-256): identity key pairs used to
//     encrypt per-topic symmetric keys for each participant.
//
//   - AES-256-GCM: authenticated encryption for topic titles, post bodies,
//     and the passphrase-wrapped private key envelope.
//
//   - PBKDF2-HMAC-SHA-256 (RFC 8018): deliberately slow derivation of the
//     private-key wrapping key from a user passphrase or paper key.
//     128 000 iterations with a random 16-byte salt.
//
// # Key Encoding
//
// Keys cross device boundaries as RSA JSON Web Keys (RFC 7517/7518).
// Public JWKs carry {kty, alg, n, e}; private JWKs add the CRT parameters
// {d, p, q, dp, dq, qi}. Field order is fixed by struct marshaling, so two
// exports of the same key are byte-comparable. See [ExportPublicKey].
//
// # Private-Key Envelope
//
// A wrapped private key is the string
//
//	base64url(salt) "$" base64url(nonce || ciphertext || tag)
//
// where the AES-256-GCM key is derived from the passphrase and salt.
// Unwrapping with the wrong passphrase fails with [ErrPassphraseInvalid],
// which callers must keep distinct from [ErrKeyFormat]: the former means
// "retry the passphrase", the latter means the stored blob is corrupt.
//
// # Security Notes
//
// Private keys are never serialized except through [WrapPrivateKey] or the
// explicit private JWK export used by device-local storage. Passphrases and
// derived wrapping keys exist only transiently; derived key material is
// zeroed after use. AES-GCM nonces are generated fresh for every
// encryption — nonce reuse under the same key breaks GCM entirely.
package crypto

package crypto

import "errors"

var (
	// ErrKeyGeneration is returned when the underlying cryptographic
	// provider cannot produce a key pair.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrKeyFormat is returned when a serialized key or wrapped-key blob
	// is malformed. It indicates corrupted storage or transport, not a
	// wrong passphrase.
	ErrKeyFormat = errors.New("malformed key data")

	// ErrPassphraseInvalid is returned when a wrapped private key is
	// structurally valid but decryption fails, i.e. the wrapping key was
	// derived from the wrong passphrase.
	ErrPassphraseInvalid = errors.New("incorrect passphrase")

	// ErrDecryptionFailed is returned when AES-GCM decryption of a topic
	// payload fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when a symmetric key has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidPayload is returned when an encrypted payload string is
	// malformed or carries an unsupported version.
	ErrInvalidPayload = errors.New("invalid payload")
)

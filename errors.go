package encrypt

import (
	"errors"
	"fmt"

	"github.com/prolifik1992/discourse-encrypt/internal/api"
	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingAPIKey is returned when no user API key is provided.
	ErrMissingAPIKey = errors.New("user API key is required")

	// ErrMissingBaseURL is returned when no forum base URL is provided.
	ErrMissingBaseURL = errors.New("base URL is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when the user API key is invalid or revoked.
	ErrUnauthorized = errors.New("invalid or revoked user API key")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrDistributionConflict is returned when the server rejects a key
	// update because an account key already exists and differs. Surfaced
	// as "encryption already enabled"; re-enabling requires an explicit
	// ResetKeys first.
	ErrDistributionConflict = errors.New("encryption already enabled with a different key")

	// ErrNotEnabled is returned when an operation requires account keys
	// but encryption has never been enabled on the account.
	ErrNotEnabled = errors.New("encryption is not enabled on this account")

	// ErrDeviceNotActive is returned when an operation requires a usable
	// private key on this device and none is present.
	ErrDeviceNotActive = errors.New("no active key pair on this device")

	// ErrKeyMismatch is returned when the unwrapped private key does not
	// correspond to the account's stored public key.
	ErrKeyMismatch = errors.New("account public key does not match private key")

	// ErrTopicKeyNotFound is returned when no key record exists for a
	// topic. Not retryable without a fresh key distribution.
	ErrTopicKeyNotFound = errors.New("no key for topic")

	// ErrParticipantKeyMissing is returned when a participant has no
	// public key, i.e. has not enabled encryption.
	ErrParticipantKeyMissing = errors.New("participant has no public key")

	// ErrInvalidImportData is returned when imported identity data fails
	// validation.
	ErrInvalidImportData = errors.New("invalid identity data")
)

// Cryptographic sentinels, re-exported from the internal suite so callers
// can distinguish a wrong passphrase from corrupted key data.
var (
	// ErrKeyGeneration indicates the cryptographic provider is
	// unavailable. Fatal to the enabling flow.
	ErrKeyGeneration = crypto.ErrKeyGeneration

	// ErrKeyFormat indicates a malformed serialized key: corrupted
	// storage or transport.
	ErrKeyFormat = crypto.ErrKeyFormat

	// ErrPassphraseInvalid indicates a well-formed envelope that failed
	// to decrypt: the passphrase is wrong, retry it. Distinct from
	// ErrKeyFormat so the user knows not to re-import.
	ErrPassphraseInvalid = crypto.ErrPassphraseInvalid

	// ErrDecryptionFailed indicates a topic payload failed to decrypt.
	ErrDecryptionFailed = crypto.ErrDecryptionFailed
)

// EncryptError is implemented by all SDK error types.
type EncryptError interface {
	error
	EncryptError() // marker method
}

// APIError represents an HTTP error from the Discourse Encrypt endpoints.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// EncryptError implements the EncryptError interface.
func (e *APIError) EncryptError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 409:
		return target == ErrDistributionConflict
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// EncryptError implements the EncryptError interface.
func (e *NetworkError) EncryptError() {}

// wrapError converts internal API errors to public errors so that
// errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}

package encrypt

import (
	"context"

	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
)

// Status is the encryption state of the current account/device pair.
// It is derived, never stored: recompute it whenever any input changes.
type Status int

const (
	// StatusDisabled: the account has no stored keys.
	StatusDisabled Status = iota
	// StatusEnabled: the account has keys but this device holds no usable
	// private key (or holds keys for a different identity).
	StatusEnabled
	// StatusActive: device keys are present and the device public key
	// matches the account public key exactly.
	StatusActive
)

func (s Status) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusEnabled:
		return "enabled"
	case StatusActive:
		return "active"
	default:
		return "unknown"
	}
}

// ResolveStatus computes the three-state encryption status from the
// account-level and device-level key strings. Empty strings mean absent.
// It is a pure function of its inputs; public keys are compared
// byte-for-byte on their canonical serialized form.
func ResolveStatus(accountPublicKey, accountPrivateKeyWrapped, devicePublicKey, devicePrivateKey string) Status {
	if accountPublicKey == "" {
		return StatusDisabled
	}
	if devicePublicKey == "" || devicePrivateKey == "" {
		return StatusEnabled
	}
	if canonicalPublicKey(devicePublicKey) != canonicalPublicKey(accountPublicKey) {
		return StatusEnabled
	}
	return StatusActive
}

// canonicalPublicKey re-serializes a public JWK through the canonical
// encoder so keys produced by different serializers compare equal.
// Unparseable input is compared as-is.
func canonicalPublicKey(serialized string) string {
	pub, err := crypto.ImportPublicKey(serialized)
	if err != nil {
		return serialized
	}
	out, err := crypto.ExportPublicKey(pub)
	if err != nil {
		return serialized
	}
	return out
}

// Status fetches the account keys and the device record and resolves the
// current encryption status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	if err := c.checkClosed(); err != nil {
		return StatusDisabled, err
	}

	account, err := c.api.GetAccountKeys(ctx)
	if err != nil {
		return StatusDisabled, wrapError(err)
	}

	rec, err := c.device.Load(ctx)
	if err != nil {
		return StatusDisabled, err
	}

	devicePub, devicePriv := "", ""
	if rec != nil {
		devicePub, devicePriv = rec.PublicKey, rec.PrivateKey
	}

	return ResolveStatus(account.PublicKey, account.PrivateKey, devicePub, devicePriv), nil
}

package encrypt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
)

// ExportVersion is the current identity export format version.
const ExportVersion = 1

// ExportedIdentity carries a passphrase-wrapped copy of an identity key
// pair for transfer to another device. The private key inside is wrapped;
// the file is useless without the passphrase (or paper key) it was
// exported under. This is the only sanctioned path for a private key to
// leave a device.
type ExportedIdentity struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// PublicKey is the canonical public JWK.
	PublicKey string `json:"publicKey"`
	// WrappedPrivateKey is the passphrase-wrapped private key envelope.
	WrappedPrivateKey string `json:"wrappedPrivateKey"`
	// ExportedAt is the export timestamp. Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// Validate checks that the exported data is structurally usable.
func (e *ExportedIdentity) Validate() error {
	if e.Version != ExportVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, e.Version, ExportVersion)
	}
	if e.PublicKey == "" {
		return fmt.Errorf("%w: publicKey is required", ErrInvalidImportData)
	}
	if _, err := crypto.ImportPublicKey(e.PublicKey); err != nil {
		return fmt.Errorf("%w: publicKey: %v", ErrInvalidImportData, err)
	}
	if e.WrappedPrivateKey == "" {
		return fmt.Errorf("%w: wrappedPrivateKey is required", ErrInvalidImportData)
	}
	return nil
}

// ExportIdentity wraps this device's private key under the given
// passphrase and returns the portable identity. Requires an active
// device.
func (c *Client) ExportIdentity(ctx context.Context, passphrase string) (*ExportedIdentity, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	rec, err := c.device.Load(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrDeviceNotActive
	}

	priv, err := crypto.ImportPrivateKey(rec.PrivateKey)
	if err != nil {
		return nil, err
	}

	wrapped, err := crypto.WrapPrivateKey(priv, passphrase, c.kdfIterations)
	if err != nil {
		return nil, err
	}

	return &ExportedIdentity{
		Version:           ExportVersion,
		PublicKey:         rec.PublicKey,
		WrappedPrivateKey: wrapped,
		ExportedAt:        time.Now().UTC(),
	}, nil
}

// ImportIdentity unwraps an exported identity with its passphrase and
// activates this device with the recovered key pair. The key must match
// the account's stored public key when the account has one.
func (c *Client) ImportIdentity(ctx context.Context, data *ExportedIdentity, passphrase string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: nil identity", ErrInvalidImportData)
	}
	if err := data.Validate(); err != nil {
		return err
	}

	priv, err := crypto.UnwrapPrivateKey(data.WrappedPrivateKey, passphrase)
	if err != nil {
		return err
	}

	// Verify against the account key when the account is enabled, so an
	// import cannot silently install a mismatched identity.
	account, err := c.api.GetAccountKeys(ctx)
	if err != nil {
		return wrapError(err)
	}
	accountPublic := account.PublicKey
	if accountPublic == "" {
		accountPublic = data.PublicKey
	}

	return c.activateWithPrivateKey(ctx, accountPublic, priv)
}

// ExportIdentityToFile writes a passphrase-wrapped identity export to a
// JSON file with secure permissions (0600).
func (c *Client) ExportIdentityToFile(ctx context.Context, filePath, passphrase string) error {
	data, err := c.ExportIdentity(ctx, passphrase)
	if err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal identity data: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// ImportIdentityFromFile reads an identity export from a JSON file and
// activates this device with it.
func (c *Client) ImportIdentityFromFile(ctx context.Context, filePath, passphrase string) error {
	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var data ExportedIdentity
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}

	return c.ImportIdentity(ctx, &data, passphrase)
}

package encrypt

import (
	"context"
	"crypto/rsa"
	"fmt"

	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
	"github.com/prolifik1992/discourse-encrypt/internal/devicestore"
)

// EnableEncryption generates a fresh key pair for the account, wraps the
// private key under the given passphrase, stores both keys on the account
// record, and activates this device.
//
// If the account already has a different key pair, the server rejects the
// update and ErrDistributionConflict is returned; re-enabling requires an
// explicit ResetKeys first. The operation is safe to retry from scratch:
// an abandoned attempt leaves no partial state this flow depends on.
func (c *Client) EnableEncryption(ctx context.Context, passphrase string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}

	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return err
	}

	publicJWK, err := crypto.ExportPublicKey(kp.Public)
	if err != nil {
		return err
	}
	wrapped, err := crypto.WrapPrivateKey(kp.Private, passphrase, c.kdfIterations)
	if err != nil {
		return err
	}

	// Both keys are written together; the server guards the transition.
	if err := c.api.SaveAccountKeys(ctx, publicJWK, wrapped); err != nil {
		return wrapError(err)
	}

	privateJWK, err := crypto.ExportPrivateKey(kp.Private)
	if err != nil {
		return err
	}
	if err := c.device.Save(ctx, devicestore.NewRecord(publicJWK, privateJWK)); err != nil {
		return fmt.Errorf("save device keys: %w", err)
	}

	c.subs.notify()
	return nil
}

// ActivateDevice installs a usable private key on this device by
// unwrapping the account's stored private key with the account
// passphrase. A wrong passphrase fails with ErrPassphraseInvalid.
//
// Only the account passphrase works here: the server holds a single
// envelope, wrapped under that passphrase. Activating with a paper key
// goes through ImportIdentity with the identity exported alongside it.
func (c *Client) ActivateDevice(ctx context.Context, passphrase string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}

	account, err := c.api.GetAccountKeys(ctx)
	if err != nil {
		return wrapError(err)
	}
	if account.PublicKey == "" || account.PrivateKey == "" {
		return ErrNotEnabled
	}

	priv, err := crypto.UnwrapPrivateKey(account.PrivateKey, passphrase)
	if err != nil {
		return err
	}

	return c.activateWithPrivateKey(ctx, account.PublicKey, priv)
}

// activateWithPrivateKey verifies the private key against the account
// public key and saves the pair as this device's record.
func (c *Client) activateWithPrivateKey(ctx context.Context, accountPublicJWK string, priv *rsa.PrivateKey) error {
	accountPub, err := crypto.ImportPublicKey(accountPublicJWK)
	if err != nil {
		return err
	}
	if !crypto.PublicKeysEqual(&priv.PublicKey, accountPub) {
		return ErrKeyMismatch
	}

	publicJWK, err := crypto.ExportPublicKey(&priv.PublicKey)
	if err != nil {
		return err
	}
	privateJWK, err := crypto.ExportPrivateKey(priv)
	if err != nil {
		return err
	}
	if err := c.device.Save(ctx, devicestore.NewRecord(publicJWK, privateJWK)); err != nil {
		return fmt.Errorf("save device keys: %w", err)
	}

	c.subs.notify()
	return nil
}

// DeactivateDevice removes the usable key pair from this device and drops
// all session key caches. Account keys are untouched: the account stays
// enabled and the device can be re-activated with the passphrase.
func (c *Client) DeactivateDevice(ctx context.Context) error {
	if err := c.checkClosed(); err != nil {
		return err
	}

	if err := c.device.Clear(ctx); err != nil {
		return err
	}
	c.topics.reset()

	c.subs.notify()
	return nil
}

// ResetKeys deletes the account's keys. All topic keys issued to this
// account become permanently undecipherable; this is the explicit reset
// flow required after ErrDistributionConflict.
func (c *Client) ResetKeys(ctx context.Context) error {
	if err := c.checkClosed(); err != nil {
		return err
	}

	if err := c.api.DeleteAccountKeys(ctx); err != nil {
		return wrapError(err)
	}
	if err := c.device.Clear(ctx); err != nil {
		return err
	}
	c.topics.reset()

	c.subs.notify()
	return nil
}

// PaperKey generates a high-entropy paper key and an identity export
// wrapped under it. The paper key is returned exactly once and never
// persisted. The two are a pair: the paper key unwraps only the returned
// export (via ImportIdentity, or ImportIdentityFromFile after saving it
// with ExportIdentityToFile), never the account envelope on the server,
// which stays wrapped under the account passphrase. Discarding the
// export makes the paper key worthless.
//
// Requires an active device: the paper key wraps this device's private
// key.
func (c *Client) PaperKey(ctx context.Context) (string, *ExportedIdentity, error) {
	if err := c.checkClosed(); err != nil {
		return "", nil, err
	}

	paperKey, err := crypto.GeneratePaperKey()
	if err != nil {
		return "", nil, err
	}

	exported, err := c.ExportIdentity(ctx, paperKey)
	if err != nil {
		return "", nil, err
	}

	return paperKey, exported, nil
}

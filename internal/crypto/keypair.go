package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"io"
)

// randReader is the random source used for key and nonce generation.
// It defaults to crypto/rand but can be overridden for testing.
var randReader io.Reader = rand.Reader

// keyBits is the modulus size used by GenerateKeyPair. It is a variable so
// tests can generate smaller (faster) keys; production code always uses
// RSAKeyBits.
var keyBits = RSAKeyBits

// KeyPair is an RSA-OAEP identity key pair.
type KeyPair struct {
	Public  *rsa.PublicKey
	Private *rsa.PrivateKey
}

// GenerateKeyPair creates a fresh RSA key pair for both encrypt and decrypt
// roles. Generation is intentionally the only way to obtain private key
// material that has not passed through an unwrap.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(randReader, keyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &KeyPair{Public: &priv.PublicKey, Private: priv}, nil
}

// EncryptOAEP encrypts plaintext under the given public key using
// RSA-OAEP with SHA-256. Used to wrap topic keys for a participant.
func EncryptOAEP(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	ct, err := rsa.EncryptOAEP(sha256.New(), randReader, pub, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("oaep encrypt: %w", err)
	}
	return ct, nil
}

// DecryptOAEP decrypts an RSA-OAEP/SHA-256 ciphertext with the given
// private key.
func DecryptOAEP(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	pt, err := rsa.DecryptOAEP(sha256.New(), nil, priv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: oaep decrypt: %v", ErrDecryptionFailed, err)
	}
	return pt, nil
}

// PublicKeysEqual reports whether two public keys are the same key.
// Comparison is on the canonical serialized form, matching the check the
// status resolver performs between account and device keys.
func PublicKeysEqual(a, b *rsa.PublicKey) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.E == b.E && a.N.Cmp(b.N) == 0
}

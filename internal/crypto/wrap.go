package crypto

import (
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// DeriveWrappingKey derives an AES-256 wrapping key from a passphrase and
// salt using PBKDF2-HMAC-SHA-256. The iteration count is deliberately high
// so brute-forcing a wrapping key from a passphrase is expensive. Same
// passphrase and salt always yield the same key.
func DeriveWrappingKey(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, AESKeySize, sha256.New)
}

// WrapPrivateKey encrypts a private key under a passphrase-derived key.
// The result is the envelope string
// base64url(salt) "$" iterations "$" base64url(blob), safe to persist
// server-side. The envelope carries its own KDF parameters, so any client
// can unwrap it regardless of its configured iteration count.
func WrapPrivateKey(priv *rsa.PrivateKey, passphrase string, iterations int) (string, error) {
	if iterations < 1 || iterations > KDFMaxIterations {
		return "", fmt.Errorf("%w: iteration count %d out of range", ErrKeyFormat, iterations)
	}

	serialized, err := ExportPrivateKey(priv)
	if err != nil {
		return "", err
	}

	salt := make([]byte, KDFSaltSize)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	wrappingKey := DeriveWrappingKey(passphrase, salt, iterations)
	defer Zeroize(wrappingKey)

	blob, err := EncryptAES(wrappingKey, []byte(serialized), nil)
	if err != nil {
		return "", fmt.Errorf("wrap private key: %w", err)
	}

	return ToBase64URL(salt) + "$" + strconv.Itoa(iterations) + "$" + ToBase64URL(blob), nil
}

// UnwrapPrivateKey decrypts a wrapped private key envelope. The iteration
// count comes from the envelope itself. A structurally malformed envelope
// fails with ErrKeyFormat; a well-formed envelope whose decryption fails
// (wrong passphrase) fails with ErrPassphraseInvalid. The two are never
// conflated: the user-visible remediation differs.
func UnwrapPrivateKey(wrapped, passphrase string) (*rsa.PrivateKey, error) {
	saltPart, rest, ok := strings.Cut(wrapped, "$")
	if !ok {
		return nil, fmt.Errorf("%w: missing salt separator", ErrKeyFormat)
	}
	iterPart, blobPart, ok := strings.Cut(rest, "$")
	if !ok {
		return nil, fmt.Errorf("%w: missing iteration count", ErrKeyFormat)
	}

	salt, err := FromBase64URL(saltPart)
	if err != nil || len(salt) != KDFSaltSize {
		return nil, fmt.Errorf("%w: bad salt", ErrKeyFormat)
	}
	iterations, err := strconv.Atoi(iterPart)
	if err != nil || iterations < 1 || iterations > KDFMaxIterations {
		return nil, fmt.Errorf("%w: bad iteration count", ErrKeyFormat)
	}
	blob, err := FromBase64URL(blobPart)
	if err != nil {
		return nil, fmt.Errorf("%w: bad envelope", ErrKeyFormat)
	}
	if len(blob) < AESNonceSize+AESTagSize {
		return nil, fmt.Errorf("%w: envelope too short", ErrKeyFormat)
	}

	wrappingKey := DeriveWrappingKey(passphrase, salt, iterations)
	defer Zeroize(wrappingKey)

	serialized, err := DecryptAES(wrappingKey, blob, nil)
	if err != nil {
		if errors.Is(err, ErrDecryptionFailed) {
			return nil, ErrPassphraseInvalid
		}
		return nil, err
	}
	defer Zeroize(serialized)

	return ImportPrivateKey(string(serialized))
}

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// GenerateTopicKey creates a fresh random AES-256 key for a topic.
func GenerateTopicKey() ([]byte, error) {
	key := make([]byte, AESKeySize)
	if _, err := io.ReadFull(randReader, key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return key, nil
}

// EncryptAES encrypts plaintext using AES-256-GCM with a fresh random
// nonce. Returns: nonce (12 bytes) || ciphertext || tag (16 bytes).
func EncryptAES(key, plaintext, aad []byte) ([]byte, error) {
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, aad)
	return append(nonce, ciphertext...), nil
}

// DecryptAES decrypts a nonce||ciphertext||tag blob produced by EncryptAES.
func DecryptAES(key, blob, aad []byte) ([]byte, error) {
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < AESNonceSize+AESTagSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidPayload)
	}

	plaintext, err := aesGCM.Open(nil, blob[:AESNonceSize], blob[AESNonceSize:], aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Zeroize overwrites key material in place. Callers drop the slice
// immediately afterwards.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

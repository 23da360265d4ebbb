package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"io"
	"sync"
	"testing"
)

// SetRandReaderForTesting sets the random source used by key, salt, and
// nonce generation. Returns a function to restore the original reader.
// Since this package is internal, this cannot be reached by external code.
func SetRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}

// SetKeyBitsForTesting shrinks the generated RSA modulus so tests that
// need many key pairs stay fast. Returns a restore function.
func SetKeyBitsForTesting(bits int) func() {
	original := keyBits
	keyBits = bits
	return func() { keyBits = original }
}

var (
	testKeyOnce sync.Once
	testKeys    []*rsa.PrivateKey
	testKeyErr  error
)

// TestKeyPair returns one of a small set of process-cached 2048-bit key
// pairs. Index selects distinct identities ("alice", "bob") without paying
// for fresh RSA generation in every test.
func TestKeyPair(t *testing.T, index int) *KeyPair {
	t.Helper()

	testKeyOnce.Do(func() {
		for i := 0; i < 3; i++ {
			priv, err := rsa.GenerateKey(rand.Reader, 2048)
			if err != nil {
				testKeyErr = err
				return
			}
			testKeys = append(testKeys, priv)
		}
	})
	if testKeyErr != nil {
		t.Fatalf("generate test key pair: %v", testKeyErr)
	}
	if index < 0 || index >= len(testKeys) {
		t.Fatalf("test key index %d out of range", index)
	}
	priv := testKeys[index]
	return &KeyPair{Public: &priv.PublicKey, Private: priv}
}

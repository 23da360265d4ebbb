package crypto

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
)

// testIterations keeps the deliberately slow KDF fast in tests.
const testIterations = 1000

func TestDeriveWrappingKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, KDFSaltSize)

	k1 := DeriveWrappingKey("correct-horse", salt, testIterations)
	k2 := DeriveWrappingKey("correct-horse", salt, testIterations)
	if !bytes.Equal(k1, k2) {
		t.Error("same passphrase and salt produced different wrapping keys")
	}
	if len(k1) != AESKeySize {
		t.Errorf("wrapping key size = %d, want %d", len(k1), AESKeySize)
	}

	k3 := DeriveWrappingKey("wrong-horse", salt, testIterations)
	if bytes.Equal(k1, k3) {
		t.Error("different passphrases produced the same wrapping key")
	}
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	kp := TestKeyPair(t, 0)

	wrapped, err := WrapPrivateKey(kp.Private, "correct-horse", testIterations)
	if err != nil {
		t.Fatalf("WrapPrivateKey() error = %v", err)
	}
	if strings.Count(wrapped, "$") != 2 {
		t.Fatalf("wrapped envelope is not salt$iterations$blob: %q", wrapped)
	}

	unwrapped, err := UnwrapPrivateKey(wrapped, "correct-horse")
	if err != nil {
		t.Fatalf("UnwrapPrivateKey() error = %v", err)
	}

	// Round-trip law: the recovered key decrypts the same ciphertexts as
	// the original.
	ct, err := EncryptOAEP(kp.Public, []byte("shared topic key"))
	if err != nil {
		t.Fatalf("EncryptOAEP() error = %v", err)
	}
	pt, err := DecryptOAEP(unwrapped, ct)
	if err != nil {
		t.Fatalf("DecryptOAEP() with unwrapped key error = %v", err)
	}
	if string(pt) != "shared topic key" {
		t.Errorf("decrypted %q, want %q", pt, "shared topic key")
	}
}

func TestUnwrapPrivateKey_SelfDescribingIterations(t *testing.T) {
	kp := TestKeyPair(t, 0)

	// The envelope carries its iteration count: unwrapping needs no
	// out-of-band KDF configuration, whatever count was used to wrap.
	for _, iterations := range []int{1, testIterations, 2 * testIterations} {
		wrapped, err := WrapPrivateKey(kp.Private, "correct-horse", iterations)
		if err != nil {
			t.Fatalf("WrapPrivateKey(%d) error = %v", iterations, err)
		}
		parts := strings.SplitN(wrapped, "$", 3)
		if parts[1] != strconv.Itoa(iterations) {
			t.Errorf("envelope iteration field = %q, want %d", parts[1], iterations)
		}
		if _, err := UnwrapPrivateKey(wrapped, "correct-horse"); err != nil {
			t.Errorf("UnwrapPrivateKey(wrapped with %d iterations) error = %v", iterations, err)
		}
	}

	if _, err := WrapPrivateKey(kp.Private, "correct-horse", 0); !errors.Is(err, ErrKeyFormat) {
		t.Errorf("WrapPrivateKey(0 iterations) error = %v, want ErrKeyFormat", err)
	}
}

func TestUnwrapPrivateKey_WrongPassphrase(t *testing.T) {
	kp := TestKeyPair(t, 0)

	wrapped, err := WrapPrivateKey(kp.Private, "correct-horse", testIterations)
	if err != nil {
		t.Fatalf("WrapPrivateKey() error = %v", err)
	}

	_, err = UnwrapPrivateKey(wrapped, "wrong-horse")
	if !errors.Is(err, ErrPassphraseInvalid) {
		t.Errorf("UnwrapPrivateKey() error = %v, want ErrPassphraseInvalid", err)
	}
	if errors.Is(err, ErrKeyFormat) {
		t.Error("wrong passphrase reported as format error")
	}
}

func TestUnwrapPrivateKey_Malformed(t *testing.T) {
	salt := ToBase64URL(bytes.Repeat([]byte{1}, KDFSaltSize))
	blob := ToBase64URL(bytes.Repeat([]byte{1}, 64))

	tests := []struct {
		name string
		in   string
	}{
		{"no separator", "deadbeef"},
		{"missing iteration count", salt + "$" + blob},
		{"bad salt encoding", "%%%" + "$1000$" + blob},
		{"short salt", ToBase64URL([]byte("short")) + "$1000$" + blob},
		{"non-numeric iterations", salt + "$lots$" + blob},
		{"zero iterations", salt + "$0$" + blob},
		{"absurd iterations", salt + "$99999999999$" + blob},
		{"bad blob encoding", salt + "$1000$%%%"},
		{"short blob", salt + "$1000$" + ToBase64URL([]byte("tiny"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnwrapPrivateKey(tt.in, "any")
			if !errors.Is(err, ErrKeyFormat) {
				t.Errorf("UnwrapPrivateKey(%q) error = %v, want ErrKeyFormat", tt.in, err)
			}
			if errors.Is(err, ErrPassphraseInvalid) {
				t.Error("format error reported as wrong passphrase")
			}
		})
	}
}

func TestWrapPrivateKey_MultipleSecrets(t *testing.T) {
	kp := TestKeyPair(t, 0)

	// Wrapping the same key under two secrets yields two independent
	// envelopes; each unwraps only under its own secret.
	userWrapped, err := WrapPrivateKey(kp.Private, "user passphrase", testIterations)
	if err != nil {
		t.Fatalf("WrapPrivateKey() error = %v", err)
	}
	paperKey, err := GeneratePaperKey()
	if err != nil {
		t.Fatalf("GeneratePaperKey() error = %v", err)
	}
	paperWrapped, err := WrapPrivateKey(kp.Private, paperKey, testIterations)
	if err != nil {
		t.Fatalf("WrapPrivateKey() error = %v", err)
	}

	if _, err := UnwrapPrivateKey(userWrapped, "user passphrase"); err != nil {
		t.Errorf("unwrap with user passphrase error = %v", err)
	}
	if _, err := UnwrapPrivateKey(paperWrapped, paperKey); err != nil {
		t.Errorf("unwrap with paper key error = %v", err)
	}
	if _, err := UnwrapPrivateKey(userWrapped, paperKey); !errors.Is(err, ErrPassphraseInvalid) {
		t.Errorf("cross-secret unwrap error = %v, want ErrPassphraseInvalid", err)
	}
}

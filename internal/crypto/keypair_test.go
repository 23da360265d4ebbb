package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateKeyPair(t *testing.T) {
	restore := SetKeyBitsForTesting(2048)
	defer restore()

	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	if kp.Public == nil || kp.Private == nil {
		t.Fatal("GenerateKeyPair() returned nil key material")
	}
	if kp.Public.N.BitLen() != 2048 {
		t.Errorf("modulus bits = %d, want 2048", kp.Public.N.BitLen())
	}
}

func TestOAEPRoundTrip(t *testing.T) {
	kp := TestKeyPair(t, 0)

	plaintext := []byte("topic symmetric key material, 32 b")
	ct, err := EncryptOAEP(kp.Public, plaintext)
	if err != nil {
		t.Fatalf("EncryptOAEP() error = %v", err)
	}

	got, err := DecryptOAEP(kp.Private, ct)
	if err != nil {
		t.Fatalf("DecryptOAEP() error = %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("DecryptOAEP() = %q, want %q", got, plaintext)
	}
}

func TestDecryptOAEP_WrongKey(t *testing.T) {
	alice := TestKeyPair(t, 0)
	bob := TestKeyPair(t, 1)

	ct, err := EncryptOAEP(alice.Public, []byte("secret"))
	if err != nil {
		t.Fatalf("EncryptOAEP() error = %v", err)
	}

	if _, err := DecryptOAEP(bob.Private, ct); err == nil {
		t.Error("DecryptOAEP() with wrong key succeeded, want error")
	}
}

func TestPublicKeysEqual(t *testing.T) {
	alice := TestKeyPair(t, 0)
	bob := TestKeyPair(t, 1)

	if !PublicKeysEqual(alice.Public, alice.Public) {
		t.Error("PublicKeysEqual(a, a) = false")
	}
	if PublicKeysEqual(alice.Public, bob.Public) {
		t.Error("PublicKeysEqual(a, b) = true for distinct keys")
	}
	if PublicKeysEqual(alice.Public, nil) {
		t.Error("PublicKeysEqual(a, nil) = true")
	}
	if !PublicKeysEqual(nil, nil) {
		t.Error("PublicKeysEqual(nil, nil) = false")
	}
}

package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestExportPublicKey_Deterministic(t *testing.T) {
	kp := TestKeyPair(t, 0)

	first, err := ExportPublicKey(kp.Public)
	if err != nil {
		t.Fatalf("ExportPublicKey() error = %v", err)
	}
	second, err := ExportPublicKey(kp.Public)
	if err != nil {
		t.Fatalf("ExportPublicKey() error = %v", err)
	}
	if first != second {
		t.Errorf("exports differ:\n%s\n%s", first, second)
	}
	if !strings.Contains(first, `"kty":"RSA"`) {
		t.Errorf("export missing kty field: %s", first)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	kp := TestKeyPair(t, 0)

	serialized, err := ExportPublicKey(kp.Public)
	if err != nil {
		t.Fatalf("ExportPublicKey() error = %v", err)
	}

	imported, err := ImportPublicKey(serialized)
	if err != nil {
		t.Fatalf("ImportPublicKey() error = %v", err)
	}
	if !PublicKeysEqual(imported, kp.Public) {
		t.Error("imported public key differs from original")
	}

	// Re-export of the imported key must be byte-identical: the status
	// resolver compares account and device keys on serialized form.
	reserialized, err := ExportPublicKey(imported)
	if err != nil {
		t.Fatalf("ExportPublicKey() error = %v", err)
	}
	if reserialized != serialized {
		t.Error("re-export after import is not canonical")
	}
}

func TestImportPublicKey_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "not a jwk"},
		{"wrong kty", `{"kty":"EC","alg":"RSA-OAEP-256","n":"AQAB","e":"AQAB"}`},
		{"missing modulus", `{"kty":"RSA","alg":"RSA-OAEP-256","e":"AQAB"}`},
		{"bad base64", `{"kty":"RSA","alg":"RSA-OAEP-256","n":"$$$","e":"AQAB"}`},
		{"tiny exponent", `{"kty":"RSA","alg":"RSA-OAEP-256","n":"AQAB","e":"AQ"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ImportPublicKey(tt.in); !errors.Is(err, ErrKeyFormat) {
				t.Errorf("ImportPublicKey(%q) error = %v, want ErrKeyFormat", tt.in, err)
			}
		})
	}
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	kp := TestKeyPair(t, 0)

	serialized, err := ExportPrivateKey(kp.Private)
	if err != nil {
		t.Fatalf("ExportPrivateKey() error = %v", err)
	}

	imported, err := ImportPrivateKey(serialized)
	if err != nil {
		t.Fatalf("ImportPrivateKey() error = %v", err)
	}

	// The imported key must decrypt what the original key's public half
	// encrypted.
	ct, err := EncryptOAEP(kp.Public, []byte("round trip"))
	if err != nil {
		t.Fatalf("EncryptOAEP() error = %v", err)
	}
	pt, err := DecryptOAEP(imported, ct)
	if err != nil {
		t.Fatalf("DecryptOAEP() error = %v", err)
	}
	if string(pt) != "round trip" {
		t.Errorf("decrypted %q, want %q", pt, "round trip")
	}
}

func TestImportPrivateKey_MissingParams(t *testing.T) {
	kp := TestKeyPair(t, 0)

	// A public JWK is not a private key.
	pub, err := ExportPublicKey(kp.Public)
	if err != nil {
		t.Fatalf("ExportPublicKey() error = %v", err)
	}
	if _, err := ImportPrivateKey(pub); !errors.Is(err, ErrKeyFormat) {
		t.Errorf("ImportPrivateKey(public jwk) error = %v, want ErrKeyFormat", err)
	}
}

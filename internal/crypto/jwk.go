package crypto

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"math/big"
)

// jwk is an RSA JSON Web Key (RFC 7518 §6.3). Field order is fixed so that
// exporting the same key twice yields identical bytes, which the status
// resolver relies on for account/device key comparison.
type jwk struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
	D   string `json:"d,omitempty"`
	P   string `json:"p,omitempty"`
	Q   string `json:"q,omitempty"`
	Dp  string `json:"dp,omitempty"`
	Dq  string `json:"dq,omitempty"`
	Qi  string `json:"qi,omitempty"`
}

// ExportPublicKey serializes a public key as a canonical RSA JWK string.
func ExportPublicKey(pub *rsa.PublicKey) (string, error) {
	if pub == nil || pub.N == nil {
		return "", fmt.Errorf("%w: nil public key", ErrKeyFormat)
	}
	k := jwk{
		Kty: "RSA",
		Alg: JWKAlg,
		N:   ToBase64URL(pub.N.Bytes()),
		E:   ToBase64URL(big.NewInt(int64(pub.E)).Bytes()),
	}
	data, err := json.Marshal(k)
	if err != nil {
		return "", fmt.Errorf("marshal public jwk: %w", err)
	}
	return string(data), nil
}

// ImportPublicKey parses a public key from its JWK serialization.
func ImportPublicKey(s string) (*rsa.PublicKey, error) {
	var k jwk
	if err := json.Unmarshal([]byte(s), &k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("%w: unsupported key type %q", ErrKeyFormat, k.Kty)
	}
	n, err := decodeJWKInt(k.N)
	if err != nil {
		return nil, fmt.Errorf("%w: modulus: %v", ErrKeyFormat, err)
	}
	e, err := decodeJWKInt(k.E)
	if err != nil {
		return nil, fmt.Errorf("%w: exponent: %v", ErrKeyFormat, err)
	}
	if !e.IsInt64() || e.Int64() < 3 {
		return nil, fmt.Errorf("%w: invalid public exponent", ErrKeyFormat)
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

// ExportPrivateKey serializes a private key as an RSA JWK string including
// the CRT parameters. The result is secret material: it is only ever
// stored inside a passphrase-wrapped envelope or the device-local store.
func ExportPrivateKey(priv *rsa.PrivateKey) (string, error) {
	if priv == nil || len(priv.Primes) != 2 {
		return "", fmt.Errorf("%w: unsupported private key shape", ErrKeyFormat)
	}
	priv.Precompute()
	k := jwk{
		Kty: "RSA",
		Alg: JWKAlg,
		N:   ToBase64URL(priv.N.Bytes()),
		E:   ToBase64URL(big.NewInt(int64(priv.E)).Bytes()),
		D:   ToBase64URL(priv.D.Bytes()),
		P:   ToBase64URL(priv.Primes[0].Bytes()),
		Q:   ToBase64URL(priv.Primes[1].Bytes()),
		Dp:  ToBase64URL(priv.Precomputed.Dp.Bytes()),
		Dq:  ToBase64URL(priv.Precomputed.Dq.Bytes()),
		Qi:  ToBase64URL(priv.Precomputed.Qinv.Bytes()),
	}
	data, err := json.Marshal(k)
	if err != nil {
		return "", fmt.Errorf("marshal private jwk: %w", err)
	}
	return string(data), nil
}

// ImportPrivateKey parses a private key from its JWK serialization and
// validates its arithmetic consistency.
func ImportPrivateKey(s string) (*rsa.PrivateKey, error) {
	var k jwk
	if err := json.Unmarshal([]byte(s), &k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("%w: unsupported key type %q", ErrKeyFormat, k.Kty)
	}
	if k.D == "" || k.P == "" || k.Q == "" {
		return nil, fmt.Errorf("%w: missing private parameters", ErrKeyFormat)
	}
	n, err := decodeJWKInt(k.N)
	if err != nil {
		return nil, fmt.Errorf("%w: modulus: %v", ErrKeyFormat, err)
	}
	e, err := decodeJWKInt(k.E)
	if err != nil {
		return nil, fmt.Errorf("%w: exponent: %v", ErrKeyFormat, err)
	}
	if !e.IsInt64() || e.Int64() < 3 {
		return nil, fmt.Errorf("%w: invalid public exponent", ErrKeyFormat)
	}
	d, err := decodeJWKInt(k.D)
	if err != nil {
		return nil, fmt.Errorf("%w: private exponent: %v", ErrKeyFormat, err)
	}
	p, err := decodeJWKInt(k.P)
	if err != nil {
		return nil, fmt.Errorf("%w: prime p: %v", ErrKeyFormat, err)
	}
	q, err := decodeJWKInt(k.Q)
	if err != nil {
		return nil, fmt.Errorf("%w: prime q: %v", ErrKeyFormat, err)
	}

	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: n, E: int(e.Int64())},
		D:         d,
		Primes:    []*big.Int{p, q},
	}
	priv.Precompute()
	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	return priv, nil
}

func decodeJWKInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}
	b, err := FromBase64URL(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

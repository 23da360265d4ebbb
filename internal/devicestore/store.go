package devicestore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// KeyPairRecord is one saved device key pair. Both keys are serialized
// JWK strings; the private key is in directly usable (unwrapped) form,
// which is why the store must live in device-local storage only.
type KeyPairRecord struct {
	ID         uuid.UUID `json:"id"`
	PublicKey  string    `json:"public_key"`
	PrivateKey string    `json:"private_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRecord builds a record with a fresh ID and timestamp.
func NewRecord(publicKey, privateKey string) KeyPairRecord {
	return KeyPairRecord{
		ID:         uuid.New(),
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		CreatedAt:  time.Now().UTC(),
	}
}

// Store is the device-local persistence backend.
//
// Save makes the record the new authoritative pair; Load returns the most
// recently saved record, or nil when the device holds no keys. Clear
// removes all records (device deactivation). Implementations must survive
// concurrent saves without corruption: the last committed write wins.
type Store interface {
	Save(ctx context.Context, rec KeyPairRecord) error
	Load(ctx context.Context) (*KeyPairRecord, error)
	Clear(ctx context.Context) error
}

package encrypt

import (
	"context"
	"fmt"
	"sync"

	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
)

// topicKeyEntry is one topic's key in the session cache. A key arrives in
// encrypted form from a distribution message and moves to usable form on
// first Get; there is no transition back.
type topicKeyEntry struct {
	encrypted string // per-participant envelope, "" once resolved
	key       []byte // usable AES key, nil until resolved
}

// TopicKeyRegistry is the session-scoped cache mapping topic ID to that
// topic's symmetric key. It mediates lazy unwrapping: an encrypted entry
// is decrypted with the device's private key the first time it is needed
// and kept in usable form for the rest of the session.
//
// The registry is owned by a Client and torn down with it; revocation on
// the server does not retroactively purge a cached key mid-session.
type TopicKeyRegistry struct {
	mu      sync.Mutex
	client  *Client
	entries map[int]*topicKeyEntry
}

func newTopicKeyRegistry(c *Client) *TopicKeyRegistry {
	return &TopicKeyRegistry{
		client:  c,
		entries: make(map[int]*topicKeyEntry),
	}
}

// Put inserts a topic's encrypted key if no entry exists yet. The first
// writer wins: a late, possibly stale distribution message never
// overwrites an already-known key. Reports whether the entry was stored.
func (r *TopicKeyRegistry) Put(topicID int, encryptedKey string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[topicID]; exists {
		return false
	}
	r.entries[topicID] = &topicKeyEntry{encrypted: encryptedKey}
	return true
}

// putKey inserts an already-usable key, first-write-wins. Used by the
// issuing side, which holds the plaintext key it just generated.
func (r *TopicKeyRegistry) putKey(topicID int, key []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[topicID]; exists {
		return false
	}
	r.entries[topicID] = &topicKeyEntry{key: key}
	return true
}

// Has reports whether a key record exists for the topic, without
// triggering an unwrap.
func (r *TopicKeyRegistry) Has(topicID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[topicID]
	return ok
}

// Get returns the topic's usable symmetric key, unwrapping the encrypted
// form with this device's private key on first use. The returned slice is
// the caller's own copy: session teardown zeroizes the cached original
// and must not reach through to keys already handed out. Fails with
// ErrTopicKeyNotFound when no record exists; that is not retryable
// without a fresh key distribution. Every failed unwrap is surfaced — a
// silently missing key would show up later as undecipherable content
// with no diagnostic.
func (r *TopicKeyRegistry) Get(ctx context.Context, topicID int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[topicID]
	if !ok {
		return nil, fmt.Errorf("%w: topic %d", ErrTopicKeyNotFound, topicID)
	}
	if entry.key != nil {
		return append([]byte(nil), entry.key...), nil
	}

	rec, err := r.client.device.Load(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrDeviceNotActive
	}
	priv, err := crypto.ImportPrivateKey(rec.PrivateKey)
	if err != nil {
		return nil, err
	}

	blob, err := crypto.DecodePayload(entry.encrypted)
	if err != nil {
		return nil, err
	}
	key, err := crypto.DecryptOAEP(priv, blob)
	if err != nil {
		return nil, fmt.Errorf("unwrap key for topic %d: %w", topicID, err)
	}
	if len(key) != crypto.AESKeySize {
		return nil, fmt.Errorf("%w: topic key size %d", ErrKeyFormat, len(key))
	}

	entry.key = key
	entry.encrypted = ""
	return append([]byte(nil), key...), nil
}

// reset drops all cached keys. Called on session teardown.
func (r *TopicKeyRegistry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		crypto.Zeroize(entry.key)
	}
	r.entries = make(map[int]*topicKeyEntry)
}

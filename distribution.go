package encrypt

import (
	"context"
	"fmt"

	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
)

// IssueTopicKey generates a fresh symmetric key for a topic and encrypts
// a copy for every invited participant's public key. Participants map
// username to public JWK; the returned map holds the per-user encrypted
// key records handed to the persistence layer.
//
// Every participant of a single issuance receives the same underlying
// key: generation completes and the key is held fixed before any
// per-participant encryption begins. A participant without a public key
// fails the whole issuance with ErrParticipantKeyMissing — a silent skip
// would strand that user with undecipherable content.
func (c *Client) IssueTopicKey(ctx context.Context, topicID int, participants map[string]string) (map[string]string, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	key, err := crypto.GenerateTopicKey()
	if err != nil {
		return nil, err
	}

	records, err := encryptKeyForParticipants(key, participants)
	if err != nil {
		return nil, err
	}

	if err := c.api.SaveTopicKeys(ctx, topicID, "", records); err != nil {
		return nil, wrapError(err)
	}

	// First-write-wins: if a distribution for this topic already landed
	// in this session, the cached key stays authoritative.
	c.topics.putKey(topicID, key)

	return records, nil
}

// AddParticipants extends key issuance to new invitees. Existing
// participants' records are untouched, and re-adding an already-keyed
// user is harmless: the copy re-encrypts the same underlying key.
func (c *Client) AddParticipants(ctx context.Context, topicID int, newParticipants map[string]string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}

	key, err := c.topics.Get(ctx, topicID)
	if err != nil {
		return err
	}

	records, err := encryptKeyForParticipants(key, newParticipants)
	if err != nil {
		return err
	}

	if err := c.api.SaveTopicKeys(ctx, topicID, "", records); err != nil {
		return wrapError(err)
	}
	return nil
}

// RevokeParticipant deletes a user's topic key record. The topic key is
// not rotated for remaining participants: revocation removes future
// access through the server, it is not a forward-secrecy guarantee.
func (c *Client) RevokeParticipant(ctx context.Context, topicID int, username string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}

	if err := c.api.DeleteTopicKeys(ctx, topicID, []string{username}); err != nil {
		return wrapError(err)
	}
	return nil
}

// LookupPublicKeys fetches the public JWK for each username. Users who
// have not enabled encryption map to the empty string; the caller
// decides whether that blocks the operation.
func (c *Client) LookupPublicKeys(ctx context.Context, usernames []string) (map[string]string, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	keys, err := c.api.GetUserKeys(ctx, usernames)
	if err != nil {
		return nil, wrapError(err)
	}
	return keys, nil
}

// encryptKeyForParticipants wraps one symmetric key under each
// participant's public key.
func encryptKeyForParticipants(key []byte, participants map[string]string) (map[string]string, error) {
	records := make(map[string]string, len(participants))
	for username, publicJWK := range participants {
		if publicJWK == "" {
			return nil, fmt.Errorf("%w: %s", ErrParticipantKeyMissing, username)
		}
		pub, err := crypto.ImportPublicKey(publicJWK)
		if err != nil {
			return nil, fmt.Errorf("public key for %s: %w", username, err)
		}
		ct, err := crypto.EncryptOAEP(pub, key)
		if err != nil {
			return nil, fmt.Errorf("encrypt key for %s: %w", username, err)
		}
		records[username] = crypto.EncodePayload(ct)
	}
	return records, nil
}

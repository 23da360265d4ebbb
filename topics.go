package encrypt

import (
	"context"

	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
)

// EncryptTitle encrypts a topic title under the topic's symmetric key.
// The result is the opaque string stored in the topic's encrypted_title
// field. Titles and post bodies use distinct associated data, so a
// ciphertext can never be replayed across the two domains.
func (c *Client) EncryptTitle(ctx context.Context, topicID int, title string) (string, error) {
	return c.encryptPayload(ctx, topicID, title, crypto.AADTopicTitle)
}

// DecryptTitle decrypts an encrypted_title field.
func (c *Client) DecryptTitle(ctx context.Context, topicID int, encrypted string) (string, error) {
	return c.decryptPayload(ctx, topicID, encrypted, crypto.AADTopicTitle)
}

// EncryptPost encrypts a post body under the topic's symmetric key.
func (c *Client) EncryptPost(ctx context.Context, topicID int, body string) (string, error) {
	return c.encryptPayload(ctx, topicID, body, crypto.AADPost)
}

// DecryptPost decrypts an encrypted post body.
func (c *Client) DecryptPost(ctx context.Context, topicID int, encrypted string) (string, error) {
	return c.decryptPayload(ctx, topicID, encrypted, crypto.AADPost)
}

// SaveEncryptedTitle encrypts the title and stores it on the topic
// record, leaving participants' key records untouched.
func (c *Client) SaveEncryptedTitle(ctx context.Context, topicID int, title string) error {
	encrypted, err := c.EncryptTitle(ctx, topicID, title)
	if err != nil {
		return err
	}
	if err := c.api.SaveTopicKeys(ctx, topicID, encrypted, nil); err != nil {
		return wrapError(err)
	}
	return nil
}

func (c *Client) encryptPayload(ctx context.Context, topicID int, plaintext, aad string) (string, error) {
	if err := c.checkClosed(); err != nil {
		return "", err
	}

	key, err := c.topics.Get(ctx, topicID)
	if err != nil {
		return "", err
	}
	blob, err := crypto.EncryptAES(key, []byte(plaintext), []byte(aad))
	if err != nil {
		return "", err
	}
	return crypto.EncodePayload(blob), nil
}

func (c *Client) decryptPayload(ctx context.Context, topicID int, encrypted, aad string) (string, error) {
	if err := c.checkClosed(); err != nil {
		return "", err
	}

	key, err := c.topics.Get(ctx, topicID)
	if err != nil {
		return "", err
	}
	blob, err := crypto.DecodePayload(encrypted)
	if err != nil {
		return "", err
	}
	plaintext, err := crypto.DecryptAES(key, blob, []byte(aad))
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

package api

import (
	"context"
	"net/http"
	"net/url"
)

// SaveAccountKeys stores the account key pair: the public JWK and the
// passphrase-wrapped private key, always written together. Idempotent on
// an identical resend; a differing public key when one is already set is
// rejected server-side with 409 (ErrKeyConflict).
func (c *Client) SaveAccountKeys(ctx context.Context, publicKey, wrappedPrivateKey string) error {
	req := &saveKeysRequest{
		PublicKey:  publicKey,
		PrivateKey: wrappedPrivateKey,
	}
	return c.do(ctx, http.MethodPut, "/encrypt/keys", req, nil)
}

// GetAccountKeys fetches the current user's stored key pair. Both fields
// are empty when encryption has never been enabled on the account.
func (c *Client) GetAccountKeys(ctx context.Context) (*AccountKeys, error) {
	var keys AccountKeys
	if err := c.do(ctx, http.MethodGet, "/encrypt/keys", nil, &keys); err != nil {
		return nil, err
	}
	return &keys, nil
}

// DeleteAccountKeys removes the account key pair as part of an explicit
// reset flow. All topic keys issued to this account become undecipherable.
func (c *Client) DeleteAccountKeys(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/encrypt/keys", nil, nil)
}

// GetUserKeys returns the public JWK for each requested username. Users
// without keys map to the empty string.
func (c *Client) GetUserKeys(ctx context.Context, usernames []string) (map[string]string, error) {
	q := url.Values{}
	for _, u := range usernames {
		q.Add("usernames[]", u)
	}

	var resp userKeysResponse
	if err := c.do(ctx, http.MethodGet, "/encrypt/userkeys?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Keys == nil {
		resp.Keys = make(map[string]string)
	}
	return resp.Keys, nil
}

// SaveTopicKeys stores the encrypted title and/or per-user encrypted topic
// keys for a topic. The server keys records as key_{topicId}_{userId};
// this client never reads back through that namespace in the same process
// that wrote it.
func (c *Client) SaveTopicKeys(ctx context.Context, topicID int, encryptedTitle string, keys map[string]string) error {
	req := &saveTopicKeysRequest{
		TopicID: topicID,
		Title:   encryptedTitle,
		Keys:    keys,
	}
	return c.do(ctx, http.MethodPut, "/encrypt/topickeys", req, nil)
}

// DeleteTopicKeys revokes the listed users' topic key records for a topic.
// Other participants' records are untouched.
func (c *Client) DeleteTopicKeys(ctx context.Context, topicID int, usernames []string) error {
	req := &deleteTopicKeysRequest{
		TopicID:   topicID,
		Usernames: usernames,
	}
	return c.do(ctx, http.MethodDelete, "/encrypt/topickeys", req, nil)
}

package api

// AccountKeys is the pair of opaque key strings stored on the user's
// account record. Empty strings mean the account has no keys.
type AccountKeys struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// saveKeysRequest is the body of PUT /encrypt/keys. The server enforces
// the transition guard: if a public key is already set and the new value
// differs, the update is rejected with 409.
type saveKeysRequest struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// userKeysResponse maps username to public JWK string. Users without keys
// are present with a null value, which decodes to "".
type userKeysResponse struct {
	Keys map[string]string `json:"keys"`
}

// saveTopicKeysRequest is the body of PUT /encrypt/topickeys. Title is the
// already-encrypted topic title; Keys maps username to the topic key
// encrypted under that user's public key. Either part may be omitted.
type saveTopicKeysRequest struct {
	TopicID int               `json:"topic_id"`
	Title   string            `json:"title,omitempty"`
	Keys    map[string]string `json:"keys,omitempty"`
}

// deleteTopicKeysRequest is the body of DELETE /encrypt/topickeys.
type deleteTopicKeysRequest struct {
	TopicID   int      `json:"topic_id"`
	Usernames []string `json:"usernames"`
}

// Package encrypt provides a Go client SDK for Discourse Encrypt,
// end-to-end encrypted group messaging layered on a Discourse forum.
//
// Each participant holds a long-lived RSA key pair; each conversation
// (topic) has its own AES-256 key, encrypted separately for every invited
// participant's public key. The server stores only opaque encrypted blobs
// and never sees plaintext keys.
//
// Basic usage:
//
//	client, err := encrypt.New("user-api-key",
//	    encrypt.WithBaseURL("https://forum.example.com"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Enable encryption on this account and activate this device.
//	if err := client.EnableEncryption(ctx, passphrase); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start an encrypted conversation.
//	_, err = client.IssueTopicKey(ctx, topicID, map[string]string{
//	    "alice": alicePublicJWK,
//	    "bob":   bobPublicJWK,
//	})
//
// A device moves through three states: DISABLED (no account keys),
// ENABLED (account keys exist but this device holds no usable private
// key), and ACTIVE (device keys present and matching). A second device is
// activated either with the account passphrase (ActivateDevice) or with a
// paper key plus the identity file exported alongside it (ImportIdentity);
// no private key ever travels unwrapped.
package encrypt

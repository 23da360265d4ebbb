package encrypt

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// issueForSelf issues a topic key with the client's own device as the
// sole participant, leaving the key cached in the session registry.
func issueForSelf(t *testing.T, c *Client, forum *fakeForum, topicID int) {
	t.Helper()
	activateTestDevice(t, c, forum, 0)
	if _, err := c.IssueTopicKey(context.Background(), topicID, map[string]string{
		"self": testPublicJWK(t, 0),
	}); err != nil {
		t.Fatalf("IssueTopicKey() error = %v", err)
	}
}

func TestEncryptDecryptTitle(t *testing.T) {
	forum := newFakeForum()
	client := newTestClient(t, forum)
	issueForSelf(t, client, forum, 7)

	encrypted, err := client.EncryptTitle(context.Background(), 7, "Q3 launch plan")
	if err != nil {
		t.Fatalf("EncryptTitle() error = %v", err)
	}
	if !strings.HasPrefix(encrypted, "1$") {
		t.Errorf("encrypted title %q missing version prefix", encrypted)
	}
	if strings.Contains(encrypted, "launch") {
		t.Error("encrypted title leaks plaintext")
	}

	title, err := client.DecryptTitle(context.Background(), 7, encrypted)
	if err != nil {
		t.Fatalf("DecryptTitle() error = %v", err)
	}
	if title != "Q3 launch plan" {
		t.Errorf("DecryptTitle() = %q, want %q", title, "Q3 launch plan")
	}
}

func TestEncryptDecryptPost(t *testing.T) {
	forum := newFakeForum()
	client := newTestClient(t, forum)
	issueForSelf(t, client, forum, 7)

	body := "The launch window opens on the 14th.\n\nDetails below."
	encrypted, err := client.EncryptPost(context.Background(), 7, body)
	if err != nil {
		t.Fatalf("EncryptPost() error = %v", err)
	}
	got, err := client.DecryptPost(context.Background(), 7, encrypted)
	if err != nil {
		t.Fatalf("DecryptPost() error = %v", err)
	}
	if got != body {
		t.Errorf("DecryptPost() = %q, want %q", got, body)
	}
}

func TestTitlePostDomainSeparation(t *testing.T) {
	forum := newFakeForum()
	client := newTestClient(t, forum)
	issueForSelf(t, client, forum, 7)

	encryptedTitle, err := client.EncryptTitle(context.Background(), 7, "secret")
	if err != nil {
		t.Fatalf("EncryptTitle() error = %v", err)
	}

	// A title ciphertext cannot be replayed as a post body.
	_, err = client.DecryptPost(context.Background(), 7, encryptedTitle)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("DecryptPost(title ciphertext) error = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecryptWithoutTopicKey(t *testing.T) {
	forum := newFakeForum()
	client := newTestClient(t, forum)
	activateTestDevice(t, client, forum, 0)

	_, err := client.DecryptPost(context.Background(), 99, "1$whatever")
	if !errors.Is(err, ErrTopicKeyNotFound) {
		t.Errorf("DecryptPost() error = %v, want ErrTopicKeyNotFound", err)
	}
}

func TestSaveEncryptedTitle(t *testing.T) {
	forum := newFakeForum()
	client := newTestClient(t, forum)
	issueForSelf(t, client, forum, 7)

	if err := client.SaveEncryptedTitle(context.Background(), 7, "Q3 launch plan"); err != nil {
		t.Fatalf("SaveEncryptedTitle() error = %v", err)
	}

	forum.mu.Lock()
	stored := forum.topicTitles[7]
	keyCount := len(forum.topicKeys)
	forum.mu.Unlock()

	if stored == "" {
		t.Fatal("no encrypted title stored")
	}
	if strings.Contains(stored, "launch") {
		t.Error("stored title leaks plaintext")
	}
	// Saving a title must not touch participants' key records.
	if keyCount != 1 {
		t.Errorf("topic key records = %d, want 1", keyCount)
	}

	title, err := client.DecryptTitle(context.Background(), 7, stored)
	if err != nil {
		t.Fatalf("DecryptTitle() error = %v", err)
	}
	if title != "Q3 launch plan" {
		t.Errorf("DecryptTitle() = %q, want %q", title, "Q3 launch plan")
	}
}

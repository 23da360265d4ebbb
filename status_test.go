package encrypt

import (
	"encoding/json"
	"testing"

	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
)

func testPublicJWK(t *testing.T, index int) string {
	t.Helper()
	jwk, err := crypto.ExportPublicKey(crypto.TestKeyPair(t, index).Public)
	if err != nil {
		t.Fatalf("ExportPublicKey() error = %v", err)
	}
	return jwk
}

// reorderJSON re-marshals a JSON object through a map, producing a
// semantically equal string with different field order.
func reorderJSON(t *testing.T, s string) string {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) == s {
		t.Fatalf("reorderJSON produced identical string")
	}
	return string(out)
}

func TestResolveStatus(t *testing.T) {
	pubA := testPublicJWK(t, 0)
	pubB := testPublicJWK(t, 1)

	tests := []struct {
		name        string
		accountPub  string
		accountPriv string
		devicePub   string
		devicePriv  string
		want        Status
	}{
		{
			name: "no account keys",
			want: StatusDisabled,
		},
		{
			name:       "account keys without device keys",
			accountPub: pubA, accountPriv: "wrapped",
			want: StatusEnabled,
		},
		{
			name:       "device missing private half",
			accountPub: pubA, accountPriv: "wrapped",
			devicePub: pubA,
			want:      StatusEnabled,
		},
		{
			name:       "device keys for a different identity",
			accountPub: pubA, accountPriv: "wrapped",
			devicePub: pubB, devicePriv: "device-priv",
			want: StatusEnabled,
		},
		{
			name:       "matching keys",
			accountPub: pubA, accountPriv: "wrapped",
			devicePub: pubA, devicePriv: "device-priv",
			want: StatusActive,
		},
		{
			name:       "matching keys serialized differently",
			accountPub: pubA, accountPriv: "wrapped",
			devicePub: reorderJSON(t, pubA), devicePriv: "device-priv",
			want: StatusActive,
		},
		{
			// Device keys alone never make encryption active.
			name:      "device keys without account keys",
			devicePub: pubA, devicePriv: "device-priv",
			want: StatusDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(tt.accountPub, tt.accountPriv, tt.devicePub, tt.devicePriv)
			if got != tt.want {
				t.Errorf("ResolveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusDisabled, "disabled"},
		{StatusEnabled, "enabled"},
		{StatusActive, "active"},
		{Status(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

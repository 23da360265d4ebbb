package crypto

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodePayload renders an encrypted blob as the versioned wire string
// stored in topic records: "1$" followed by the base64url blob.
func EncodePayload(blob []byte) string {
	return strconv.Itoa(ProtocolVersion) + "$" + ToBase64URL(blob)
}

// DecodePayload parses a versioned payload string back into the raw blob.
func DecodePayload(s string) ([]byte, error) {
	version, rest, ok := strings.Cut(s, "$")
	if !ok {
		return nil, fmt.Errorf("%w: missing version separator", ErrInvalidPayload)
	}
	v, err := strconv.Atoi(version)
	if err != nil {
		return nil, fmt.Errorf("%w: bad version %q", ErrInvalidPayload, version)
	}
	if v != ProtocolVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidPayload, v)
	}
	blob, err := FromBase64URL(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return blob, nil
}

package crypto

import (
	"fmt"
	"io"
	"strings"
)

// paperKeyAlphabet is a 32-character set chosen for unambiguous
// transcription: no 0/o, 1/l distinctions. 32 divides 256, so sampling
// bytes modulo the alphabet length introduces no bias.
const paperKeyAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

// GeneratePaperKey produces a high-entropy, human-transcribable passphrase
// of the form "xxxxx xxxxx ..." (8 groups of 5 characters, 200 bits of
// source entropy). A paper key is an ordinary passphrase from the key
// derivation function's point of view; it differs only in provenance.
func GeneratePaperKey() (string, error) {
	raw := make([]byte, PaperKeyGroups*PaperKeyGroupLen)
	if _, err := io.ReadFull(randReader, raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	var b strings.Builder
	for i, c := range raw {
		if i > 0 && i%PaperKeyGroupLen == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(paperKeyAlphabet[int(c)%len(paperKeyAlphabet)])
	}
	return b.String(), nil
}

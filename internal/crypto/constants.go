package crypto

const (
	// RSAKeyBits is the modulus size of generated identity key pairs.
	RSAKeyBits = 4096

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// KDFIterations is the default PBKDF2 iteration count for deriving
	// a wrapping key from a passphrase.
	KDFIterations = 128000
	// KDFMaxIterations bounds the iteration count accepted from a wrapped
	// envelope, so a hostile envelope cannot pin the CPU on unwrap.
	KDFMaxIterations = 10_000_000
	// KDFSaltSize is the size of the random PBKDF2 salt in bytes.
	KDFSaltSize = 16

	// PaperKeyGroups and PaperKeyGroupLen define the shape of a generated
	// paper key: groups of characters separated by single spaces.
	PaperKeyGroups   = 8
	PaperKeyGroupLen = 5

	// ProtocolVersion is the payload format version emitted by Encode.
	ProtocolVersion = 1

	// JWKAlg is the algorithm identifier carried in exported JWKs.
	JWKAlg = "RSA-OAEP-256"
)

// AADTopicTitle and AADPost are the associated-data strings separating the
// two plaintext domains encrypted under a topic key.
const (
	AADTopicTitle = "topic-title"
	AADPost       = "post"
)

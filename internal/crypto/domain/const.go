package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data
// (AEAD), ensuring both confidentiality and authenticity of encrypted documents.
// The algorithm identifier is persisted verbatim inside every encrypted-document
// envelope and must match exactly on decode; unknown identifiers are rejected,
// never guessed at.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM, the primary algorithm for encrypted
	// documents. 256-bit key, 12-byte nonce, 16-byte authentication tag.
	// Hardware-accelerated on most modern CPUs.
	AESGCM Algorithm = "AES-256-GCM"

	// ChaCha20 represents ChaCha20-Poly1305, selectable for new envelopes on
	// platforms without AES hardware acceleration. Same key, nonce, and tag
	// sizes as AESGCM and a constant-time software implementation.
	ChaCha20 Algorithm = "ChaCha20-Poly1305"
)

const (
	// KeySize is the required symmetric key length in bytes (256 bits).
	KeySize = 32

	// NonceSize is the AEAD nonce length in bytes (96 bits). A fresh random
	// nonce is generated for every encryption; reuse under the same key is a
	// correctness violation and is prevented by construction.
	NonceSize = 12

	// MinSaltSize is the minimum key-derivation salt length in bytes.
	MinSaltSize = 16

	// PBKDF2Iterations is the iteration count for password-based key
	// derivation. It is a format constant, not a tunable: lowering it would
	// weaken existing documents and raising it would make them unreadable by
	// older builds.
	PBKDF2Iterations = 100000
)

package protocol

// Fixed protocol parameters. Every value below is a shared contract with the
// on-chain verifier; changing any of them breaks interoperability with
// existing puzzles and commitments, and the breakage is silent (decryption
// simply fails, or the commit hash stops verifying). None of these are
// caller-configurable on purpose.
const (
	// scrypt work factors for guess key derivation
	ScryptN      = 1 << 17
	ScryptR      = 8
	ScryptP      = 1
	ScryptKeyLen = 32

	// Domain-separation prefix mixed into every derived key. The decimal
	// puzzle id is appended to form the scrypt salt.
	SaltPrefix = "ecash-v3-"

	// AES-GCM blob framing
	NonceLen = 12
	TagLen   = 16

	// Fixed field widths of the packed commit-hash encoding
	SaltLen    = 32
	SecretLen  = 32
	AddressLen = 20
)

package protocol

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

// ComputeCommitHash builds the commit-reveal binding hash:
//
//	keccak256(answer || salt || secret || address)
//
// The concatenation is tight packed, mirroring the verifier contract's
// abi.encodePacked: the answer contributes its raw UTF-8 bytes with no
// length prefix or padding, followed by the raw 32-byte salt, 32-byte
// secret and 20-byte address. The order and the absence of padding are
// part of the on-chain contract.
//
// Wrong-length fixed fields are rejected outright; truncating or padding
// here would produce a hash the verifier can never match.
func ComputeCommitHash(answer string, salt, secret, address []byte) (CommitHash, error) {

	if len(salt) != SaltLen {
		return CommitHash{}, errors.Errorf("Salt must be %d bytes, got %d", SaltLen, len(salt))
	}
	if len(secret) != SecretLen {
		return CommitHash{}, errors.Errorf("Secret must be %d bytes, got %d", SecretLen, len(secret))
	}
	if len(address) != AddressLen {
		return CommitHash{}, errors.Errorf("Address must be %d bytes, got %d", AddressLen, len(address))
	}

	var h CommitHash
	copy(h[:], Keccak256([]byte(answer), salt, secret, address))

	return h, nil
}

// GenerateSecret returns 32 fresh random bytes for a commitment attempt.
// Secrets are never reused across commitments. An entropy-source failure is
// fatal to the attempt; there is no weaker fallback.
func GenerateSecret() ([]byte, error) {

	secret := make([]byte, SecretLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(err, "Entropy source failure")
	}

	return secret, nil
}

package protocol

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Keccak256 calculates the legacy Keccak-256 digest (pre-standardization
// padding, not SHA3-256) of the concatenation of its arguments.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// CommitHash is a 32-byte commit-reveal binding hash.
type CommitHash [32]byte

// Hex renders the hash the way the verifier expects it on the wire:
// "0x" followed by 64 lowercase hex characters.
func (h CommitHash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h CommitHash) String() string {
	return h.Hex()
}

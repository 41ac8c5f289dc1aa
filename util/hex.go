package util

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// DecodeHex decodes a hex string, tolerating an optional 0x prefix and
// mixed case.
func DecodeHex(s string) ([]byte, error) {

	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "Bad hex string")
	}

	return b, nil
}

// HexToBytes32 decodes a 32-byte fixed-width value (salt, secret). Length
// mismatches are rejected, never truncated or padded.
func HexToBytes32(s string) ([]byte, error) {

	b, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}
	if len(b) != 32 {
		return nil, errors.Errorf("Expected 32 bytes, got %d", len(b))
	}

	return b, nil
}

// HexToAddress decodes a 20-byte ledger address.
func HexToAddress(s string) ([]byte, error) {

	b, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}
	if len(b) != 20 {
		return nil, errors.Errorf("Expected 20 byte address, got %d", len(b))
	}

	return b, nil
}

// EncodeHex renders bytes as 0x-prefixed lowercase hex.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

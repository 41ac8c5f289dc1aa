package protocol

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestKeccak256EmptyVector(t *testing.T) {

	// Well-known legacy Keccak-256 digest of the empty input. SHA3-256
	// would give a different value; this pins the pre-NIST padding.
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"

	got := hex.EncodeToString(Keccak256())
	if got != want {
		t.Errorf("Keccak256() = %s; want %s", got, want)
	}
}

func TestKeccak256Concatenation(t *testing.T) {

	// Variadic args must hash identically to their concatenation
	split := Keccak256([]byte("ecash"), []byte("-"), []byte("v3"))
	whole := Keccak256([]byte("ecash-v3"))

	if !bytes.Equal(split, whole) {
		t.Error("Split arguments hashed differently than concatenation")
	}
}

func TestCommitHashHex(t *testing.T) {

	var h CommitHash
	h[0] = 0xab
	h[31] = 0x01

	want := "0xab" + "000000000000000000000000000000000000000000000000000000000000" + "01"
	if h.Hex() != want {
		t.Errorf("Hex() = %s; want %s", h.Hex(), want)
	}

	if len(h.Hex()) != 66 {
		t.Errorf("Hex() length = %d; want 66", len(h.Hex()))
	}
}

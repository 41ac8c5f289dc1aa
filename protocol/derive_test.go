package protocol

import (
	"bytes"
	"testing"
)

func TestDeriveKeyDeterministic(t *testing.T) {

	key1, err := DeriveKey(1, "foo")
	if err != nil {
		t.Fatalf("DeriveKey failed: %s", err)
	}
	if len(key1) != ScryptKeyLen {
		t.Fatalf("Expected %d byte key, got %d", ScryptKeyLen, len(key1))
	}

	key2, err := DeriveKey(1, "foo")
	if err != nil {
		t.Fatalf("DeriveKey failed: %s", err)
	}

	if !bytes.Equal(key1, key2) {
		t.Error("Same inputs produced different keys")
	}
}

func TestDeriveKeySensitivity(t *testing.T) {

	keyFoo, err := DeriveKey(1, "foo")
	if err != nil {
		t.Fatalf("DeriveKey failed: %s", err)
	}

	keyBar, err := DeriveKey(1, "bar")
	if err != nil {
		t.Fatalf("DeriveKey failed: %s", err)
	}

	if bytes.Equal(keyFoo, keyBar) {
		t.Error("Different guesses produced the same key")
	}

	// Same guess, different puzzle: domain separation by id
	keyFoo2, err := DeriveKey(2, "foo")
	if err != nil {
		t.Fatalf("DeriveKey failed: %s", err)
	}

	if bytes.Equal(keyFoo, keyFoo2) {
		t.Error("Puzzle id did not separate key domains")
	}
}

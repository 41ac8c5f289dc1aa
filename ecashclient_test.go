package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestLoadBlobFile(t *testing.T) {

	dir := t.TempDir()

	good := filepath.Join(dir, "puzzle.json")
	blobJSON := `{"blob":"00112233","nonce":"000102030405060708090a0b","tag":"000102030405060708090a0b0c0d0e0f"}`
	if err := ioutil.WriteFile(good, []byte(blobJSON), 0644); err != nil {
		t.Fatalf("Unable to write fixture: %s", err)
	}

	blob, err := loadBlobFile(good)
	if err != nil {
		t.Fatalf("loadBlobFile failed: %s", err)
	}
	if blob.Nonce != "000102030405060708090a0b" {
		t.Errorf("Nonce = %q", blob.Nonce)
	}

	// Malformed blob fields are rejected at load time
	bad := filepath.Join(dir, "bad.json")
	if err := ioutil.WriteFile(bad, []byte(`{"blob":"zz","nonce":"00","tag":"00"}`), 0644); err != nil {
		t.Fatalf("Unable to write fixture: %s", err)
	}
	if _, err := loadBlobFile(bad); err == nil {
		t.Error("Malformed blob file accepted")
	}

	// Missing file
	if _, err := loadBlobFile(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("Missing file accepted")
	}
}

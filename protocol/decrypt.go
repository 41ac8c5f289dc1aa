package protocol

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// PuzzleBlob is the encrypted payload triple exactly as delivered by the
// puzzle author: hex-encoded AES-GCM ciphertext, nonce, and auth tag.
type PuzzleBlob struct {
	Blob  string `json:"blob"`
	Nonce string `json:"nonce"`
	Tag   string `json:"tag"`
}

// DecryptResult is the outcome of a single guess attempt. A wrong guess is
// the overwhelmingly common case, so it surfaces as ordinary data (Success
// false, Reason set) rather than an error. Normalized is always populated.
type DecryptResult struct {
	Success    bool            `json:"success"`
	Normalized string          `json:"normalized"`
	Payload    json.RawMessage `json:"data,omitempty"`
	Reason     string          `json:"error,omitempty"`
}

// decode hex-decodes and length-checks the blob fields. Failures here are
// caller/author bugs, not wrong guesses, and surface as errors.
func (b PuzzleBlob) decode() (ciphertext, nonce, tag []byte, err error) {

	ciphertext, err = hex.DecodeString(b.Blob)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "Bad hex in puzzle ciphertext")
	}

	nonce, err = hex.DecodeString(b.Nonce)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "Bad hex in puzzle nonce")
	}
	if len(nonce) != NonceLen {
		return nil, nil, nil, errors.Errorf("Nonce must be %d bytes, got %d", NonceLen, len(nonce))
	}

	tag, err = hex.DecodeString(b.Tag)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "Bad hex in puzzle tag")
	}
	if len(tag) != TagLen {
		return nil, nil, nil, errors.Errorf("Tag must be %d bytes, got %d", TagLen, len(tag))
	}

	return ciphertext, nonce, tag, nil
}

// Validate checks that the blob fields are well-formed hex of the mandated
// lengths, without attempting a (costly) decryption.
func (b PuzzleBlob) Validate() error {
	_, _, _, err := b.decode()
	return err
}

// TryDecrypt is the guess oracle: it normalizes the guess, derives the
// puzzle key, and attempts authenticated decryption of the blob. Tag
// verification failure means a wrong guess and returns a Failure result,
// not an error. Malformed blobs return an error immediately, before the
// expensive derivation runs. A derivation-parameter rejection also returns
// an error; it is fatal and must not be retried with different parameters.
func TryDecrypt(puzzleID uint64, guess string, blob PuzzleBlob) (*DecryptResult, error) {

	normalized := Normalize(guess)

	ciphertext, nonce, tag, err := blob.decode()
	if err != nil {
		return nil, err
	}

	key, err := DeriveKey(puzzleID, normalized)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to init AES cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to init GCM")
	}

	// Go's GCM consumes ciphertext and tag as one buffer
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		// Expected path for wrong guesses
		return &DecryptResult{Normalized: normalized, Reason: "authentication failed"}, nil
	}

	// Correctly-keyed but malformed plaintext should never happen for a
	// well-formed puzzle; treat it as a failed attempt, not a fault.
	if !utf8.Valid(plaintext) || !json.Valid(plaintext) {
		return &DecryptResult{Normalized: normalized, Reason: "payload is not valid JSON"}, nil
	}

	return &DecryptResult{
		Success:    true,
		Normalized: normalized,
		Payload:    json.RawMessage(plaintext),
	}, nil
}

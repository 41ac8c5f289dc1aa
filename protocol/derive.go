package protocol

import (
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// DeriveKey stretches a normalized guess into the 32-byte symmetric key for
// a puzzle. The salt is the ASCII string "ecash-v3-<id>"; the puzzle id is
// public and only provides domain separation, so the same guess text yields
// unrelated keys across puzzles.
//
// scrypt at N=2^17 costs a few hundred milliseconds and ~128MiB per call.
// That cost is the anti-brute-force control; callers driving many guesses
// should bound concurrency to the CPU count.
func DeriveKey(puzzleID uint64, normalizedGuess string) ([]byte, error) {

	salt := SaltPrefix + strconv.FormatUint(puzzleID, 10)

	key, err := scrypt.Key([]byte(normalizedGuess), []byte(salt), ScryptN, ScryptR, ScryptP, ScryptKeyLen)
	if err != nil {
		// scrypt only errors when it rejects the fixed parameters. Nothing
		// recoverable here; retuning parameters would derive unusable keys.
		return nil, errors.Wrap(err, "Key derivation rejected fixed parameters")
	}

	return key, nil
}

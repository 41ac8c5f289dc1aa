package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ecashclient/protocol"
)

// runOneShot tests a single guess against a puzzle and returns the process
// exit code: 0 solved, 1 wrong guess, 2 operational error. The blob comes
// from -blob-file when given, otherwise from the local puzzle store.
func (s *ECashServer) runOneShot() int {

	defer s.Storage.Close()
	defer closeLogging()

	blob, err := s.loadOneShotBlob()
	if err != nil {
		log.WithError(err).Error("Unable to load puzzle blob")
		return 2
	}

	log.WithFields(log.Fields{
		"PuzzleId": s.puzzleID, "Guess": s.guess,
	}).Info("Testing guess")

	result, err := protocol.TryDecrypt(s.puzzleID, s.guess, *blob)
	if err != nil {
		log.WithError(err).Error("Decryption attempt failed")
		return 2
	}

	if !result.Success {
		log.WithFields(log.Fields{
			"Normalized": result.Normalized, "Reason": result.Reason,
		}).Warn("Wrong guess")
		return 1
	}

	log.WithField("Normalized", result.Normalized).Info("Puzzle solved")

	// Payload to stdout for scripting
	fmt.Println(string(result.Payload))

	return 0
}

func (s *ECashServer) loadOneShotBlob() (*protocol.PuzzleBlob, error) {

	if s.blobFile != "" {
		return loadBlobFile(s.blobFile)
	}

	blob, err := s.Storage.GetPuzzle(s.puzzleID)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, errors.Errorf("No stored puzzle with id %d; import it or pass -blob-file", s.puzzleID)
	}

	return blob, nil
}

func loadBlobFile(path string) (*protocol.PuzzleBlob, error) {

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read %s", path)
	}

	var blob protocol.PuzzleBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, errors.Wrapf(err, "Unable to parse %s", path)
	}

	if err := blob.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Malformed blob in %s", path)
	}

	return &blob, nil
}

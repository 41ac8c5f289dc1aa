package storage

import (
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"ecashclient/protocol"
)

// SavePuzzle stores an imported puzzle blob under its id. Re-importing the
// same id overwrites; blobs are author-supplied public data.
func (s *Storage) SavePuzzle(puzzleID uint64, blob protocol.PuzzleBlob) error {

	blobBytes, err := json.Marshal(blob)
	if err != nil {
		return errors.Wrap(err, "Unable to marshal puzzle blob")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(PUZZLE_BUCKET)).Put(itob(puzzleID), blobBytes)
	})
}

// GetPuzzle returns the stored blob for a puzzle id, or nil if unknown.
func (s *Storage) GetPuzzle(puzzleID uint64) (*protocol.PuzzleBlob, error) {

	var blob *protocol.PuzzleBlob

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(PUZZLE_BUCKET)).Get(itob(puzzleID))
		if v == nil {
			return nil
		}

		var b protocol.PuzzleBlob
		if err := json.Unmarshal(v, &b); err != nil {
			return errors.Wrap(err, "Unable to unmarshal puzzle blob")
		}
		blob = &b

		return nil
	})

	return blob, err
}

// GetPuzzles returns all imported puzzles keyed by id.
func (s *Storage) GetPuzzles() (map[uint64]protocol.PuzzleBlob, error) {

	puzzles := make(map[uint64]protocol.PuzzleBlob)

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(PUZZLE_BUCKET)).Cursor()

		for k, v := c.First(); k != nil; k, v = c.Next() {

			var b protocol.PuzzleBlob
			if err := json.Unmarshal(v, &b); err != nil {
				log.WithError(err).Error("Unable to unmarshal puzzle blob")
				continue
			}

			puzzles[btoi(k)] = b
		}

		return nil
	})

	return puzzles, err
}

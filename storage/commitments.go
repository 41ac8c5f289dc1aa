package storage

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

// Commitment is the client-side record of a commit-reveal attempt. The
// secret must survive locally until the reveal, or the commitment becomes
// unredeemable; everything else is convenience for the UI.
type Commitment struct {
	PuzzleID   uint64    `json:"puzzle_id"`
	Answer     string    `json:"answer"`
	Salt       string    `json:"salt"`
	Secret     string    `json:"secret"`
	Address    string    `json:"address"`
	CommitHash string    `json:"commit_hash"`
	RevealTx   string    `json:"reveal_tx,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaveCommitment persists a commitment record, keyed by puzzle id.
func (s *Storage) SaveCommitment(c Commitment) error {

	commitmentBytes, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "Unable to marshal commitment")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(COMMITMENT_BUCKET)).Put(itob(c.PuzzleID), commitmentBytes)
	})
}

// GetCommitment returns the commitment for a puzzle id, or nil if none.
func (s *Storage) GetCommitment(puzzleID uint64) (*Commitment, error) {

	var commitment *Commitment

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(COMMITMENT_BUCKET)).Get(itob(puzzleID))
		if v == nil {
			return nil
		}

		var c Commitment
		if err := json.Unmarshal(v, &c); err != nil {
			return errors.Wrap(err, "Unable to unmarshal commitment")
		}
		commitment = &c

		return nil
	})

	return commitment, err
}

// GetCommitments returns all saved commitments.
func (s *Storage) GetCommitments() ([]Commitment, error) {

	commitments := make([]Commitment, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(COMMITMENT_BUCKET)).Cursor()

		for k, v := c.First(); k != nil; k, v = c.Next() {

			var commitment Commitment
			if err := json.Unmarshal(v, &commitment); err != nil {
				log.WithError(err).Error("Unable to unmarshal commitment")
				continue
			}

			commitments = append(commitments, commitment)
		}

		return nil
	})

	return commitments, err
}

// SetRevealTx records the reveal transaction hash reported by the external
// submitter against an existing commitment.
func (s *Storage) SetRevealTx(puzzleID uint64, revealTx string) error {

	commitment, err := s.GetCommitment(puzzleID)
	if err != nil {
		return err
	}
	if commitment == nil {
		return errors.Errorf("No commitment for puzzle %d", puzzleID)
	}

	commitment.RevealTx = revealTx

	return s.SaveCommitment(*commitment)
}

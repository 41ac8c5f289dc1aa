package storage

import (
	"encoding/binary"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

const (
	DATABASE_FILE = "ecashclient.db"

	PUZZLE_BUCKET     = "puzzles"
	COMMITMENT_BUCKET = "commitments"
	CONFIG_BUCKET     = "config"
	NOTIFIERS_BUCKET  = "notifiers"
)

type Storage struct {
	db *bolt.DB
}

// InitStorage opens (or creates) the client database in dataDir and makes
// sure all buckets exist.
func InitStorage(dataDir string) (*Storage, error) {

	dbFile := filepath.Join(dataDir, DATABASE_FILE)

	db, err := bolt.Open(dbFile, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open database %s", dbFile)
	}

	// Ensure buckets exist, and migrations
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{PUZZLE_BUCKET, COMMITMENT_BUCKET, CONFIG_BUCKET, NOTIFIERS_BUCKET} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return errors.Wrapf(err, "Cannot create %s bucket", bucket)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() {
	s.db.Close()
	log.Info("Database closed")
}

// itob returns an 8-byte big endian representation of v.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// btoi is the inverse of itob.
func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

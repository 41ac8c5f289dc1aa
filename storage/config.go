package storage

import (
	bolt "go.etcd.io/bbolt"
)

const (
	PLAYER_ADDRESS = "address"
)

// GetPlayerAddress returns the configured committing address, empty string
// if unset.
func (s *Storage) GetPlayerAddress() (string, error) {

	var address string

	err := s.db.View(func(tx *bolt.Tx) error {
		address = string(tx.Bucket([]byte(CONFIG_BUCKET)).Get([]byte(PLAYER_ADDRESS)))
		return nil
	})

	return address, err
}

func (s *Storage) SetPlayerAddress(address string) error {

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(CONFIG_BUCKET)).Put([]byte(PLAYER_ADDRESS), []byte(address))
	})
}

// GetNotifiersConfig returns the saved config for a notifier kind, nil if
// never configured.
func (s *Storage) GetNotifiersConfig(kind string) ([]byte, error) {

	var config []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(NOTIFIERS_BUCKET)).Get([]byte(kind))
		if v != nil {
			config = append(config, v...)
		}
		return nil
	})

	return config, err
}

func (s *Storage) SaveNotifiersConfig(kind string, config []byte) error {

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(NOTIFIERS_BUCKET)).Put([]byte(kind), config)
	})
}

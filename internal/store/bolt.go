package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hance08/pots/internal/model"
	bolt "go.etcd.io/bbolt"
)

var ledgerBucket = []byte("ledgers")

// BoltStore keeps every ledger as one JSON document in a single bbolt file.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("can not create database directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("can not open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ledgerBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(ledgerID string) (*model.State, error) {
	if err := validLedgerID(ledgerID); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(ledgerBucket).Get([]byte(ledgerID)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if data == nil {
		return nil, ErrRecordNotFound
	}

	state, err := decodeState(ledgerID, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return state, nil
}

func (s *BoltStore) Save(ledgerID string, state *model.State) error {
	if err := validLedgerID(ledgerID); err != nil {
		return err
	}

	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(ledgerBucket).Put([]byte(ledgerID), data)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

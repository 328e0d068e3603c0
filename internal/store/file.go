package store

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hance08/pots/internal/model"
)

const fileSuffix = "_data.json"

// FileStore keeps each ledger in <dir>/<ledger>_data.json as base64 encoded
// JSON. Plain JSON files are accepted on read.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("can not create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing ledgerID.
func (s *FileStore) Path(ledgerID string) string {
	return filepath.Join(s.dir, ledgerID+fileSuffix)
}

func (s *FileStore) Load(ledgerID string) (*model.State, error) {
	if err := validLedgerID(ledgerID); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.Path(ledgerID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	return decodePayload(ledgerID, raw)
}

func (s *FileStore) Save(ledgerID string, state *model.State) error {
	if err := validLedgerID(ledgerID); err != nil {
		return err
	}

	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	payload := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(payload, data)

	return writeAtomic(s.Path(ledgerID), payload)
}

func (s *FileStore) Close() error {
	return nil
}

func decodePayload(ledgerID string, raw []byte) (*model.State, error) {
	trimmed := bytes.TrimSpace(raw)

	if decoded, err := base64.StdEncoding.DecodeString(string(trimmed)); err == nil {
		if state, err := decodeState(ledgerID, decoded); err == nil {
			return state, nil
		}
	}

	state, err := decodeState(ledgerID, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return state, nil
}

// writeAtomic replaces path only after the new content is fully on disk.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}

// Package credstore persists the two pieces of session state that survive an
// app restart: the token and the last profile snapshot. It is written on
// login and profile updates, cleared on logout, and read once at startup.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

const credentialsBucket = "credentials"

var (
	keyToken   = []byte("token")
	keyProfile = []byte("profile")
)

// Store is a bbolt-backed credential store holding exactly two keys.
type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory %s: %w", dir, err)
	}

	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials store at %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(credentialsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) SaveToken(token string) error {
	return s.put(keyToken, []byte(token))
}

// Token returns the persisted token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	data, err := s.get(keyToken)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) SaveProfile(snapshot json.RawMessage) error {
	return s.put(keyProfile, snapshot)
}

// Profile returns the persisted profile snapshot, or nil when none is stored.
func (s *Store) Profile() (json.RawMessage, error) {
	return s.get(keyProfile)
}

// Clear removes both entries. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialsBucket))
		if bucket == nil {
			return nil
		}
		if err := bucket.Delete(keyToken); err != nil {
			return err
		}
		return bucket.Delete(keyProfile)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) put(key, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s does not exist", credentialsBucket)
		}
		return bucket.Put(key, value)
	})
}

func (s *Store) get(key []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialsBucket))
		if bucket == nil {
			return nil
		}
		if data := bucket.Get(key); data != nil {
			out = append([]byte(nil), data...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return out, nil
}

package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"devflow/internal/domain"
)

var (
	bucketResults = []byte("results")
	bucketMeta    = []byte("meta")
	keySchema     = []byte("schema_version")
)

// schemaVersion guards the stored result encoding; a mismatch clears
// the bucket rather than attempting a migration.
const schemaVersion = "1"

// BoltStore persists analysis results keyed by content hash. It backs
// the cache_results option so repeated analyses of unchanged files
// skip the provider entirely, across process restarts.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketResults, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}

		meta := tx.Bucket(bucketMeta)
		stored := meta.Get(keySchema)
		if stored != nil && string(stored) != schemaVersion {
			if err := tx.DeleteBucket(bucketResults); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bucketResults); err != nil {
				return err
			}
		}
		return meta.Put(keySchema, []byte(schemaVersion))
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type storedResult struct {
	Result   domain.AnalysisResult `json:"result"`
	StoredAt int64                 `json:"stored_at"`
}

// PutResult stores a result under the content-hash key.
func (s *BoltStore) PutResult(key string, result domain.AnalysisResult) error {
	data, err := json.Marshal(storedResult{
		Result:   result,
		StoredAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketResults).Put([]byte(key), data)
	})
}

// GetResult returns the stored result for the key, if any.
func (s *BoltStore) GetResult(key string) (domain.AnalysisResult, bool, error) {
	var stored storedResult
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketResults).Get([]byte(key))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &stored); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
		found = true
		return nil
	})
	if err != nil {
		return domain.AnalysisResult{}, false, err
	}

	return stored.Result, found, nil
}

// Count returns the number of stored results.
func (s *BoltStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketResults).Stats().KeyN
		return nil
	})
	return count, err
}

// Clear removes every stored result.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketResults); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketResults)
		return err
	})
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

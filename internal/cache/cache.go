// Package cache persists extraction results keyed by file content
// hash, so re-runs skip parsing unchanged files. A nil *Cache is a
// valid no-op cache.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/sherwinski/depsort/internal/extract"
)

const bucketName = "extractions"

// Cache is a bbolt-backed store of extracted import records.
type Cache struct {
	db *bolt.DB
}

// Open creates or opens the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns cached records for the given file path and contents.
// The key covers both, so identical contents at different paths never
// share an entry. The second return is false on a miss or when the
// cache is nil.
func (c *Cache) Get(path string, contents []byte) ([]extract.ImportRecord, bool) {
	if c == nil {
		return nil, false
	}
	var records []extract.ImportRecord
	found := false
	c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get(contentKey(path, contents))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &records); err != nil {
			// Stale or corrupt entry; treat as a miss.
			return nil
		}
		found = true
		return nil
	})
	return records, found
}

// Put stores records for the given file path and contents.
func (c *Cache) Put(path string, contents []byte, records []extract.ImportRecord) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(contentKey(path, contents), data)
	})
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

func contentKey(path string, contents []byte) []byte {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(contents)
	return []byte(hex.EncodeToString(h.Sum(nil)))
}

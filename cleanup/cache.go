package cleanup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

const cacheTTL = 24 * time.Hour

// Cache stores cleanup results on disk keyed by model, prompt, and
// transcript so repeated dictations skip the API round trip.
type Cache struct {
	db *badger.DB
}

// OpenCache opens or creates a cache database at dir.
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

func cacheKey(model, prompt, text string) []byte {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return []byte(hex.EncodeToString(h.Sum(nil)))
}

// Get returns the cached result and whether it was present.
func (c *Cache) Get(model, prompt, text string) (string, bool) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(model, prompt, text))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return "", false
	}
	return string(value), true
}

// Put stores a result with the cache TTL.
func (c *Cache) Put(model, prompt, text, result string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(cacheKey(model, prompt, text), []byte(result)).WithTTL(cacheTTL)
		return txn.SetEntry(entry)
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

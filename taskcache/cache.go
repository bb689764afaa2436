// Package taskcache memoizes compiled tasks on disk, keyed by a digest of
// their source domain and problem text, so repeat invocations against the
// same planning description skip re-parsing and re-grounding.
package taskcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"gopkg.in/yaml.v3"

	"github.com/corox/temporalplan/task"
)

// Cache is a BadgerDB-backed store mapping a (domain, problem) text digest
// to its compiled task.Snapshot.
type Cache struct {
	db *badger.DB
}

// Open opens (creating if absent) a cache rooted at path.
func Open(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open task cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the stable digest used to address a (domain, problem) pair.
func Key(domainText, problemText string) string {
	h := sha256.New()
	h.Write([]byte(domainText))
	h.Write([]byte{0})
	h.Write([]byte(problemText))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached task for key, or ok=false on a miss.
func (c *Cache) Get(key string) (*task.Task, bool) {
	var snap task.Snapshot
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return yaml.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, false
	}
	return task.FromSnapshot(snap), true
}

// Put stores t's snapshot under key.
func (c *Cache) Put(key string, t *task.Task) error {
	b, err := yaml.Marshal(t.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to serialise task: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), b)
	})
}

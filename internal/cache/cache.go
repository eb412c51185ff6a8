// Package cache provides a two-tier cache for collaborator responses
// (typically Proposer/Runner calls against an LLM): a bounded in-memory
// LRU in front of an on-disk Badger store, mirroring the teacher's split
// between its in-process and persistent cache layers.
package cache

import (
	"context"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a read-through, write-through two-tier byte cache. Keys and
// values are opaque; callers are responsible for their own encoding. The
// internal/llm adapters do not use it.
type Cache struct {
	memory *lru.Cache[string, []byte]
	disk   *badger.DB
	ttl    time.Duration
}

// Options configures a Cache.
type Options struct {
	// MemorySize is the in-memory LRU's entry capacity.
	MemorySize int
	// DiskPath is the Badger data directory. Empty disables the disk
	// tier (memory-only cache).
	DiskPath string
	// TTL is the disk entry expiry; zero means entries never expire.
	TTL time.Duration
}

// New builds a Cache per opts. MemorySize defaults to 256 if unset.
func New(opts Options) (*Cache, error) {
	if opts.MemorySize <= 0 {
		opts.MemorySize = 256
	}

	memory, err := lru.New[string, []byte](opts.MemorySize)
	if err != nil {
		return nil, fmt.Errorf("cache: build LRU: %w", err)
	}

	c := &Cache{memory: memory, ttl: opts.TTL}

	if opts.DiskPath != "" {
		badgerOpts := badger.DefaultOptions(opts.DiskPath).WithLogger(nil)
		db, err := badger.Open(badgerOpts)
		if err != nil {
			return nil, fmt.Errorf("cache: open badger at %q: %w", opts.DiskPath, err)
		}
		c.disk = db
	}

	return c, nil
}

// Close releases the disk store, if one is open.
func (c *Cache) Close() error {
	if c.disk == nil {
		return nil
	}
	return c.disk.Close()
}

// Get returns the cached value for key, checking memory first and falling
// back to disk (populating memory on a disk hit).
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if v, ok := c.memory.Get(key); ok {
		return v, true, nil
	}
	if c.disk == nil {
		return nil, false, nil
	}

	var value []byte
	err := c.disk.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			value = append([]byte(nil), v...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: disk get: %w", err)
	}

	c.memory.Add(key, value)
	return value, true, nil
}

// Set writes value to both tiers.
func (c *Cache) Set(_ context.Context, key string, value []byte) error {
	c.memory.Add(key, value)
	if c.disk == nil {
		return nil
	}
	return c.disk.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

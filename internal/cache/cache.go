// Package cache provides a layered page cache so repeated runs over the same
// city do not re-fetch unchanged listing pages.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched page bodies keyed by URL hash
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Key generates a cache key from a URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "deedtrace:v1:" + hex.EncodeToString(hash[:])
}

// Layered checks memory first, then disk, promoting disk hits to memory
type Layered struct {
	memory *Memory
	disk   *Disk
}

// NewLayered creates a memory+disk cache rooted at dir
func NewLayered(dir string, memoryTTL, diskTTL time.Duration) *Layered {
	return &Layered{
		memory: NewMemory(memoryTTL),
		disk:   NewDisk(dir, diskTTL),
	}
}

func (c *Layered) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val)
		return val, true
	}
	return nil, false
}

func (c *Layered) Set(key string, value []byte) error {
	if err := c.memory.Set(key, value); err != nil {
		return err
	}
	return c.disk.Set(key, value)
}

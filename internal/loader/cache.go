package loader

import (
	"sync"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/table"
	"github.com/google/uuid"
)

// uploadNamespace scopes upload identities so they never collide with other
// name-based UUIDs.
var uploadNamespace = uuid.MustParse("6f1d6b0e-8a51-4c1e-9a43-2f5f0e3b7c11")

// Identity derives a stable id for an upload from its name and bytes. The same
// file uploaded twice gets the same id.
func Identity(name string, data []byte) uuid.UUID {
	buf := make([]byte, 0, len(name)+1+len(data))
	buf = append(buf, name...)
	buf = append(buf, 0)
	buf = append(buf, data...)
	return uuid.NewSHA1(uploadNamespace, buf)
}

// Cache memoizes parsed uploads by identity so re-renders never re-parse.
// Only successful loads are stored. When full, the oldest entry is evicted.
type Cache struct {
	mu      sync.Mutex
	opt     Options
	max     int
	entries map[uuid.UUID]*table.Table
	order   []uuid.UUID

	hits, misses int
}

// NewCache returns a cache holding at most maxEntries tables (minimum 1).
func NewCache(opt Options, maxEntries int) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache{opt: opt, max: maxEntries, entries: make(map[uuid.UUID]*table.Table)}
}

// Load returns the cached table for the upload or parses and stores it.
func (c *Cache) Load(name string, data []byte) (uuid.UUID, *table.Table, error) {
	id := Identity(name, data)
	c.mu.Lock()
	if t, ok := c.entries[id]; ok {
		c.hits++
		c.mu.Unlock()
		return id, t, nil
	}
	c.misses++
	c.mu.Unlock()

	t, err := Load(name, data, c.opt)
	if err != nil {
		return id, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries[id]; ok {
		return id, prev, nil
	}
	if len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[id] = t
	c.order = append(c.order, id)
	return id, t, nil
}

// Get returns a previously loaded table.
func (c *Cache) Get(id uuid.UUID) (*table.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[id]
	return t, ok
}

// Stats reports cache hits and misses since creation.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

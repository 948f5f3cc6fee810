package leads

import (
	"sync"
	"time"
)

// Collection is a session's working set of leads. It keeps insertion order and rescores
// every record whenever its contents change.
type Collection struct {
	mu        sync.RWMutex
	records   []Record
	updatedAt time.Time
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends one lead and returns it scored.
func (c *Collection) Add(r Record) Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = ScoreAll(append(c.records, r))
	c.updatedAt = time.Now().UTC()
	return c.records[len(c.records)-1]
}

// Replace swaps the whole collection, as an upload does, and returns the scored records.
func (c *Collection) Replace(records []Record) []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = ScoreAll(records)
	c.updatedAt = time.Now().UTC()
	return c.snapshotLocked()
}

// Get returns a copy of the scored records in insertion order.
func (c *Collection) Get() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Len reports how many leads are held.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// UpdatedAt is the time of the last mutation, zero when never mutated.
func (c *Collection) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

func (c *Collection) snapshotLocked() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

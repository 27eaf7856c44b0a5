package pkg

import (
	"sync"
	"time"
)

// Defaults for the webhook dedup cache.
const (
	DefaultDedupTTL     = time.Hour
	DefaultDedupSoftCap = 1000
)

// DedupCache is a process-local, best-effort idempotency guard for webhook
// deliveries. Entries expire lazily on lookup after the TTL, and expired
// entries are actively swept whenever the map grows past the soft cap.
// It is not a source of truth: concurrent deliveries to different
// processes can both pass the Seen check, and the durable guard (the
// ledger's unique reference constraint) must back any money movement.
type DedupCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	softCap int
	seen    map[string]time.Time
	now     func() time.Time
}

func NewDedupCache(ttl time.Duration, softCap int) *DedupCache {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	if softCap <= 0 {
		softCap = DefaultDedupSoftCap
	}
	return &DedupCache{
		ttl:     ttl,
		softCap: softCap,
		seen:    make(map[string]time.Time),
		now:     time.Now,
	}
}

// Seen reports whether the event ID was marked within the TTL window.
// An entry older than the TTL is treated as unseen even if still present.
func (c *DedupCache) Seen(eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	firstSeen, ok := c.seen[eventID]
	if !ok {
		return false
	}
	return c.now().Sub(firstSeen) < c.ttl
}

// Mark records the event ID with the current time. When the map exceeds
// the soft cap, all expired entries are swept; the cap is soft, not an
// LRU bound.
func (c *DedupCache) Mark(eventID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seen[eventID] = c.now()

	if len(c.seen) > c.softCap {
		cutoff := c.now().Add(-c.ttl)
		for id, t := range c.seen {
			if t.Before(cutoff) {
				delete(c.seen, id)
			}
		}
	}
}

// Len reports the number of entries currently held, expired or not
func (c *DedupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

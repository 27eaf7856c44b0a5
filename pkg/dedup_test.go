package pkg

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDedupCacheSeenWithinTTL(t *testing.T) {
	c := NewDedupCache(time.Hour, 10)

	assert.False(t, c.Seen("evt_1"))
	c.Mark("evt_1")
	assert.True(t, c.Seen("evt_1"))
	assert.False(t, c.Seen("evt_2"))
}

func TestDedupCacheEntryExpiresAfterTTL(t *testing.T) {
	c := NewDedupCache(time.Hour, 10)
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	c.Mark("evt_1")
	assert.True(t, c.Seen("evt_1"))

	// One second short of the TTL: still seen
	now = now.Add(time.Hour - time.Second)
	assert.True(t, c.Seen("evt_1"))

	// Past the TTL: treated as brand new
	now = now.Add(2 * time.Second)
	assert.False(t, c.Seen("evt_1"))
}

func TestDedupCacheSweepsExpiredPastSoftCap(t *testing.T) {
	c := NewDedupCache(time.Hour, 5)
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		c.Mark(fmt.Sprintf("old_%d", i))
	}
	assert.Equal(t, 5, c.Len())

	// Expired entries linger until the cap is crossed
	now = now.Add(2 * time.Hour)
	assert.Equal(t, 5, c.Len())

	// The insert that pushes past the cap sweeps everything stale
	c.Mark("fresh")
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Seen("fresh"))
}

func TestDedupCacheSweepKeepsLiveEntries(t *testing.T) {
	c := NewDedupCache(time.Hour, 3)
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	c.Mark("old_1")
	c.Mark("old_2")
	now = now.Add(2 * time.Hour)
	c.Mark("live_1")
	c.Mark("live_2") // crosses the cap, sweeps the two expired entries

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Seen("live_1"))
	assert.True(t, c.Seen("live_2"))
	assert.False(t, c.Seen("old_1"))
}

func TestDedupCacheDefaults(t *testing.T) {
	c := NewDedupCache(0, -1)
	assert.Equal(t, DefaultDedupTTL, c.ttl)
	assert.Equal(t, DefaultDedupSoftCap, c.softCap)
}

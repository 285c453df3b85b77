package cmd

import (
	"context"
	"sync"
	"time"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
)

// detailsEntry holds a cached window tree with its timestamp.
type detailsEntry struct {
	details   *model.WindowDetails
	timestamp time.Time
}

// cachedSystem wraps a platform.System and caches window trees by window
// ID for ttl, so read_window followed by map_erp_elements reads the tree
// once. A ttl of 0 disables caching.
type cachedSystem struct {
	platform.System

	mu      sync.Mutex
	entries map[string]detailsEntry
	ttl     time.Duration
	now     func() time.Time
}

func newCachedSystem(sys platform.System, ttl time.Duration) *cachedSystem {
	return &cachedSystem{
		System:  sys,
		entries: make(map[string]detailsEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetWindowDetails returns the cached tree if within ttl, otherwise reads fresh.
func (c *cachedSystem) GetWindowDetails(ctx context.Context, windowID string) (*model.WindowDetails, error) {
	if c.ttl == 0 {
		return c.System.GetWindowDetails(ctx, windowID)
	}

	c.mu.Lock()
	if entry, ok := c.entries[windowID]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		c.mu.Unlock()
		return entry.details, nil
	}
	c.mu.Unlock()

	details, err := c.System.GetWindowDetails(ctx, windowID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[windowID] = detailsEntry{details: details, timestamp: c.now()}
	c.mu.Unlock()
	return details, nil
}

// invalidateAll clears the cache. Called after anything that changes the UI.
func (c *cachedSystem) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]detailsEntry)
}

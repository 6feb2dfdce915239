package anubis

import (
	"sync"
	"time"

	"github.com/riskibarqy/cricket-predictions/internal/domain/user"
)

type principalEntry struct {
	principal user.Principal
	expiresAt time.Time
}

// principalCache maps token hashes to verified principals. Raw tokens are never stored.
type principalCache struct {
	mu         sync.RWMutex
	entries    map[string]principalEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newPrincipalCache(ttl time.Duration, maxEntries int) *principalCache {
	return &principalCache{
		entries:    make(map[string]principalEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *principalCache) Get(tokenHash string) (user.Principal, bool) {
	if c == nil || c.ttl <= 0 {
		return user.Principal{}, false
	}
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[tokenHash]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(now) {
		c.mu.Lock()
		delete(c.entries, tokenHash)
		c.mu.Unlock()
		return user.Principal{}, false
	}
	return entry.principal, true
}

func (c *principalCache) Set(tokenHash string, principal user.Principal) {
	if c == nil || c.ttl <= 0 {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		for key, entry := range c.entries {
			if !entry.expiresAt.After(now) {
				delete(c.entries, key)
			}
		}
		if len(c.entries) >= c.maxEntries {
			for key := range c.entries {
				delete(c.entries, key)
				break
			}
		}
	}

	c.entries[tokenHash] = principalEntry{principal: principal, expiresAt: now.Add(c.ttl)}
}

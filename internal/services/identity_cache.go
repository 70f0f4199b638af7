package services

import (
	"sync"
	"time"

	"github.com/aricheng/vitalcheck/internal/models"
)

// IdentityCache is a time-boxed read-through cache of user rows, used by
// the auth middleware to avoid a database read on every request. Staleness
// within the TTL is acceptable; any user mutation must call Invalidate.
type IdentityCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uint]identityEntry
}

type identityEntry struct {
	user      models.User
	expiresAt time.Time
}

func NewIdentityCache(ttl time.Duration) *IdentityCache {
	return &IdentityCache{
		ttl:     ttl,
		entries: make(map[uint]identityEntry),
	}
}

func (cache *IdentityCache) Get(userID uint, now time.Time) (models.User, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	entry, ok := cache.entries[userID]
	if !ok {
		return models.User{}, false
	}
	if now.After(entry.expiresAt) {
		delete(cache.entries, userID)
		return models.User{}, false
	}
	return entry.user, true
}

func (cache *IdentityCache) Put(user models.User, now time.Time) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.entries[user.ID] = identityEntry{
		user:      user,
		expiresAt: now.Add(cache.ttl),
	}
}

func (cache *IdentityCache) Invalidate(userID uint) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	delete(cache.entries, userID)
}

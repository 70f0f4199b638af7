package services

import (
	"testing"
	"time"

	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/stretchr/testify/require"
)

func TestIdentityCacheHitWithinTTL(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache(time.Minute)
	now := time.Now()
	cache.Put(models.User{ID: 7, Username: "casey"}, now)

	user, ok := cache.Get(7, now.Add(30*time.Second))
	require.True(t, ok)
	require.Equal(t, "casey", user.Username)
}

func TestIdentityCacheExpiry(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache(time.Minute)
	now := time.Now()
	cache.Put(models.User{ID: 7}, now)

	_, ok := cache.Get(7, now.Add(time.Minute+time.Second))
	require.False(t, ok)

	// An expired entry is gone even for a query at an earlier time.
	_, ok = cache.Get(7, now)
	require.False(t, ok)
}

func TestIdentityCacheInvalidate(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache(time.Minute)
	now := time.Now()
	cache.Put(models.User{ID: 7}, now)
	cache.Invalidate(7)

	_, ok := cache.Get(7, now)
	require.False(t, ok)
}

func TestIdentityCacheMiss(t *testing.T) {
	t.Parallel()

	cache := NewIdentityCache(time.Minute)
	_, ok := cache.Get(42, time.Now())
	require.False(t, ok)
}

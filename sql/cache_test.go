package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	require := require.New(t)

	key := CacheKey("Project(a)", "a\x00", "hints:a=NOLOCK")
	require.Equal(key, CacheKey("Project(a)", "a\x00", "hints:a=NOLOCK"))
	require.NotEqual(key, CacheKey("Project(b)", "a\x00", "hints:a=NOLOCK"))
	require.NotEqual(key, CacheKey("Project(a)", "a\x01", "hints:a=NOLOCK"))
	require.NotEqual(key, CacheKey("Project(a)", "a\x00", ""))
}

func TestPlanCache(t *testing.T) {
	require := require.New(t)

	cache := NewPlanCache(2)

	_, err := cache.Get(1)
	require.True(ErrKeyNotFound.Is(err))

	cache.Put(1, "one")
	v, err := cache.Get(1)
	require.NoError(err)
	require.Equal("one", v)

	hits, misses := cache.Stats()
	require.Equal(uint64(1), hits)
	require.Equal(uint64(1), misses)

	// LRU eviction: inserting past capacity drops the oldest entry.
	cache.Put(2, "two")
	cache.Put(3, "three")
	_, err = cache.Get(1)
	require.True(ErrKeyNotFound.Is(err))

	cache.Free()
	_, err = cache.Get(3)
	require.True(ErrKeyNotFound.Is(err))
}

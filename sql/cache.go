package sql

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"github.com/mitchellh/hashstructure"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrKeyNotFound is returned when the key could not be found in the cache.
var ErrKeyNotFound = errors.NewKind("plan cache: key %d not found")

// CacheKey returns a hash of the given plan signature to be used as key
// in the plan cache. The signature combines the structural rendering of
// the tree with the parameter null pattern and side-channel context
// keys, so two executions share a key exactly when the optimizer is
// guaranteed to produce a structurally identical plan for both.
func CacheKey(plan string, nullPattern string, contextSig string) uint64 {
	key, err := hashstructure.Hash(struct {
		Plan    string
		Nulls   string
		Context string
	}{plan, nullPattern, contextSig}, nil)
	if err != nil {
		// hashstructure cannot fail on a struct of strings.
		panic(err)
	}
	return key
}

// PlanCache is an LRU cache of compiled plans keyed on CacheKey. Only
// plans whose compilation reported canCache=true are stored.
type PlanCache struct {
	cache  *lru.Cache
	hits   uint64
	misses uint64
}

// NewPlanCache creates a plan cache holding up to size entries.
func NewPlanCache(size uint) *PlanCache {
	cache, _ := lru.New(int(size))
	return &PlanCache{cache: cache}
}

// Put stores a compiled plan under the given key.
func (c *PlanCache) Put(key uint64, plan interface{}) {
	c.cache.Add(key, plan)
}

// Get retrieves the compiled plan stored under the given key.
func (c *PlanCache) Get(key uint64) (interface{}, error) {
	v, ok := c.cache.Get(key)
	if !ok {
		atomic.AddUint64(&c.misses, 1)
		return nil, ErrKeyNotFound.New(key)
	}
	atomic.AddUint64(&c.hits, 1)
	return v, nil
}

// Stats returns the hit and miss counters of the cache.
func (c *PlanCache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

// Free empties the cache.
func (c *PlanCache) Free() {
	c.cache.Purge()
}

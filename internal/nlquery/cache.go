package nlquery

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// segmentCache maps segment text to its parse/translate outcome so that
// repeated identical questions skip the tokenizer, parser and corrector.
// Cached entries are safe to share because ASTs and statements are immutable
// after construction.
//
// Eviction strategy: when the cache reaches capacity the whole map is
// replaced. Simpler than LRU and sufficient for a small number of distinct
// question templates repeated many times.
//
// Thread safety: all methods are safe for concurrent use.
type segmentCache struct {
	mu    sync.RWMutex
	items map[uint64]*cachedSegment
	max   int
}

// cachedSegment holds the execution-independent part of a segment result.
type cachedSegment struct {
	ast           Node
	correctedText string
	suggestions   map[string]string
	statements    []Statement
	err           error
}

func newSegmentCache(max int) *segmentCache {
	return &segmentCache{
		items: make(map[uint64]*cachedSegment, max),
		max:   max,
	}
}

// segmentKey hashes the exact segment text. Keys are deliberately not
// normalized: a cached AST carries the phrase it was parsed from, so two
// casings of the same question must not share an entry.
func segmentKey(segment string) uint64 {
	return xxhash.Sum64String(segment)
}

func (c *segmentCache) get(segment string) (*cachedSegment, bool) {
	key := segmentKey(segment)
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	return entry, ok
}

func (c *segmentCache) put(segment string, entry *cachedSegment) {
	key := segmentKey(segment)
	c.mu.Lock()
	if len(c.items) >= c.max {
		c.items = make(map[uint64]*cachedSegment, c.max)
	}
	c.items[key] = entry
	c.mu.Unlock()
}

func (c *segmentCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

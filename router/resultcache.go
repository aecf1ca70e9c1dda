// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"sync"
	"sync/atomic"
)

// defaultResultCacheSize bounds the number of cached static (parameter-free)
// match results, across all methods combined (one map keyed by method and
// path). Parameterized matches are never cached — the
// matched parameter values differ per request, so caching would only ever
// produce a single hit.
const defaultResultCacheSize = 2048

// cachedMatch is a cached lookup result for a method+path pair that
// resolved to a static route (no parameters to rebind).
type cachedMatch struct {
	handlers []HandlerFunc
	pattern  string
}

// resultCache is a bounded cache of static-route match results, keyed by
// "METHOD path". When full, it evicts half of its entries rather than one
// at a time, trading a larger latency spike on eviction for far fewer
// evictions overall under sustained load.
type resultCache struct {
	mu       sync.RWMutex
	entries  map[string]cachedMatch
	maxSize  int
	hits     atomic.Uint64
	misses   atomic.Uint64
	evicts   atomic.Uint64
}

func newResultCache(maxSize int) *resultCache {
	if maxSize <= 0 {
		maxSize = defaultResultCacheSize
	}
	return &resultCache{
		entries: make(map[string]cachedMatch, maxSize),
		maxSize: maxSize,
	}
}

func (c *resultCache) get(key string) (cachedMatch, bool) {
	c.mu.RLock()
	m, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	return m, ok
}

func (c *resultCache) put(key string, m cachedMatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evictHalfLocked()
	}
	c.entries[key] = m
}

// evictHalfLocked drops roughly half of the cached entries. Map iteration
// order in Go is randomized, so this amounts to random eviction rather than
// true LRU — acceptable for a cache whose purpose is to avoid repeated tree
// walks for a hot set of static paths, not to guarantee optimal retention.
func (c *resultCache) evictHalfLocked() {
	target := len(c.entries) / 2
	n := 0
	for k := range c.entries {
		if n >= target {
			break
		}
		delete(c.entries, k)
		n++
	}
	c.evicts.Add(uint64(n))
}

func (c *resultCache) clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// CacheStats reports result-cache hit/miss/eviction counters.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Evicts  uint64
	HitRate float64
}

func (c *resultCache) stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{Hits: hits, Misses: misses, Evicts: c.evicts.Load(), HitRate: hitRate}
}

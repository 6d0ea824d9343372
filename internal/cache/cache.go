// Package cache provides the compile result cache with LRU eviction and TTL
// support.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// ResultCache caches generated code with LRU eviction and TTL. The budget is
// counted in bytes of stored values.
type ResultCache struct {
	entries     map[string]*Entry
	mutex       sync.RWMutex
	maxSize     int64
	currentSize int64
	ttl         time.Duration
	now         func() time.Time
	// LRU list with sentinel head and tail
	head *Entry
	tail *Entry

	hits      int64
	misses    int64
	sets      int64
	deletes   int64
	evictions int64
}

// Entry is a cached compile result.
type Entry struct {
	Key        string
	Value      []byte
	Source     string
	CreatedAt  time.Time
	AccessedAt time.Time
	Size       int64

	prev *Entry
	next *Entry
}

// Stats is a point-in-time copy of the cache counters.
type Stats struct {
	Entries   int     `json:"entries"   yaml:"entries"`
	Size      int64   `json:"size"      yaml:"size"`
	MaxSize   int64   `json:"max_size"  yaml:"max_size"`
	Hits      int64   `json:"hits"      yaml:"hits"`
	Misses    int64   `json:"misses"    yaml:"misses"`
	Sets      int64   `json:"sets"      yaml:"sets"`
	Deletes   int64   `json:"deletes"   yaml:"deletes"`
	Evictions int64   `json:"evictions" yaml:"evictions"`
	HitRate   float64 `json:"hit_rate"  yaml:"hit_rate"`
}

// NewResultCache creates a cache holding at most maxSize bytes. A ttl of
// zero disables expiry.
func NewResultCache(maxSize int64, ttl time.Duration) *ResultCache {
	rc := &ResultCache{
		entries: make(map[string]*Entry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
	rc.head = &Entry{}
	rc.tail = &Entry{}
	rc.head.next = rc.tail
	rc.tail.prev = rc.head

	return rc
}

// Get retrieves a value from the cache.
func (rc *ResultCache) Get(key string) ([]byte, bool) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	entry, ok := rc.lookup(key)
	if !ok {
		atomic.AddInt64(&rc.misses, 1)
		return nil, false
	}

	rc.moveToFront(entry)
	entry.AccessedAt = rc.now()
	atomic.AddInt64(&rc.hits, 1)
	return entry.Value, true
}

// Set stores value under key. Source names the fixture the value was
// compiled from so InvalidateSource can drop it later. Values larger than
// the whole budget are not stored.
func (rc *ResultCache) Set(key, source string, value []byte) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	size := int64(len(value))
	if size > rc.maxSize {
		return
	}

	if existing, ok := rc.entries[key]; ok {
		rc.currentSize += size - existing.Size
		existing.Value = value
		existing.Source = source
		existing.Size = size
		existing.CreatedAt = rc.now()
		existing.AccessedAt = existing.CreatedAt
		rc.moveToFront(existing)
		rc.evictIfNeeded(0)
		atomic.AddInt64(&rc.sets, 1)
		return
	}

	rc.evictIfNeeded(size)

	now := rc.now()
	entry := &Entry{
		Key:        key,
		Value:      value,
		Source:     source,
		CreatedAt:  now,
		AccessedAt: now,
		Size:       size,
	}
	rc.entries[key] = entry
	rc.currentSize += size
	rc.addToFront(entry)
	atomic.AddInt64(&rc.sets, 1)
}

// Delete removes key and reports whether it was present.
func (rc *ResultCache) Delete(key string) bool {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	entry, ok := rc.entries[key]
	if !ok {
		return false
	}
	rc.remove(entry)
	atomic.AddInt64(&rc.deletes, 1)
	return true
}

// InvalidateSource removes every entry compiled from source and returns how
// many were dropped.
func (rc *ResultCache) InvalidateSource(source string) int {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	dropped := 0
	for _, entry := range rc.entries {
		if entry.Source != source {
			continue
		}
		rc.remove(entry)
		dropped++
	}

	atomic.AddInt64(&rc.deletes, int64(dropped))
	return dropped
}

// Clear drops all entries and resets the counters.
func (rc *ResultCache) Clear() {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	rc.entries = make(map[string]*Entry)
	rc.currentSize = 0
	rc.head.next = rc.tail
	rc.tail.prev = rc.head

	atomic.StoreInt64(&rc.hits, 0)
	atomic.StoreInt64(&rc.misses, 0)
	atomic.StoreInt64(&rc.sets, 0)
	atomic.StoreInt64(&rc.deletes, 0)
	atomic.StoreInt64(&rc.evictions, 0)
}

// Len returns the number of live entries.
func (rc *ResultCache) Len() int {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()
	return len(rc.entries)
}

// Stats returns a snapshot of the cache counters.
func (rc *ResultCache) Stats() Stats {
	rc.mutex.RLock()
	s := Stats{
		Entries: len(rc.entries),
		Size:    rc.currentSize,
		MaxSize: rc.maxSize,
	}
	rc.mutex.RUnlock()

	s.Hits = atomic.LoadInt64(&rc.hits)
	s.Misses = atomic.LoadInt64(&rc.misses)
	s.Sets = atomic.LoadInt64(&rc.sets)
	s.Deletes = atomic.LoadInt64(&rc.deletes)
	s.Evictions = atomic.LoadInt64(&rc.evictions)
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// lookup returns a live entry, dropping it first when it has expired.
func (rc *ResultCache) lookup(key string) (*Entry, bool) {
	entry, ok := rc.entries[key]
	if !ok {
		return nil, false
	}
	if rc.ttl > 0 && rc.now().Sub(entry.CreatedAt) > rc.ttl {
		rc.remove(entry)
		return nil, false
	}
	return entry, true
}

func (rc *ResultCache) evictIfNeeded(newSize int64) {
	for rc.currentSize+newSize > rc.maxSize && rc.tail.prev != rc.head {
		rc.remove(rc.tail.prev)
		atomic.AddInt64(&rc.evictions, 1)
	}
}

func (rc *ResultCache) remove(entry *Entry) {
	rc.removeFromList(entry)
	delete(rc.entries, entry.Key)
	rc.currentSize -= entry.Size
}

func (rc *ResultCache) addToFront(entry *Entry) {
	entry.prev = rc.head
	entry.next = rc.head.next
	rc.head.next.prev = entry
	rc.head.next = entry
}

func (rc *ResultCache) removeFromList(entry *Entry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
}

func (rc *ResultCache) moveToFront(entry *Entry) {
	rc.removeFromList(entry)
	rc.addToFront(entry)
}

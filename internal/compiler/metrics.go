package compiler

import (
	"sync"
	"time"
)

// Metrics tracks compile outcomes.
type Metrics struct {
	mutex sync.RWMutex
	snap  MetricsSnapshot
}

// MetricsSnapshot is a copy of the counters safe to read without locking.
type MetricsSnapshot struct {
	TotalCompiles   int64         `json:"total_compiles"   yaml:"total_compiles"`
	Succeeded       int64         `json:"succeeded"        yaml:"succeeded"`
	Failed          int64         `json:"failed"           yaml:"failed"`
	CacheHits       int64         `json:"cache_hits"       yaml:"cache_hits"`
	TotalDuration   time.Duration `json:"total_duration"   yaml:"total_duration"`
	AverageDuration time.Duration `json:"average_duration" yaml:"average_duration"`
}

// NewMetrics creates zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record counts one compile. Cache hits do not contribute to durations.
func (m *Metrics) Record(duration time.Duration, cacheHit bool, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.snap.TotalCompiles++
	switch {
	case err != nil:
		m.snap.Failed++
	case cacheHit:
		m.snap.Succeeded++
		m.snap.CacheHits++
	default:
		m.snap.Succeeded++
		m.snap.TotalDuration += duration
	}

	if compiled := m.snap.Succeeded - m.snap.CacheHits; compiled > 0 {
		m.snap.AverageDuration = m.snap.TotalDuration / time.Duration(compiled)
	}
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.snap
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.snap = MetricsSnapshot{}
}

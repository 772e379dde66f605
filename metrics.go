package goPress

import "sync/atomic"

// MetricID identifies one client counter.
type MetricID uint16

const (
	// MetricRequestSent counts requests entering the pipeline, replays
	// included.
	MetricRequestSent MetricID = iota
	// MetricRefreshAttempt counts refresh exchanges started.
	MetricRefreshAttempt
	// MetricRefreshSuccess counts refresh exchanges that minted a credential.
	MetricRefreshSuccess
	// MetricRefreshFailure counts refresh exchanges that failed or were
	// impossible.
	MetricRefreshFailure
	// MetricReplay counts requests replayed after a successful refresh.
	MetricReplay
	// MetricSessionTerminated counts irrecoverable teardowns.
	MetricSessionTerminated
	// MetricLoginSuccess counts successful login/register exchanges.
	MetricLoginSuccess
	// MetricLoginFailure counts rejected login/register exchanges.
	MetricLoginFailure
	// MetricLogout counts explicit logouts.
	MetricLogout
	// MetricRehydrated counts sessions restored from the persisted mirror.
	MetricRehydrated
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds the client's lock-free counters. All methods are safe on a
// nil receiver; a nil *Metrics simply counts nothing.
type Metrics struct {
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

// Inc adds one to the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads a single counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{Counters: make(map[MetricID]uint64, int(metricIDCount))}
	if m == nil {
		return s
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return s
}

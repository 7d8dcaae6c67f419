package pinvault

import "sync/atomic"

// MetricID identifies one engine counter.
type MetricID uint16

const (
	// MetricAuthSuccess counts successful authentications.
	MetricAuthSuccess MetricID = iota
	// MetricAuthFailure counts wrong-PIN attempts.
	MetricAuthFailure
	// MetricAuthLockedRejected counts attempts refused because the record
	// was already locked.
	MetricAuthLockedRejected
	// MetricAccountLockout counts unlocked-to-locked transitions.
	MetricAccountLockout
	// MetricPINChangeSuccess counts completed PIN changes.
	MetricPINChangeSuccess
	// MetricPINChangeInvalidLength counts PIN changes rejected for length.
	MetricPINChangeInvalidLength
	// MetricPINChangeInvalidPIN counts PIN changes rejected for non-digit
	// input.
	MetricPINChangeInvalidPIN
	// MetricPINChangeWeakRejected counts PIN changes rejected by policy.
	MetricPINChangeWeakRejected
	// MetricAccountCreated counts created accounts.
	MetricAccountCreated
	// MetricAccountCreationDuplicate counts creations refused for a taken
	// username.
	MetricAccountCreationDuplicate
	// MetricAccountCreationFailure counts other creation failures.
	MetricAccountCreationFailure
	// MetricWithdrawalSuccess counts completed withdrawals.
	MetricWithdrawalSuccess
	// MetricWithdrawalRejected counts withdrawals refused for amount or
	// funds.
	MetricWithdrawalRejected
	// MetricReceiptIssued counts minted session receipts.
	MetricReceiptIssued
	// MetricReceiptRejected counts receipts that failed validation.
	MetricReceiptRejected
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free engine counters.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics creates a [Metrics] set honoring the enable flag.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled: cfg.Enabled,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies all counters. Disabled metrics yield an empty map.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, int(metricIDCount)),
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return s
}

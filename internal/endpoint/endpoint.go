package endpoint

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Endpoint is a node able to execute inference requests, local or remote.
// ID, Name, Addr and HWScore are fixed at construction. A literal
// &Endpoint{...} is usable; its history is allocated on first use.
type Endpoint struct {
	ID   uuid.UUID
	Name string
	// Addr is the peer proxy base URL; empty for the local node.
	Addr string
	// HWScore is a static hardware capability score (> 0).
	HWScore float64

	pending  atomic.Int64
	initOnce sync.Once
	recent   *history
}

// New constructs an endpoint. Non-positive hw scores are clamped to 1.
func New(id uuid.UUID, name, addr string, hwScore float64) *Endpoint {
	if hwScore <= 0 {
		hwScore = 1
	}
	return &Endpoint{ID: id, Name: name, Addr: addr, HWScore: hwScore, recent: newHistory(HistorySize)}
}

// Pending returns the number of dispatched, not yet completed requests.
func (e *Endpoint) Pending() int64 { return e.pending.Load() }

// Acquire marks one more request in flight and returns the new count.
func (e *Endpoint) Acquire() int64 { return e.pending.Add(1) }

// Release marks one request as completed. The counter never drops below zero.
func (e *Endpoint) Release() {
	for {
		cur := e.pending.Load()
		if cur <= 0 {
			return
		}
		if e.pending.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// Record appends a completed call to the recent history. Returns true when
// the oldest entry was evicted.
func (e *Endpoint) Record(o Outcome) bool { return e.ring().add(o) }

// Recent returns the recent outcomes, oldest first.
func (e *Endpoint) Recent() []Outcome { return e.ring().snapshot() }

func (e *Endpoint) ring() *history {
	e.initOnce.Do(func() {
		if e.recent == nil {
			e.recent = newHistory(HistorySize)
		}
	})
	return e.recent
}

// AvgLatencyMs is the integer mean of recent outcomes in ms, with failures
// charged FailurePenalty. An endpoint with no history averages 0.
func (e *Endpoint) AvgLatencyMs() int64 {
	return AvgLatencyMs(e.Recent())
}

// AvgLatencyMs averages outcomes the same way Endpoint.AvgLatencyMs does.
func AvgLatencyMs(outcomes []Outcome) int64 {
	if len(outcomes) == 0 {
		return 0
	}
	var sum int64
	for _, o := range outcomes {
		sum += o.Millis()
	}
	return sum / int64(len(outcomes))
}

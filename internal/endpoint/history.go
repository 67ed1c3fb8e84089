package endpoint

import (
	"sync"
	"time"
)

// HistorySize is the number of completed calls kept per endpoint.
const HistorySize = 5

// FailurePenalty is the latency charged for a failed or timed-out call when
// averaging recent outcomes.
const FailurePenalty = 10 * time.Second

// Outcome is one completed call. Failed outcomes carry no duration.
type Outcome struct {
	Duration time.Duration
	Failed   bool
}

// Succeeded builds an outcome for a call that completed in d.
func Succeeded(d time.Duration) Outcome { return Outcome{Duration: d} }

// Failure builds an outcome for a call that failed or timed out.
func Failure() Outcome { return Outcome{Failed: true} }

// Millis returns the outcome latency in ms, charging FailurePenalty for failures.
func (o Outcome) Millis() int64 {
	if o.Failed {
		return FailurePenalty.Milliseconds()
	}
	return o.Duration.Milliseconds()
}

// history is a fixed-capacity circular buffer with oldest-first eviction.
type history struct {
	mu    sync.Mutex
	items []Outcome
	head  int // index of oldest element
	size  int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = HistorySize
	}
	return &history{items: make([]Outcome, capacity)}
}

// add appends o, evicting the oldest entry when full. Returns true on eviction.
func (h *history) add(o Outcome) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := len(h.items)
	if h.size < c {
		h.items[(h.head+h.size)%c] = o
		h.size++
		return false
	}
	h.items[h.head] = o
	h.head = (h.head + 1) % c
	return true
}

// snapshot copies the buffer oldest-first.
func (h *history) snapshot() []Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Outcome, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.items[(h.head+i)%len(h.items)]
	}
	return out
}

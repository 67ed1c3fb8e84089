package policy

import "fogproxy/internal/endpoint"

// Estimator supplies the load and capability figures the detour policy feeds
// into its offload utility. Implementations must be pure functions of the
// endpoint state, increase monotonically with load, and report ok=false
// instead of guessing when no local model qualifies.
type Estimator interface {
	// TimeForAccuracy estimates, in ms, how long ep needs to serve a request
	// requiring accuracy. ok is false when no catalog model qualifies.
	TimeForAccuracy(ep *endpoint.Endpoint, accuracy float64) (ms float64, ok bool)
	// QueueDelayMs estimates how long a new request waits at ep before running.
	QueueDelayMs(ep *endpoint.Endpoint) float64
	// Hardware returns ep's static capability score (> 0).
	Hardware(ep *endpoint.Endpoint) float64
}

// Defaults applied when DefaultEstimator fields are unset.
const (
	defaultCostUnitMs = 10.0
	defaultServiceMs  = 100.0
)

// DefaultEstimator derives its figures from the catalog and the endpoint's
// pending count and recent outcomes.
//
//	Hardware(ep)          = ep.HWScore (1 when unset)
//	QueueDelayMs(ep)      = (pending+1) * mean recent latency (ServiceMs when unseen)
//	TimeForAccuracy(ep,a) = cheapest model with Accuracy >= a: Cost*CostUnitMs/Hardware + pending * mean latency
type DefaultEstimator struct {
	Catalog Catalog
	// CostUnitMs converts one unit of model cost into ms on hardware score 1.
	CostUnitMs float64
	// ServiceMs is the assumed service time of an endpoint with no history.
	ServiceMs float64
}

// NewEstimator returns a DefaultEstimator with defaults applied to zero values.
func NewEstimator(c Catalog, costUnitMs, serviceMs float64) *DefaultEstimator {
	if costUnitMs <= 0 {
		costUnitMs = defaultCostUnitMs
	}
	if serviceMs <= 0 {
		serviceMs = defaultServiceMs
	}
	return &DefaultEstimator{Catalog: c, CostUnitMs: costUnitMs, ServiceMs: serviceMs}
}

func (e *DefaultEstimator) Hardware(ep *endpoint.Endpoint) float64 {
	if ep == nil || ep.HWScore <= 0 {
		return 1
	}
	return ep.HWScore
}

// QueueDelayMs is the time until a request dispatched now leaves ep: the
// requests ahead of it plus its own turn, each at ep's mean service time.
// An idle endpoint therefore still costs its recent mean, so a peer whose
// last calls failed ranks behind one that answered quickly.
func (e *DefaultEstimator) QueueDelayMs(ep *endpoint.Endpoint) float64 {
	if ep == nil {
		return 0
	}
	return float64(pending(ep)+1) * e.serviceMs(ep)
}

// waitMs is the time spent behind requests already pending at ep.
func (e *DefaultEstimator) waitMs(ep *endpoint.Endpoint) float64 {
	return float64(pending(ep)) * e.serviceMs(ep)
}

// serviceMs is ep's mean recent outcome in ms (failures charged the
// penalty), or ServiceMs when ep has no history yet.
func (e *DefaultEstimator) serviceMs(ep *endpoint.Endpoint) float64 {
	if recent := ep.Recent(); len(recent) > 0 {
		return float64(endpoint.AvgLatencyMs(recent))
	}
	if e.ServiceMs <= 0 {
		return defaultServiceMs
	}
	return e.ServiceMs
}

func pending(ep *endpoint.Endpoint) int64 {
	if n := ep.Pending(); n > 0 {
		return n
	}
	return 0
}

func (e *DefaultEstimator) TimeForAccuracy(ep *endpoint.Endpoint, accuracy float64) (float64, bool) {
	m, ok := e.Catalog.CheapestAtLeast(accuracy)
	if !ok || ep == nil {
		return 0, false
	}
	unit := e.CostUnitMs
	if unit <= 0 {
		unit = defaultCostUnitMs
	}
	return m.Cost*unit/e.Hardware(ep) + e.waitMs(ep), true
}

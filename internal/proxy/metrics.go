package proxy

import (
	"github.com/prometheus/client_golang/prometheus"

	"fogproxy/internal/policy"
)

var (
	routeDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fogproxy",
			Subsystem: "route",
			Name:      "decisions_total",
			Help:      "Routing decisions by policy and target kind",
		},
		[]string{"policy", "target"},
	)

	routeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fogproxy",
			Subsystem: "route",
			Name:      "errors_total",
			Help:      "Failed routing decisions and executions by reason",
		},
		[]string{"policy", "reason"},
	)

	routeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fogproxy",
			Subsystem: "route",
			Name:      "duration_seconds",
			Help:      "Duration of local executions and forwarded calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"target"},
	)

	endpointPending = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fogproxy",
			Subsystem: "endpoint",
			Name:      "pending",
			Help:      "Requests dispatched to an endpoint and not yet completed",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(routeDecisionsTotal, routeErrorsTotal, routeDuration, endpointPending)
}

const (
	targetLocal   = "local"
	targetForward = "forward"
)

func targetLabel(local bool) string {
	if local {
		return targetLocal
	}
	return targetForward
}

// errorReason maps an error to a low-cardinality metrics label.
func errorReason(err error) string {
	switch {
	case policy.IsNoEndpointsAvailable(err):
		return "no_endpoints"
	case policy.IsNoEligiblePeer(err):
		return "no_eligible_peer"
	case policy.IsModelCatalogEmpty(err):
		return "catalog_empty"
	case isUnknownTarget(err):
		return "unknown_target"
	case isStatus(err):
		return "upstream_status"
	case isCanceled(err):
		return "canceled"
	default:
		return "other"
	}
}

package proxy

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fogproxy/internal/endpoint"
	"fogproxy/internal/policy"
	"fogproxy/pkg/types"
)

// Node serves inference requests for one fog endpoint: it asks the policy
// where each request runs, then executes it locally or forwards it, keeping
// the pending counters and latency histories of the table current.
type Node struct {
	self    uuid.UUID
	table   *endpoint.Table
	policy  policy.Policy
	models  []types.Model
	fwd     Forwarder
	log     zerolog.Logger
	pub     policy.EventPublisher
	started time.Time

	localTotal     atomic.Uint64
	forwardedTotal atomic.Uint64

	mu      sync.Mutex
	lastErr string
}

// Result is the answer to one inference request.
type Result struct {
	Body []byte
	// Target is the endpoint chosen at this hop.
	Target uuid.UUID
	// Local is true when the request ran on this node.
	Local    bool
	Duration time.Duration
}

// Self returns the local endpoint id.
func (n *Node) Self() uuid.UUID { return n.self }

// Policy returns the active routing policy.
func (n *Node) Policy() policy.Policy { return n.policy }

// Infer routes req and runs it. Policy and backend errors are returned
// unchanged so callers can classify them.
func (n *Node) Infer(ctx context.Context, req *policy.Request) (Result, error) {
	if req == nil {
		return Result{}, errNilRequest
	}
	pname := n.policy.Name()
	target, err := n.policy.ChooseTarget(ctx, req, n.table)
	if err != nil {
		n.fail(pname, err)
		return Result{}, err
	}
	ep, ok := n.table.Get(target)
	if !ok {
		err = unknownTargetError{id: target}
		n.fail(pname, err)
		return Result{}, err
	}
	local := target == n.self
	routeDecisionsTotal.WithLabelValues(pname, targetLabel(local)).Inc()
	n.pub.Publish(policy.Event{Name: "route_decision", Policy: pname, Fields: map[string]any{
		"target": ep.ID.String(),
		"name":   ep.Name,
		"local":  local,
		"hops":   req.Hops,
	}})
	n.log.Debug().
		Str("target", ep.Name).
		Bool("local", local).
		Int("hops", req.Hops).
		Float64("accuracy", req.Accuracy).
		Float64("priority", req.Priority).
		Msg("route decision")

	gauge := endpointPending.WithLabelValues(ep.ID.String())
	gauge.Set(float64(ep.Acquire()))
	start := time.Now()
	var body []byte
	if local {
		body, err = n.policy.ProcessLocally(ctx, req)
	} else {
		body, err = n.fwd.Forward(ctx, ep, req.Next(n.self))
	}
	dur := time.Since(start)
	ep.Release()
	gauge.Set(float64(ep.Pending()))

	if err != nil {
		ep.Record(endpoint.Failure())
	} else {
		ep.Record(endpoint.Succeeded(dur))
	}
	routeDuration.WithLabelValues(targetLabel(local)).Observe(dur.Seconds())

	event := "forward_done"
	if local {
		event = "local_done"
		n.localTotal.Add(1)
	} else {
		n.forwardedTotal.Add(1)
	}
	fields := map[string]any{"target": ep.ID.String(), "duration_ms": dur.Milliseconds(), "failed": err != nil}
	if err != nil {
		fields["error"] = err.Error()
	}
	n.pub.Publish(policy.Event{Name: event, Policy: pname, Fields: fields})
	if err != nil {
		n.fail(pname, err)
		return Result{Target: target, Local: local, Duration: dur}, err
	}
	return Result{Body: body, Target: target, Local: local, Duration: dur}, nil
}

func (n *Node) fail(pname string, err error) {
	routeErrorsTotal.WithLabelValues(pname, errorReason(err)).Inc()
	n.log.Warn().Err(err).Msg("request failed")
	n.mu.Lock()
	n.lastErr = err.Error()
	n.mu.Unlock()
}

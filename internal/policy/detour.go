package policy

import (
	"context"
	"math"

	"github.com/google/uuid"

	"fogproxy/internal/endpoint"
)

// Detour implements the two-stage fog task offloading decision described in
// https://ieeexplore.ieee.org/abstract/document/8672614: an offload test on the
// local node, then a utility minimisation over idle neighbours.
type Detour struct {
	base
}

// shouldOffload is u_off_k: true when the estimated local completion time for
// the requested accuracy exceeds the request priority. An undefined estimate
// (no local model qualifies, or self unknown) never asks for offloading.
func (p *Detour) shouldOffload(req *Request, table *endpoint.Table) bool {
	self, ok := table.Get(p.self)
	if !ok {
		p.diagnose("estimate_undefined", "local endpoint missing from table", map[string]any{"self": p.self.String()})
		return false
	}
	t, ok := p.est.TimeForAccuracy(self, req.Accuracy)
	if !ok {
		p.diagnose("estimate_undefined", "no local model meets accuracy", map[string]any{"accuracy": req.Accuracy})
		return false
	}
	p.log.Debug().Float64("est_local_ms", t).Float64("priority", req.Priority).Msg("u_off_k")
	return t > req.Priority
}

// utility is u_fog_jk: half queueing delay, half accuracy over hardware capability.
func (p *Detour) utility(req *Request, ep *endpoint.Endpoint) float64 {
	t1 := 0.5 * p.est.QueueDelayMs(ep)
	t2 := 0.5 * (req.Accuracy / p.est.Hardware(ep))
	p.log.Debug().Str("endpoint", ep.Name).Float64("t1", t1).Float64("t2", t2).Msg("u_fog_jk")
	return t1 + t2
}

// ChooseTarget evaluates remote candidates whenever the table holds more than
// one endpoint or the offload test fires; otherwise the request stays here.
func (p *Detour) ChooseTarget(_ context.Context, req *Request, table *endpoint.Table) (uuid.UUID, error) {
	if target, done, err := p.precheck(req, table); done {
		return target, err
	}
	if !(table.Len() > 1 || p.shouldOffload(req, table)) {
		return p.self, nil
	}
	var (
		best  *endpoint.Endpoint
		bestU float64
	)
	for _, ep := range table.Snapshot() {
		if ep.ID == p.self || ep.Pending() != 0 {
			continue
		}
		u := p.utility(req, ep)
		if best == nil || totalLess(u, bestU) {
			best, bestU = ep, u
		}
	}
	if best == nil {
		return uuid.Nil, noEligiblePeerError{policy: p.name}
	}
	return best.ID, nil
}

// ProcessLocally runs the cheapest model meeting the requested accuracy, or
// the most accurate model when none does.
func (p *Detour) ProcessLocally(ctx context.Context, req *Request) ([]byte, error) {
	if req == nil {
		return nil, errNilRequest
	}
	m, ok := p.catalog.CheapestAtLeast(req.Accuracy)
	if !ok {
		if m, ok = p.catalog.MostAccurate(); !ok {
			return nil, catalogEmptyError{policy: p.name}
		}
		p.log.Debug().Float64("accuracy", req.Accuracy).Str("model", m.Name).Msg("no model meets accuracy, using most accurate")
	}
	return p.run(ctx, req, m)
}

// totalLess orders floats totally: NaN sorts after every number.
func totalLess(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	}
	return a < b
}

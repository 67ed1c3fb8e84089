package policy

import (
	"context"

	"github.com/google/uuid"

	"fogproxy/internal/endpoint"
)

// Mintime routes to the idle, unvisited endpoint with the lowest mean recent
// latency. Endpoints with no history average 0 and are therefore tried first.
//
// Busy endpoints (pending > 0) are excluded outright, with no decay: a
// saturated endpoint is skipped until its pending count returns to zero and
// is eligible again the moment it does.
type Mintime struct {
	base
}

func (p *Mintime) ChooseTarget(_ context.Context, req *Request, table *endpoint.Table) (uuid.UUID, error) {
	if target, done, err := p.precheck(req, table); done {
		return target, err
	}
	var (
		best     *endpoint.Endpoint
		bestCost int64
	)
	for _, ep := range table.Snapshot() {
		if req.HasVisited(ep.ID) || ep.Pending() != 0 {
			continue
		}
		cost := ep.AvgLatencyMs()
		p.log.Debug().Str("endpoint", ep.Name).Int64("avg_ms", cost).Msg("mintime weight")
		if best == nil || cost < bestCost {
			best, bestCost = ep, cost
		}
	}
	if best == nil {
		return uuid.Nil, noEligiblePeerError{policy: p.name}
	}
	return best.ID, nil
}

// ProcessLocally runs the first model whose name contains the request's model
// hint, falling back to the cheapest model when there is no match.
func (p *Mintime) ProcessLocally(ctx context.Context, req *Request) ([]byte, error) {
	if req == nil {
		return nil, errNilRequest
	}
	if m, ok := p.catalog.MatchHint(req.ModelHint); ok {
		return p.run(ctx, req, m)
	}
	m, ok := p.catalog.Cheapest()
	if !ok {
		return nil, catalogEmptyError{policy: p.name}
	}
	// Without a hint the cheapest model is the expected choice, not a miss.
	if req.ModelHint != "" {
		p.diagnose("model_hint_miss", "no model matches hint, using cheapest", map[string]any{
			"hint":  req.ModelHint,
			"model": m.Name,
		})
	}
	return p.run(ctx, req, m)
}

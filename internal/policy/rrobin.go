package policy

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"fogproxy/internal/endpoint"
)

// RoundRobin cycles through the table in snapshot order. The counter is
// owned by the instance; under concurrent membership changes fairness is
// approximate.
type RoundRobin struct {
	base
	next atomic.Uint64
}

func (p *RoundRobin) ChooseTarget(_ context.Context, req *Request, table *endpoint.Table) (uuid.UUID, error) {
	if target, done, err := p.precheck(req, table); done {
		return target, err
	}
	eps := table.Snapshot()
	if len(eps) == 0 {
		return uuid.Nil, noEndpointsError{policy: p.name}
	}
	n := p.next.Add(1) - 1
	target := eps[n%uint64(len(eps))]
	p.log.Debug().Uint64("next", n).Str("target", target.Name).Msg("round robin target")
	return target.ID, nil
}

func (p *RoundRobin) ProcessLocally(ctx context.Context, req *Request) ([]byte, error) {
	return p.cheapest(ctx, req)
}

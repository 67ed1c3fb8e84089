package policy

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"fogproxy/internal/endpoint"
)

// Random picks a uniformly random endpoint, self included.
type Random struct {
	base
	mu sync.Mutex // guards base.rng, which is not safe for concurrent use
}

func (p *Random) ChooseTarget(_ context.Context, req *Request, table *endpoint.Table) (uuid.UUID, error) {
	if target, done, err := p.precheck(req, table); done {
		return target, err
	}
	eps := table.Snapshot()
	if len(eps) == 0 {
		return uuid.Nil, noEndpointsError{policy: p.name}
	}
	target := eps[p.intn(len(eps))]
	p.log.Debug().Str("target", target.Name).Int("candidates", len(eps)).Msg("random target")
	return target.ID, nil
}

func (p *Random) intn(n int) int {
	if p.rng == nil {
		return rand.IntN(n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

func (p *Random) ProcessLocally(ctx context.Context, req *Request) ([]byte, error) {
	return p.cheapest(ctx, req)
}

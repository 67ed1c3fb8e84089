package policy

import (
	"context"

	"github.com/google/uuid"

	"fogproxy/internal/endpoint"
)

// SED ("simplest ever dispatch") always serves requests locally on the
// cheapest model. It is the control baseline for the other policies.
type SED struct {
	base
}

func (p *SED) ChooseTarget(_ context.Context, req *Request, table *endpoint.Table) (uuid.UUID, error) {
	if target, done, err := p.precheck(req, table); done {
		return target, err
	}
	return p.self, nil
}

func (p *SED) ProcessLocally(ctx context.Context, req *Request) ([]byte, error) {
	return p.cheapest(ctx, req)
}

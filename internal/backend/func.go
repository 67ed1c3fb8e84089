package backend

import (
	"context"

	"fogproxy/pkg/types"
)

// Func adapts a function to the executor interface.
type Func func(ctx context.Context, m types.Model, payload []byte) ([]byte, error)

func (f Func) Execute(ctx context.Context, m types.Model, payload []byte) ([]byte, error) {
	return f(ctx, m, payload)
}

// Echo is an executor that answers with "<model>:" followed by the payload.
// It backs `fogproxy serve --backend echo` for local experiments.
var Echo = Func(func(ctx context.Context, m types.Model, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(m.Name)+1+len(payload))
	out = append(out, m.Name...)
	out = append(out, ':')
	return append(out, payload...), nil
})

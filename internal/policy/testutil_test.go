package policy

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"fogproxy/internal/endpoint"
	"fogproxy/pkg/types"
)

// fakeExecutor records which models ran and echoes the model name.
type fakeExecutor struct {
	mu  sync.Mutex
	ran []string
	err error
}

func (f *fakeExecutor) Execute(ctx context.Context, m types.Model, payload []byte) ([]byte, error) {
	f.mu.Lock()
	f.ran = append(f.ran, m.Name)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte(m.Name+":"), payload...), nil
}

func (f *fakeExecutor) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.ran) == 0 {
		return ""
	}
	return f.ran[len(f.ran)-1]
}

var errBackend = errors.New("backend exploded")

func testCatalog() []types.Model {
	return []types.Model{
		{Name: "mobilenet-fp16", Accuracy: 70, Cost: 2},
		{Name: "resnet50-int8", Accuracy: 76, Cost: 4},
		{Name: "efficientnet-b7", Accuracy: 84, Cost: 20},
		{Name: "mobilenet-int8", Accuracy: 68, Cost: 1},
	}
}

// cluster builds a table with a self endpoint followed by n peers.
func cluster(n int) (*endpoint.Table, *endpoint.Endpoint, []*endpoint.Endpoint) {
	self := endpoint.New(uuid.New(), "self", "", 1)
	peers := make([]*endpoint.Endpoint, n)
	all := []*endpoint.Endpoint{self}
	for i := range peers {
		peers[i] = endpoint.New(uuid.New(), "peer"+string(rune('a'+i)), "http://peer", 1)
		all = append(all, peers[i])
	}
	return endpoint.NewTable(all...), self, peers
}

func newPolicy(t *testing.T, kind Kind, self uuid.UUID, exec Executor, mutate ...func(*Deps)) Policy {
	t.Helper()
	d := Deps{Self: self, Models: testCatalog(), Executor: exec}
	for _, m := range mutate {
		m(&d)
	}
	p, err := New(kind, d)
	if err != nil {
		t.Fatalf("new %s: %v", kind, err)
	}
	return p
}

func seeded(seed uint64) func(*Deps) {
	return func(d *Deps) { d.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func record(ep *endpoint.Endpoint, ms ...int) {
	for _, m := range ms {
		ep.Record(endpoint.Succeeded(time.Duration(m) * time.Millisecond))
	}
}

func allKinds() []Kind {
	return []Kind{KindSED, KindRandom, KindRRobin, KindMintime, KindDetour}
}

package proxy

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"fogproxy/internal/backend"
	"fogproxy/internal/endpoint"
	"fogproxy/internal/policy"
	"fogproxy/pkg/types"
)

func testModels() []types.Model {
	return []types.Model{
		{Name: "mobilenet", Accuracy: 70, Cost: 2},
		{Name: "resnet50", Accuracy: 76, Cost: 4},
	}
}

// fakeForwarder records forwarded envelopes and answers with a fixed body.
type fakeForwarder struct {
	mu    sync.Mutex
	calls []*policy.Request
	peers []uuid.UUID
	body  []byte
	err   error
}

func (f *fakeForwarder) Forward(ctx context.Context, ep *endpoint.Endpoint, req *policy.Request) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.peers = append(f.peers, ep.ID)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

// fixedPolicy always chooses target and runs locally through exec.
type fixedPolicy struct {
	target uuid.UUID
	err    error
	exec   policy.Executor
}

func (p *fixedPolicy) Name() string { return "fixed" }

func (p *fixedPolicy) ChooseTarget(ctx context.Context, req *policy.Request, table *endpoint.Table) (uuid.UUID, error) {
	return p.target, p.err
}

func (p *fixedPolicy) ProcessLocally(ctx context.Context, req *policy.Request) ([]byte, error) {
	return p.exec.Execute(ctx, types.Model{Name: "fixed"}, req.Payload)
}

type fixture struct {
	node  *Node
	self  *endpoint.Endpoint
	peer  *endpoint.Endpoint
	fwd   *fakeForwarder
	pub   *policy.MemoryPublisher
	table *endpoint.Table
}

// newFixture builds a node with one self endpoint and one peer.
func newFixture(t *testing.T, pol func(self uuid.UUID) policy.Policy) *fixture {
	t.Helper()
	self := endpoint.New(uuid.New(), "self", "", 1)
	peer := endpoint.New(uuid.New(), "peer", "http://peer.invalid", 1)
	table := endpoint.NewTable(self, peer)
	fwd := &fakeForwarder{body: []byte("remote")}
	pub := policy.NewMemoryPublisher()
	n, err := NewNode(Config{
		Self:      self.ID,
		Table:     table,
		Policy:    pol(self.ID),
		Models:    testModels(),
		Forwarder: fwd,
		Publisher: pub,
	})
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return &fixture{node: n, self: self, peer: peer, fwd: fwd, pub: pub, table: table}
}

func builtin(t *testing.T, kind policy.Kind, exec policy.Executor) func(uuid.UUID) policy.Policy {
	return func(self uuid.UUID) policy.Policy {
		p, err := policy.New(kind, policy.Deps{Self: self, Models: testModels(), Executor: exec})
		if err != nil {
			t.Fatalf("policy: %v", err)
		}
		return p
	}
}

func echo() policy.Executor { return backend.Echo }

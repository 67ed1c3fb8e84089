package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"fogproxy/internal/endpoint"
)

func TestParseKind(t *testing.T) {
	for _, k := range allKinds() {
		if got, err := ParseKind(string(k)); err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("fastest"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
	if _, err := New("fastest", Deps{}); err == nil {
		t.Fatalf("expected New to reject unknown policy")
	}
	if len(Kinds()) != 5 || Kinds()[0] != "detour" {
		t.Fatalf("unexpected kinds: %v", Kinds())
	}
}

func TestForwardedRequestStaysLocal(t *testing.T) {
	for _, k := range allKinds() {
		tbl, self, peers := cluster(3)
		p := newPolicy(t, k, self.ID, &fakeExecutor{})
		req := &Request{Accuracy: 99, Priority: 0, Hops: 1, Visited: []uuid.UUID{peers[0].ID}}
		for i := 0; i < 20; i++ {
			got, err := p.ChooseTarget(context.Background(), req, tbl)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", k, err)
			}
			if got != self.ID {
				t.Fatalf("%s: hop>0 must stay local, got %s", k, got)
			}
		}
	}
}

func TestEmptyTableFailsForEveryPolicy(t *testing.T) {
	for _, k := range allKinds() {
		p := newPolicy(t, k, uuid.New(), &fakeExecutor{})
		for _, tbl := range []*endpoint.Table{endpoint.NewTable(), nil} {
			_, err := p.ChooseTarget(context.Background(), &Request{}, tbl)
			if !IsNoEndpointsAvailable(err) {
				t.Fatalf("%s: expected NoEndpointsAvailable, got %v", k, err)
			}
			_, err = p.ChooseTarget(context.Background(), &Request{Hops: 2}, tbl)
			if !IsNoEndpointsAvailable(err) {
				t.Fatalf("%s: expected NoEndpointsAvailable for forwarded request, got %v", k, err)
			}
		}
	}
}

func TestSingleEntryTableNeverPanics(t *testing.T) {
	for _, k := range allKinds() {
		tbl, self, _ := cluster(0)
		p := newPolicy(t, k, self.ID, &fakeExecutor{})
		// generous priority so the detour offload test does not fire
		got, err := p.ChooseTarget(context.Background(), &Request{Priority: 1e9}, tbl)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", k, err)
		}
		if got != self.ID {
			t.Fatalf("%s: expected self, got %s", k, got)
		}
	}
}

func TestEmptyCatalogIsAnError(t *testing.T) {
	for _, k := range allKinds() {
		exec := &fakeExecutor{}
		p, err := New(k, Deps{Self: uuid.New(), Executor: exec})
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		_, err = p.ProcessLocally(context.Background(), &Request{ModelHint: "x", Accuracy: 1})
		if !IsModelCatalogEmpty(err) {
			t.Fatalf("%s: expected ModelCatalogEmpty, got %v", k, err)
		}
		if exec.last() != "" {
			t.Fatalf("%s: executor must not run", k)
		}
	}
}

func TestBackendErrorPassesThrough(t *testing.T) {
	for _, k := range allKinds() {
		p := newPolicy(t, k, uuid.New(), &fakeExecutor{err: errBackend})
		_, err := p.ProcessLocally(context.Background(), &Request{Payload: []byte("x")})
		if err != errBackend {
			t.Fatalf("%s: expected backend error unchanged, got %v", k, err)
		}
	}
}

func TestMissingExecutorOrRequest(t *testing.T) {
	p, _ := New(KindSED, Deps{Self: uuid.New(), Models: testCatalog()})
	if _, err := p.ProcessLocally(context.Background(), &Request{}); !errors.Is(err, errNoExecutor) {
		t.Fatalf("expected errNoExecutor, got %v", err)
	}
	tbl, self, _ := cluster(1)
	for _, k := range allKinds() {
		p := newPolicy(t, k, self.ID, &fakeExecutor{})
		if _, err := p.ChooseTarget(context.Background(), nil, tbl); !errors.Is(err, errNilRequest) {
			t.Fatalf("%s: expected errNilRequest, got %v", k, err)
		}
		if _, err := p.ProcessLocally(context.Background(), nil); !errors.Is(err, errNilRequest) {
			t.Fatalf("%s: expected errNilRequest from ProcessLocally, got %v", k, err)
		}
	}
}

func TestCheapestModelPolicies(t *testing.T) {
	for _, k := range []Kind{KindSED, KindRandom, KindRRobin} {
		exec := &fakeExecutor{}
		p := newPolicy(t, k, uuid.New(), exec)
		out, err := p.ProcessLocally(context.Background(), &Request{Accuracy: 99, ModelHint: "efficientnet", Payload: []byte("img")})
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if exec.last() != "mobilenet-int8" || string(out) != "mobilenet-int8:img" {
			t.Fatalf("%s: expected cheapest model, ran %q out=%q", k, exec.last(), out)
		}
	}
}

func TestSEDAlwaysLocal(t *testing.T) {
	tbl, self, _ := cluster(4)
	p := newPolicy(t, KindSED, self.ID, &fakeExecutor{})
	self.Acquire()
	req := &Request{Accuracy: 1000, Priority: -1, Visited: []uuid.UUID{self.ID}}
	for i := 0; i < 10; i++ {
		got, err := p.ChooseTarget(context.Background(), req, tbl)
		if err != nil || got != self.ID {
			t.Fatalf("sed: got %s err=%v", got, err)
		}
	}
	if p.Name() != "sed" {
		t.Fatalf("name=%q", p.Name())
	}
}

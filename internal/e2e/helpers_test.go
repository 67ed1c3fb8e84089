package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"fogproxy/internal/endpoint"
	"fogproxy/internal/httpapi"
	"fogproxy/internal/policy"
	"fogproxy/internal/proxy"
	"fogproxy/pkg/types"
)

func catalog() []types.Model {
	return []types.Model{
		{Name: "mobilenet", Accuracy: 70, Cost: 2},
		{Name: "resnet50", Accuracy: 76, Cost: 4},
	}
}

// fogNode is one proxy served over a real HTTP listener.
type fogNode struct {
	ID   uuid.UUID
	Node *proxy.Node
	Srv  *httptest.Server

	handler atomic.Value // http.Handler
}

// startServer opens the listener before the node exists so that peers can
// learn its URL first.
func startServer(t *testing.T) *fogNode {
	t.Helper()
	n := &fogNode{ID: uuid.New()}
	n.Srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, _ := n.handler.Load().(http.Handler)
		if h == nil {
			http.Error(w, "node not wired", http.StatusServiceUnavailable)
			return
		}
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(n.Srv.Close)
	return n
}

// peer describes another node as an endpoint of this node's table.
type peer struct {
	node *fogNode
	hw   float64
}

// wire builds the node's table (self first, then peers) and mounts the HTTP API.
func (n *fogNode) wire(t *testing.T, kind policy.Kind, exec policy.Executor, hw float64, peers ...peer) {
	t.Helper()
	table := endpoint.NewTable(endpoint.New(n.ID, "self", "", hw))
	for i, p := range peers {
		if err := table.Add(endpoint.New(p.node.ID, "peer"+string(rune('a'+i)), p.node.Srv.URL, p.hw)); err != nil {
			t.Fatalf("add peer: %v", err)
		}
	}
	pol, err := policy.New(kind, policy.Deps{Self: n.ID, Models: catalog(), Executor: exec})
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	node, err := proxy.NewNode(proxy.Config{
		Self:      n.ID,
		Table:     table,
		Policy:    pol,
		Models:    catalog(),
		Forwarder: proxy.NewHTTPForwarder(proxy.HTTPForwarderConfig{}),
	})
	if err != nil {
		t.Fatalf("node: %v", err)
	}
	n.Node = node
	n.handler.Store(httpapi.NewMux(node))
}

func (n *fogNode) endpoint(id uuid.UUID) *types.EndpointStatus {
	for _, ep := range n.Node.Status().Endpoints {
		if ep.ID == id.String() {
			return &ep
		}
	}
	return nil
}

type response struct {
	Code   int
	Body   string
	Target string
	Local  string
}

func infer(t *testing.T, n *fogNode, payload string, hdr map[string]string) response {
	t.Helper()
	res, err := doInfer(n, payload, hdr)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	return res
}

// doInfer posts payload to the node's /infer route.
func doInfer(n *fogNode, payload string, hdr map[string]string) (response, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, n.Srv.URL+"/infer", bytes.NewBufferString(payload))
	if err != nil {
		return response{}, err
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, err
	}
	return response{
		Code:   resp.StatusCode,
		Body:   string(b),
		Target: resp.Header.Get(proxy.HeaderTarget),
		Local:  resp.Header.Get(proxy.HeaderLocal),
	}, nil
}

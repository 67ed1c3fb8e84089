package proxy

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"fogproxy/internal/backend"
	"fogproxy/internal/endpoint"
	"fogproxy/internal/policy"
)

// Forwarder hands a request to a peer endpoint and returns its answer.
type Forwarder interface {
	Forward(ctx context.Context, ep *endpoint.Endpoint, req *policy.Request) ([]byte, error)
}

// ForwarderFunc adapts a function to Forwarder.
type ForwarderFunc func(ctx context.Context, ep *endpoint.Endpoint, req *policy.Request) ([]byte, error)

func (f ForwarderFunc) Forward(ctx context.Context, ep *endpoint.Endpoint, req *policy.Request) ([]byte, error) {
	return f(ctx, ep, req)
}

var errNoPeerAddr = errors.New("peer endpoint has no address")

// HTTPForwarderConfig configures an HTTPForwarder.
type HTTPForwarderConfig struct {
	// Timeout bounds one forwarded call; zero relies on the caller context.
	Timeout time.Duration
	// ConnectTimeout bounds TCP connect to a peer.
	ConnectTimeout time.Duration
	// Client overrides the HTTP client (tests).
	Client *http.Client
}

// HTTPForwarder POSTs the payload to the peer's /infer route with the
// routing envelope in X-Fog-* headers.
type HTTPForwarder struct {
	timeout    time.Duration
	httpClient *http.Client
}

// NewHTTPForwarder constructs a forwarder.
func NewHTTPForwarder(cfg HTTPForwarderConfig) *HTTPForwarder {
	cli := cfg.Client
	if cli == nil {
		cli = backend.NewClient(cfg.ConnectTimeout)
	}
	return &HTTPForwarder{timeout: cfg.Timeout, httpClient: cli}
}

// Forward sends req to ep. req is expected to already carry the next hop's
// envelope (see policy.Request.Next).
func (f *HTTPForwarder) Forward(ctx context.Context, ep *endpoint.Endpoint, req *policy.Request) ([]byte, error) {
	if ep == nil || ep.Addr == "" {
		return nil, errNoPeerAddr
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	u := strings.TrimRight(ep.Addr, "/") + "/infer"
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(req.Payload))
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", "application/octet-stream")
	SetRequestHeaders(hreq.Header, req)
	resp, err := f.httpClient.Do(hreq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, backend.MaxErrorBody))
		return nil, &backend.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b)), Target: ep.Name}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return b, nil
}

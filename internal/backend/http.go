// Package backend provides inference executors: the boundary between the
// routing core and the model runtime that actually produces output.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fogproxy/pkg/types"
)

// Defaults applied when HTTPConfig fields are unset.
const (
	defaultConnectTimeout = 5 * time.Second
	// MaxErrorBody caps how much of a failed response is kept in StatusError.
	MaxErrorBody = 4096
)

// HTTPConfig configures an HTTPExecutor.
type HTTPConfig struct {
	// BaseURL of the inference server, e.g. http://127.0.0.1:8000.
	BaseURL string
	// APIKey is sent as a bearer token when set.
	APIKey string
	// RequestTimeout bounds one Execute call; zero relies on the caller context.
	RequestTimeout time.Duration
	// ConnectTimeout bounds TCP connect.
	ConnectTimeout time.Duration
	// Client overrides the HTTP client (tests).
	Client *http.Client
}

// HTTPExecutor runs models on a Triton-style inference server by POSTing the
// raw payload to {BaseURL}/v2/models/{name}/infer.
type HTTPExecutor struct {
	baseURL    string
	apiKey     string
	reqTimeout time.Duration
	httpClient *http.Client
}

// NewHTTPExecutor constructs a server-backed executor.
func NewHTTPExecutor(cfg HTTPConfig) *HTTPExecutor {
	cli := cfg.Client
	if cli == nil {
		cli = NewClient(cfg.ConnectTimeout)
	}
	return &HTTPExecutor{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		reqTimeout: cfg.RequestTimeout,
		httpClient: cli,
	}
}

// NewClient builds an HTTP client whose dialer gives up after connectTimeout.
// The client itself has no overall timeout; callers bound requests with a
// context deadline.
func NewClient(connectTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr, Timeout: 0}
}

// Execute sends payload to the model endpoint and returns the response body.
func (e *HTTPExecutor) Execute(ctx context.Context, m types.Model, payload []byte) ([]byte, error) {
	if e.baseURL == "" {
		return nil, fmt.Errorf("backend: no base URL configured")
	}
	if e.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.reqTimeout)
		defer cancel()
	}
	u := e.baseURL + "/v2/models/" + url.PathEscape(m.Name) + "/infer"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(b), Target: m.Name}
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

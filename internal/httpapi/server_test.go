package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"fogproxy/internal/policy"
	"fogproxy/internal/proxy"
	"fogproxy/pkg/types"
)

type mockService struct {
	models   []types.Model
	status   types.StatusResponse
	ready    bool
	inferErr error
	target   uuid.UUID
	local    bool
	got      *policy.Request
}

func (m *mockService) ListModels() []types.Model    { return append([]types.Model(nil), m.models...) }
func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }
func (m *mockService) Infer(ctx context.Context, req *policy.Request) (proxy.Result, error) {
	m.got = req
	if m.inferErr != nil {
		return proxy.Result{}, m.inferErr
	}
	return proxy.Result{Body: append([]byte("out:"), req.Payload...), Target: m.target, Local: m.local}, nil
}

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func postInfer(h http.Handler, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/infer", bytes.NewBufferString(body))
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestModelsHandler(t *testing.T) {
	svc := &mockService{models: []types.Model{{Name: "m1"}, {Name: "m2"}}}
	r := NewMux(svc)
	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.ModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Models) != 2 {
		t.Fatalf("models len=%d", len(body.Models))
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{Policy: "detour", LocalTotal: 3}}
	r := NewMux(svc)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Policy != "detour" || body.LocalTotal != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestReadyz(t *testing.T) {
	svc := &mockService{ready: true}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	svc := &mockService{ready: false}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not ready") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestInferReturnsBodyAndTarget(t *testing.T) {
	target := uuid.New()
	visited := uuid.New()
	svc := &mockService{target: target, local: true}
	w := postInfer(NewMux(svc), "img", map[string]string{
		proxy.HeaderAccuracy: "75.5",
		proxy.HeaderPriority: "200",
		proxy.HeaderModel:    "resnet",
		proxy.HeaderHops:     "1",
		proxy.HeaderVisited:  visited.String(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "out:img" {
		t.Fatalf("body=%q", w.Body.String())
	}
	if w.Header().Get(proxy.HeaderTarget) != target.String() || w.Header().Get(proxy.HeaderLocal) != "true" {
		t.Fatalf("unexpected response headers: %v", w.Header())
	}
	got := svc.got
	if got == nil || got.Accuracy != 75.5 || got.Priority != 200 || got.ModelHint != "resnet" || got.Hops != 1 || !got.HasVisited(visited) {
		t.Fatalf("unexpected envelope: %+v", got)
	}
}

func TestInferMissingHeadersDefaultToZero(t *testing.T) {
	svc := &mockService{}
	w := postInfer(NewMux(svc), "x", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.got.Accuracy != 0 || svc.got.Priority != 0 || svc.got.Hops != 0 {
		t.Fatalf("expected zero envelope, got %+v", svc.got)
	}
}

func TestInferMalformedHeader(t *testing.T) {
	svc := &mockService{}
	w := postInfer(NewMux(svc), "x", map[string]string{proxy.HeaderAccuracy: "high"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.got != nil {
		t.Fatalf("service must not be called for a malformed envelope")
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Code != http.StatusBadRequest || !strings.Contains(body.Error, proxy.HeaderAccuracy) {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestInferHTTPErrorMapping(t *testing.T) {
	svc := &mockService{inferErr: mockHTTPError{msg: "too busy", code: http.StatusTooManyRequests}}
	w := postInfer(NewMux(svc), "x", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestInferGenericErrorMaps500(t *testing.T) {
	svc := &mockService{inferErr: io.EOF}
	w := postInfer(NewMux(svc), "x", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestInferBodyTooLarge(t *testing.T) {
	svc := &mockService{}
	big := strings.Repeat("a", (1<<20)+10)
	w := postInfer(NewMux(svc), big, nil)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for too-large body, got %d", w.Code)
	}
}

package proxy

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"fogproxy/internal/policy"
)

// Header names of the forwarding contract. Request headers carry the routing
// envelope; response headers report where the request ran.
const (
	HeaderAccuracy = "X-Fog-Accuracy"
	HeaderPriority = "X-Fog-Priority"
	HeaderModel    = "X-Fog-Model"
	HeaderHops     = "X-Fog-Hops"
	HeaderVisited  = "X-Fog-Visited"

	HeaderTarget = "X-Fog-Target"
	HeaderLocal  = "X-Fog-Local"
)

// badEnvelopeError signals a malformed X-Fog-* header (client error).
type badEnvelopeError struct {
	header string
	err    error
}

func (e badEnvelopeError) Error() string {
	return fmt.Sprintf("invalid %s header: %v", e.header, e.err)
}

func (e badEnvelopeError) Unwrap() error { return e.err }

// IsBadEnvelope reports whether err came from parsing a malformed header.
func IsBadEnvelope(err error) bool {
	var e badEnvelopeError
	return errors.As(err, &e)
}

// SetRequestHeaders writes the routing envelope of req onto h.
func SetRequestHeaders(h http.Header, req *policy.Request) {
	h.Set(HeaderAccuracy, strconv.FormatFloat(req.Accuracy, 'g', -1, 64))
	h.Set(HeaderPriority, strconv.FormatFloat(req.Priority, 'g', -1, 64))
	h.Set(HeaderHops, strconv.Itoa(req.Hops))
	if req.ModelHint != "" {
		h.Set(HeaderModel, req.ModelHint)
	}
	if len(req.Visited) > 0 {
		ids := make([]string, len(req.Visited))
		for i, id := range req.Visited {
			ids[i] = id.String()
		}
		h.Set(HeaderVisited, strings.Join(ids, ","))
	}
}

// ParseRequest builds a routing envelope from h around payload. Missing
// numeric headers default to zero.
func ParseRequest(h http.Header, payload []byte) (*policy.Request, error) {
	req := &policy.Request{Payload: payload, ModelHint: strings.TrimSpace(h.Get(HeaderModel))}
	var err error
	if req.Accuracy, err = parseFloat(h, HeaderAccuracy); err != nil {
		return nil, err
	}
	if req.Priority, err = parseFloat(h, HeaderPriority); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(h.Get(HeaderHops)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, badEnvelopeError{header: HeaderHops, err: err}
		}
		if n < 0 {
			return nil, badEnvelopeError{header: HeaderHops, err: errors.New("negative hop count")}
		}
		req.Hops = n
	}
	if v := h.Get(HeaderVisited); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, badEnvelopeError{header: HeaderVisited, err: err}
			}
			if !req.HasVisited(id) {
				req.Visited = append(req.Visited, id)
			}
		}
	}
	return req, nil
}

func parseFloat(h http.Header, name string) (float64, error) {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, badEnvelopeError{header: name, err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, badEnvelopeError{header: name, err: errors.New("not a finite number")}
	}
	return f, nil
}

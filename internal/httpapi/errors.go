package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fogproxy/internal/backend"
	"fogproxy/internal/policy"
	"fogproxy/internal/proxy"
	"fogproxy/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusForError maps routing and backend errors to HTTP status codes.
func statusForError(err error) int {
	var he HTTPError
	switch {
	case policy.IsNoEndpointsAvailable(err), policy.IsNoEligiblePeer(err):
		return http.StatusServiceUnavailable
	case policy.IsModelCatalogEmpty(err):
		return http.StatusInternalServerError
	case proxy.IsBadEnvelope(err):
		return http.StatusBadRequest
	case backend.IsStatusError(err):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &he):
		return he.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}

// rejectionReason labels 503 answers for the rejections counter.
func rejectionReason(err error) string {
	switch {
	case policy.IsNoEndpointsAvailable(err):
		return "no_endpoints"
	case policy.IsNoEligiblePeer(err):
		return "no_eligible_peer"
	default:
		return ""
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

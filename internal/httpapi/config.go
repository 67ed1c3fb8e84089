package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"fogproxy/internal/proxy"
)

// maxBodyBytes controls the maximum allowed request body size for /infer.
// Default 1 MiB.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// inferTimeout controls the maximum duration an /infer request may run before timing out.
// Zero means no additional timeout beyond server/connection timeouts.
var inferTimeout = int64(0) // milliseconds

// SetInferTimeoutMillis sets the infer timeout in milliseconds (0 disables).
func SetInferTimeoutMillis(ms int64) {
	if ms < 0 {
		ms = 0
	}
	inferTimeout = ms
}

func inferTimeoutDuration() time.Duration {
	return time.Duration(inferTimeout) * time.Millisecond
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// defaultCORSHeaders lists every request header a browser client may send.
// go-chi/cors matches names exactly, so the envelope headers are spelled out.
var defaultCORSHeaders = []string{
	"Content-Type",
	"X-Log-Level",
	proxy.HeaderAccuracy,
	proxy.HeaderPriority,
	proxy.HeaderModel,
	proxy.HeaderHops,
	proxy.HeaderVisited,
}

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}

// corsMiddleware returns the configured CORS handler, or nil when disabled.
func corsMiddleware() func(http.Handler) http.Handler {
	if !corsEnabled {
		return nil
	}
	origins := corsAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		ExposedHeaders: []string{proxy.HeaderTarget, proxy.HeaderLocal, "X-Request-Id"},
		MaxAge:         300,
	})
}

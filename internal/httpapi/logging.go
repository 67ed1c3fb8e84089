package httpapi

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"fogproxy/internal/policy"
)

// zlog is the HTTP layer's logger. Silent until SetLogger is called.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l.With().Str("component", "http").Logger() }

// LogLevel controls how much a single request logs.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug", "1":
		return LevelDebug
	default:
		return LevelInfo
	}
}

var defaultLogLevel = parseLevel(os.Getenv("FOGPROXY_REQUEST_LOG"))

// SetDefaultRequestLogLevel sets the level used when a request carries no override.
func SetDefaultRequestLogLevel(s string) { defaultLogLevel = parseLevel(s) }

// requestLogLevel honours ?log= first, then X-Log-Level, then the default.
func requestLogLevel(r *http.Request) LogLevel {
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

func withRequestID(ev *zerolog.Event, r *http.Request) *zerolog.Event {
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		ev = ev.Str("request_id", rid)
	}
	return ev
}

func logStart(r *http.Request, req *policy.Request, size int) {
	ev := zlog.Info().
		Str("path", r.URL.Path).
		Int("bytes", size).
		Int("hops", req.Hops).
		Float64("accuracy", req.Accuracy).
		Float64("priority", req.Priority)
	if req.ModelHint != "" {
		ev = ev.Str("model", req.ModelHint)
	}
	withRequestID(ev, r).Msg("infer start")
}

func logEnd(r *http.Request, status int, dur time.Duration, err error) {
	ev := zlog.Info()
	if err != nil {
		ev = zlog.Warn().Err(err)
	}
	withRequestID(ev.Int("status", status).Dur("dur", dur), r).Msg("infer end")
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fogproxy/internal/policy"
	"fogproxy/internal/proxy"
	"fogproxy/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	Status() types.StatusResponse
	Infer(ctx context.Context, req *policy.Request) (proxy.Result, error)
	Ready() bool
}

// NewMux builds the router for a fog node.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if c := corsMiddleware(); c != nil {
		r.Use(c)
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// JSON endpoints are compressed; /infer carries opaque bytes and is not.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Get("/models", handleModels(svc))
		r.Get("/status", handleStatus(svc))
	})
	r.Post("/infer", handleInfer(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// handleModels lists the local model catalog.
//
// @Summary      List catalog models
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /models [get]
func handleModels(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.ModelsResponse{Models: svc.ListModels()})
	}
}

// handleStatus reports the endpoint table and routing counters.
//
// @Summary      Node status
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func handleStatus(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	}
}

// handleInfer routes one inference request. The body is the opaque payload;
// the routing envelope travels in X-Fog-* headers.
//
// @Summary      Run or forward an inference request
// @Tags         infer
// @Accept       octet-stream
// @Produce      octet-stream
// @Param        X-Fog-Accuracy  header  number  false  "Minimum accuracy"
// @Param        X-Fog-Priority  header  number  false  "Deadline budget in ms"
// @Param        X-Fog-Model     header  string  false  "Model name hint"
// @Param        X-Fog-Hops      header  int     false  "Hops taken so far"
// @Param        X-Fog-Visited   header  string  false  "Comma-separated endpoint ids already visited"
// @Success      200  {file}    binary
// @Failure      400  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Failure      502  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /infer [post]
func handleInfer(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeJSONError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		req, err := proxy.ParseRequest(r.Header, payload)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		if lvl >= LevelInfo {
			logStart(r, req, len(payload))
		}
		ctx, cancel := inferContext(r.Context(), inferTimeoutDuration())
		defer cancel()
		res, err := svc.Infer(ctx, req)
		if err != nil {
			// Client gone or server shutting down: nothing useful to write.
			if draining(r.Context()) {
				return
			}
			status := statusForError(err)
			if status == http.StatusServiceUnavailable {
				IncrementRejection(rejectionReason(err))
			}
			writeJSONError(w, status, err.Error())
			if lvl >= LevelError {
				logEnd(r, status, time.Since(start), err)
			}
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set(proxy.HeaderTarget, res.Target.String())
		w.Header().Set(proxy.HeaderLocal, strconv.FormatBool(res.Local))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Body)
		if lvl >= LevelInfo {
			logEnd(r, http.StatusOK, time.Since(start), nil)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"fogproxy/internal/backend"
	"fogproxy/internal/config"
	"fogproxy/internal/endpoint"
	"fogproxy/internal/httpapi"
	"fogproxy/internal/policy"
	"fogproxy/internal/proxy"
	"fogproxy/internal/registry"
	"fogproxy/pkg/types"
)

const shutdownTimeout = 5 * time.Second

func loadCatalog(path string) ([]types.Model, error) {
	models, err := registry.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}
	return models, nil
}

// buildTable creates the endpoint table: self first, then peers in config order.
func buildTable(cfg config.Config) (*endpoint.Table, *endpoint.Endpoint, error) {
	selfID, err := config.ResolveID(cfg.Self.ID, cfg.Self.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("self: %w", err)
	}
	self := endpoint.New(selfID, cfg.Self.Name, "", cfg.Self.HWScore)
	table := endpoint.NewTable(self)
	for i, p := range cfg.Peers {
		id, err := config.ResolveID(p.ID, p.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("peers[%d]: %w", i, err)
		}
		if err := table.Add(endpoint.New(id, p.Name, p.Addr, p.HWScore)); err != nil {
			return nil, nil, fmt.Errorf("peers[%d]: %w", i, err)
		}
	}
	return table, self, nil
}

func buildExecutor(cfg config.Backend) policy.Executor {
	if cfg.Kind == config.BackendEcho {
		return backend.Echo
	}
	return backend.NewHTTPExecutor(backend.HTTPConfig{
		BaseURL:        cfg.URL,
		APIKey:         cfg.APIKey,
		RequestTimeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		ConnectTimeout: time.Duration(cfg.ConnectTimeoutMs) * time.Millisecond,
	})
}

// logPublisher turns routing events into debug log lines.
type logPublisher struct{ log zerolog.Logger }

func (p logPublisher) Publish(e policy.Event) {
	p.log.Debug().Str("event", e.Name).Str("policy", e.Policy).Fields(e.Fields).Msg("event")
}

// buildNode wires catalog, table, policy, executor and forwarder into a Node.
func buildNode(cfg config.Config, log zerolog.Logger) (*proxy.Node, error) {
	models, err := loadCatalog(cfg.ModelsPath)
	if err != nil {
		return nil, err
	}
	table, self, err := buildTable(cfg)
	if err != nil {
		return nil, err
	}
	kind, err := policy.ParseKind(cfg.Policy)
	if err != nil {
		return nil, err
	}
	pub := logPublisher{log: log}
	pol, err := policy.New(kind, policy.Deps{
		Self:      self.ID,
		Models:    models,
		Executor:  buildExecutor(cfg.Backend),
		Estimator: policy.NewEstimator(models, cfg.Estimator.CostUnitMs, cfg.Estimator.ServiceMs),
		Logger:    &log,
		Publisher: pub,
	})
	if err != nil {
		return nil, err
	}
	return proxy.NewNode(proxy.Config{
		Self:   self.ID,
		Table:  table,
		Policy: pol,
		Models: models,
		Forwarder: proxy.NewHTTPForwarder(proxy.HTTPForwarderConfig{
			Timeout:        time.Duration(cfg.ForwardTimeoutMs) * time.Millisecond,
			ConnectTimeout: time.Duration(cfg.Backend.ConnectTimeoutMs) * time.Millisecond,
		}),
		Logger:    &log,
		Publisher: pub,
	})
}

// configureHTTP applies the HTTP layer settings of cfg.
func configureHTTP(ctx context.Context, cfg config.Config, log zerolog.Logger) {
	httpapi.SetLogger(log)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetInferTimeoutMillis(int64(cfg.InferTimeoutMs))
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)
	if cfg.RequestLog != "" {
		httpapi.SetDefaultRequestLogLevel(cfg.RequestLog)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := newLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty)
	node, err := buildNode(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	configureHTTP(ctx, cfg, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(node),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("policy", cfg.Policy).
			Str("self", node.Self().String()).
			Int("peers", len(cfg.Peers)).
			Int("models", len(node.ListModels())).
			Msg("fogproxy listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}

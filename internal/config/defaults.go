package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"fogproxy/internal/policy"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultAddr             = ":8080"
	DefaultPolicy           = "sed"
	DefaultLogLevel         = "info"
	DefaultSelfName         = "self"
	DefaultHWScore          = 1.0
	DefaultForwardTimeoutMs = 30000
	DefaultBackendTimeoutMs = 30000
	DefaultConnectTimeoutMs = 5000
	DefaultMaxBodyBytes     = 1 << 20

	BackendHTTP = "http"
	BackendEcho = "echo"
)

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Policy == "" {
		c.Policy = DefaultPolicy
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Self.Name == "" {
		c.Self.Name = DefaultSelfName
	}
	if c.Self.HWScore == 0 {
		c.Self.HWScore = DefaultHWScore
	}
	for i := range c.Peers {
		if c.Peers[i].HWScore == 0 {
			c.Peers[i].HWScore = DefaultHWScore
		}
		if c.Peers[i].Name == "" {
			c.Peers[i].Name = c.Peers[i].Addr
		}
	}
	if c.Backend.Kind == "" {
		if c.Backend.URL != "" {
			c.Backend.Kind = BackendHTTP
		} else {
			c.Backend.Kind = BackendEcho
		}
	}
	if c.Backend.TimeoutMs == 0 {
		c.Backend.TimeoutMs = DefaultBackendTimeoutMs
	}
	if c.Backend.ConnectTimeoutMs == 0 {
		c.Backend.ConnectTimeoutMs = DefaultConnectTimeoutMs
	}
	if c.ForwardTimeoutMs == 0 {
		c.ForwardTimeoutMs = DefaultForwardTimeoutMs
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// Validate reports the first configuration error. Call after ApplyDefaults.
func (c *Config) Validate() error {
	if _, err := policy.ParseKind(c.Policy); err != nil {
		return err
	}
	if c.ModelsPath == "" {
		return errors.New("models_path is required")
	}
	if c.Self.HWScore <= 0 {
		return fmt.Errorf("self: hw_score must be positive, got %v", c.Self.HWScore)
	}
	selfID, err := ResolveID(c.Self.ID, c.Self.Name)
	if err != nil {
		return fmt.Errorf("self: %w", err)
	}
	seen := map[uuid.UUID]string{selfID: "self"}
	for i, p := range c.Peers {
		where := fmt.Sprintf("peers[%d]", i)
		if p.Addr == "" {
			return fmt.Errorf("%s: addr is required", where)
		}
		u, err := url.Parse(p.Addr)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s: addr must be an http(s) URL, got %q", where, p.Addr)
		}
		if p.HWScore <= 0 {
			return fmt.Errorf("%s: hw_score must be positive, got %v", where, p.HWScore)
		}
		id, err := ResolveID(p.ID, p.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("%s: duplicate endpoint id %s (also used by %s)", where, id, prev)
		}
		seen[id] = where
	}
	switch c.Backend.Kind {
	case BackendHTTP:
		if c.Backend.URL == "" {
			return errors.New("backend: url is required for the http backend")
		}
	case BackendEcho:
	default:
		return fmt.Errorf("backend: unknown kind %q (want http or echo)", c.Backend.Kind)
	}
	if c.Backend.TimeoutMs < 0 || c.Backend.ConnectTimeoutMs < 0 || c.ForwardTimeoutMs < 0 || c.InferTimeoutMs < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.MaxBodyBytes < 0 {
		return errors.New("max_body_bytes must not be negative")
	}
	if c.Estimator.CostUnitMs < 0 || c.Estimator.ServiceMs < 0 {
		return errors.New("estimator: values must not be negative")
	}
	return nil
}

// ResolveID parses id, or derives a stable id from name when id is empty so
// that nodes sharing a topology file agree on each other's identity.
func ResolveID(id, name string) (uuid.UUID, error) {
	if id != "" {
		u, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid id %q: %w", id, err)
		}
		return u, nil
	}
	if name == "" {
		return uuid.Nil, errors.New("id or name is required")
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("fogproxy:"+name)), nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for a fog node.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr       string `json:"addr" yaml:"addr" toml:"addr"`
	ModelsPath string `json:"models_path" yaml:"models_path" toml:"models_path"`
	Policy     string `json:"policy" yaml:"policy" toml:"policy"`
	LogLevel   string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogPretty  bool   `json:"log_pretty" yaml:"log_pretty" toml:"log_pretty"`
	// RequestLog is the default per-request log level of the HTTP layer
	// (off|error|info|debug).
	RequestLog string `json:"request_log" yaml:"request_log" toml:"request_log"`

	Self    Self    `json:"self" yaml:"self" toml:"self"`
	Peers   []Peer  `json:"peers" yaml:"peers" toml:"peers"`
	Backend Backend `json:"backend" yaml:"backend" toml:"backend"`

	ForwardTimeoutMs int   `json:"forward_timeout_ms" yaml:"forward_timeout_ms" toml:"forward_timeout_ms"`
	InferTimeoutMs   int   `json:"infer_timeout_ms" yaml:"infer_timeout_ms" toml:"infer_timeout_ms"`
	MaxBodyBytes     int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`

	CORS      CORS      `json:"cors" yaml:"cors" toml:"cors"`
	Estimator Estimator `json:"estimator" yaml:"estimator" toml:"estimator"`
}

// Self describes the local endpoint.
type Self struct {
	// ID is a UUID; when empty it is derived from Name.
	ID      string  `json:"id" yaml:"id" toml:"id"`
	Name    string  `json:"name" yaml:"name" toml:"name"`
	HWScore float64 `json:"hw_score" yaml:"hw_score" toml:"hw_score"`
}

// Peer describes a remote fog node reachable over HTTP.
type Peer struct {
	ID      string  `json:"id" yaml:"id" toml:"id"`
	Name    string  `json:"name" yaml:"name" toml:"name"`
	Addr    string  `json:"addr" yaml:"addr" toml:"addr"`
	HWScore float64 `json:"hw_score" yaml:"hw_score" toml:"hw_score"`
}

// Backend configures the local inference executor.
type Backend struct {
	// Kind is "http" or "echo". Defaults to http when URL is set, else echo.
	Kind             string `json:"kind" yaml:"kind" toml:"kind"`
	URL              string `json:"url" yaml:"url" toml:"url"`
	APIKey           string `json:"api_key" yaml:"api_key" toml:"api_key"`
	TimeoutMs        int    `json:"timeout_ms" yaml:"timeout_ms" toml:"timeout_ms"`
	ConnectTimeoutMs int    `json:"connect_timeout_ms" yaml:"connect_timeout_ms" toml:"connect_timeout_ms"`
}

// CORS is the opt-in cross-origin configuration of the HTTP server.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Estimator tunes the detour policy's completion-time estimate.
type Estimator struct {
	CostUnitMs float64 `json:"cost_unit_ms" yaml:"cost_unit_ms" toml:"cost_unit_ms"`
	ServiceMs  float64 `json:"service_ms" yaml:"service_ms" toml:"service_ms"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

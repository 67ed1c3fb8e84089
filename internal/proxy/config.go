package proxy

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fogproxy/internal/endpoint"
	"fogproxy/internal/policy"
	"fogproxy/pkg/types"
)

// Config collects the collaborators of a Node.
type Config struct {
	Self   uuid.UUID
	Table  *endpoint.Table
	Policy policy.Policy
	// Models is the local catalog, reported by ListModels and Ready.
	Models []types.Model
	// Forwarder defaults to an HTTPForwarder with package defaults.
	Forwarder Forwarder
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
	// Publisher receives route_decision, local_done and forward_done events.
	Publisher policy.EventPublisher
}

// NewNode constructs a Node from cfg.
func NewNode(cfg Config) (*Node, error) {
	if cfg.Table == nil {
		return nil, errors.New("proxy: endpoint table is required")
	}
	if cfg.Policy == nil {
		return nil, errors.New("proxy: policy is required")
	}
	n := &Node{
		self:    cfg.Self,
		table:   cfg.Table,
		policy:  cfg.Policy,
		models:  append([]types.Model(nil), cfg.Models...),
		fwd:     cfg.Forwarder,
		log:     zerolog.Nop(),
		pub:     cfg.Publisher,
		started: time.Now(),
	}
	if n.fwd == nil {
		n.fwd = NewHTTPForwarder(HTTPForwarderConfig{})
	}
	if cfg.Logger != nil {
		n.log = cfg.Logger.With().Str("component", "proxy").Logger()
	}
	if n.pub == nil {
		n.pub = nopPublisher{}
	}
	return n, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(policy.Event) {}

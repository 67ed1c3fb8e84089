package policy

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fogproxy/internal/endpoint"
	"fogproxy/pkg/types"
)

// Policy decides where a request runs and, when it runs here, which model runs.
//
// Implementations are safe for concurrent use and never hold a lock on shared
// endpoint state while the executor runs.
type Policy interface {
	// Name is the policy kind, e.g. "detour".
	Name() string
	// ChooseTarget returns the id of the endpoint that should serve req.
	// It returns the local id whenever req.Hops > 0.
	ChooseTarget(ctx context.Context, req *Request, table *endpoint.Table) (uuid.UUID, error)
	// ProcessLocally picks a catalog model and runs req on it.
	// Executor errors are returned unchanged.
	ProcessLocally(ctx context.Context, req *Request) ([]byte, error)
}

// Executor runs a model on a payload. It is the inference backend boundary.
type Executor interface {
	Execute(ctx context.Context, model types.Model, payload []byte) ([]byte, error)
}

// Kind names one of the built-in policies.
type Kind string

const (
	KindSED     Kind = "sed"
	KindRandom  Kind = "random"
	KindRRobin  Kind = "rrobin"
	KindMintime Kind = "mintime"
	KindDetour  Kind = "detour"
)

var kinds = map[Kind]func(base) Policy{
	KindSED:     func(b base) Policy { return &SED{base: b} },
	KindRandom:  func(b base) Policy { return &Random{base: b} },
	KindRRobin:  func(b base) Policy { return &RoundRobin{base: b} },
	KindMintime: func(b base) Policy { return &Mintime{base: b} },
	KindDetour:  func(b base) Policy { return &Detour{base: b} },
}

// Kinds lists the built-in policy names in lexical order.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// ParseKind validates a policy name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := kinds[k]; !ok {
		return "", fmt.Errorf("unknown policy %q (want one of %v)", s, Kinds())
	}
	return k, nil
}

// Deps are the collaborators shared by every policy.
type Deps struct {
	// Self is the id of the local endpoint.
	Self uuid.UUID
	// Models is the local catalog; read-only after construction.
	Models []types.Model
	// Executor runs models locally.
	Executor Executor
	// Estimator is used by the detour policy. Defaults to NewEstimator(Models, 0, 0).
	Estimator Estimator
	// Logger receives decision diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// Publisher receives decision events. Defaults to a no-op publisher.
	Publisher EventPublisher
	// Rand drives the random policy. Defaults to the runtime's global source.
	Rand *rand.Rand
}

// New constructs the policy named kind.
func New(kind Kind, d Deps) (Policy, error) {
	mk, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (want one of %v)", kind, Kinds())
	}
	return mk(newBase(string(kind), d)), nil
}

// base carries the state and helpers shared by every policy.
type base struct {
	name    string
	self    uuid.UUID
	catalog Catalog
	exec    Executor
	est     Estimator
	log     zerolog.Logger
	pub     EventPublisher
	rng     *rand.Rand
}

func newBase(name string, d Deps) base {
	b := base{
		name:    name,
		self:    d.Self,
		catalog: append(Catalog(nil), d.Models...),
		exec:    d.Executor,
		est:     d.Estimator,
		log:     zerolog.Nop(),
		pub:     d.Publisher,
		rng:     d.Rand,
	}
	if d.Logger != nil {
		b.log = d.Logger.With().Str("policy", name).Logger()
	}
	if b.est == nil {
		b.est = NewEstimator(b.catalog, 0, 0)
	}
	if b.pub == nil {
		b.pub = noopPublisher{}
	}
	return b
}

func (b *base) Name() string { return b.name }

// Self returns the local endpoint id.
func (b *base) Self() uuid.UUID { return b.self }

// precheck applies the rules every policy shares: an empty table is an error,
// and a request that already hopped stays here.
func (b *base) precheck(req *Request, table *endpoint.Table) (target uuid.UUID, done bool, err error) {
	if req == nil {
		return uuid.Nil, true, errNilRequest
	}
	if table.Len() == 0 {
		return uuid.Nil, true, noEndpointsError{policy: b.name}
	}
	if req.Hops > 0 {
		b.log.Debug().Int("hops", req.Hops).Msg("forwarded request stays local")
		return b.self, true, nil
	}
	return uuid.Nil, false, nil
}

// cheapest is the local model rule shared by sed, random and rrobin.
func (b *base) cheapest(ctx context.Context, req *Request) ([]byte, error) {
	m, ok := b.catalog.Cheapest()
	if !ok {
		return nil, catalogEmptyError{policy: b.name}
	}
	return b.run(ctx, req, m)
}

// run hands the payload to the executor.
func (b *base) run(ctx context.Context, req *Request, m types.Model) ([]byte, error) {
	if req == nil {
		return nil, errNilRequest
	}
	if b.exec == nil {
		return nil, errNoExecutor
	}
	b.log.Debug().Str("model", m.Name).Float64("accuracy", m.Accuracy).Float64("cost", m.Cost).Msg("process locally")
	return b.exec.Execute(ctx, m, req.Payload)
}

func (b *base) diagnose(name, msg string, fields map[string]any) {
	b.log.Warn().Fields(fields).Msg(msg)
	b.pub.Publish(Event{Name: name, Policy: b.name, Fields: fields})
}

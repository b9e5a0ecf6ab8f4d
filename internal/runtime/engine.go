// Package runtime implements the flow traversal engine: the forward walk
// over the dialogue graph that runs until it needs a user answer, finishes,
// or fails.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/vitaehq/converse/internal/logging"
	"github.com/vitaehq/converse/pkg/domain"
	"github.com/vitaehq/converse/pkg/ports"
)

const defaultActionTimeout = 10 * time.Second

// Engine walks one flow definition. It is stateless between calls: every
// entry point receives a FlowState and returns an updated copy, which makes
// a single Engine safe to share across concurrent sessions.
type Engine struct {
	def     *domain.FlowDefinition
	nodes   map[string]*domain.Node
	edges   map[string][]domain.Edge
	invoker ports.ActionInvoker
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithInvoker sets the invoker used by api-call, webhook and action nodes.
func WithInvoker(inv ports.ActionInvoker) Option {
	return func(e *Engine) {
		if inv != nil {
			e.invoker = inv
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// NewEngine builds an engine for a definition that has already passed
// definition.Validate. Node and edge lookups are indexed once here so the
// walk itself is allocation-light.
func NewEngine(def *domain.FlowDefinition, opts ...Option) *Engine {
	e := &Engine{
		def:     def,
		nodes:   make(map[string]*domain.Node, len(def.Nodes)),
		edges:   make(map[string][]domain.Edge, len(def.Nodes)),
		invoker: disabledInvoker{},
		logger:  logging.NewNop(),
		timeout: defaultActionTimeout,
	}
	for i := range def.Nodes {
		e.nodes[def.Nodes[i].ID] = &def.Nodes[i]
	}
	for _, edge := range def.Edges {
		e.edges[edge.Source] = append(e.edges[edge.Source], edge)
	}
	if def.Settings.DefaultTimeoutMs > 0 {
		e.timeout = time.Duration(def.Settings.DefaultTimeoutMs) * time.Millisecond
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize creates a fresh state and walks from the start node until the
// first suspension point (or completion, for flows with no questions).
func (e *Engine) Initialize(ctx context.Context) (*domain.ExecutionResult, error) {
	state := domain.NewState(e.def)
	start := e.def.StartNode()
	if start == nil {
		return nil, &domain.MissingNodeError{NodeID: "start"}
	}
	e.logger.Debug("initializing session", "flow", e.def.ID)
	return e.walk(ctx, state, start.ID)
}

// Resume re-enters a stored session without consuming an answer. It is used
// to re-render the pending question after a restart.
func (e *Engine) Resume(ctx context.Context, state *domain.FlowState) (*domain.ExecutionResult, error) {
	next := state.Clone()
	if next.Status != domain.StatusAwaitingAnswer {
		return e.buildResult(next, len(next.Transcript), nil), nil
	}
	node, ok := e.nodes[next.CurrentNodeID]
	if !ok {
		return nil, &domain.MissingNodeError{NodeID: next.CurrentNodeID}
	}
	return e.buildResult(next, len(next.Transcript), e.questionNode(node, next)), nil
}

// disabledInvoker is the default when no real invoker is wired. It keeps
// flows without external calls fully functional and degrades the rest into
// the normal error-handle path instead of panicking.
type disabledInvoker struct{}

func (disabledInvoker) Invoke(_ context.Context, _ domain.ActionCall) (domain.ActionResult, error) {
	return domain.ActionResult{OK: false, Err: "no action invoker configured"}, nil
}

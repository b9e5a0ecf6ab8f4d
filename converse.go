package converse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vitaehq/converse/internal/logging"
	"github.com/vitaehq/converse/internal/runtime"
	"github.com/vitaehq/converse/pkg/definition"
	"github.com/vitaehq/converse/pkg/domain"
	"github.com/vitaehq/converse/pkg/ports"
)

// Engine is the high-level entry point for the Converse library. It wraps
// the internal traversal runtime and provides a simplified API for hosts.
type Engine struct {
	def     *domain.FlowDefinition
	runtime *runtime.Engine

	invoker ports.ActionInvoker
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithInvoker wires the outbound HTTP invoker used by api-call, webhook and
// action nodes. Without it those nodes degrade into their error branches.
func WithInvoker(inv ports.ActionInvoker) Option {
	return func(e *Engine) {
		e.invoker = inv
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an engine for a flow definition. The definition is validated
// first; a structurally broken flow never executes.
func New(def *domain.FlowDefinition, opts ...Option) (*Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("flow definition is required")
	}
	if res := definition.Validate(def); !res.IsValid {
		return nil, fmt.Errorf("invalid flow definition %q: %w", def.ID, res.Errors[0])
	}

	eng := &Engine{
		def:    def,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	rtOpts := []runtime.Option{
		runtime.WithLogger(eng.logger),
		runtime.WithHooks(eng.hooks),
	}
	if eng.invoker != nil {
		rtOpts = append(rtOpts, runtime.WithInvoker(eng.invoker))
	}
	eng.runtime = runtime.NewEngine(def, rtOpts...)
	return eng, nil
}

// Definition returns the flow this engine executes.
func (e *Engine) Definition() *domain.FlowDefinition {
	return e.def
}

// Initialize starts a fresh walk and returns the first pending question, or
// the completed result for flows without questions.
func (e *Engine) Initialize(ctx context.Context) (*domain.ExecutionResult, error) {
	return e.runtime.Initialize(ctx)
}

// ProcessUserResponse consumes one answer for a suspended state. The input
// state is never mutated; the result carries the advanced copy. A rejected
// answer is not an error: the result re-asks the same question with the
// validation message appended to the transcript.
func (e *Engine) ProcessUserResponse(ctx context.Context, state *domain.FlowState, answer string) (*domain.ExecutionResult, error) {
	return e.runtime.ProcessUserResponse(ctx, state, answer)
}

// Resume re-renders the pending question of a stored state without
// consuming an answer, for hosts that restart mid-conversation.
func (e *Engine) Resume(ctx context.Context, state *domain.FlowState) (*domain.ExecutionResult, error) {
	return e.runtime.Resume(ctx, state)
}

var _ ports.FlowEngine = (*Engine)(nil)

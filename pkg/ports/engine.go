package ports

import (
	"context"

	"github.com/vitaehq/converse/pkg/domain"
)

// FlowEngine is the driving port of the traversal core. The root package
// provides the canonical implementation; adapters (HTTP, MCP, CLI) depend
// on this interface so they can be tested against fakes.
type FlowEngine interface {
	// Initialize starts a fresh walk and returns the first suspension
	// point or, for flows without questions, the completed result.
	Initialize(ctx context.Context) (*domain.ExecutionResult, error)

	// ProcessUserResponse consumes one answer for a suspended state and
	// advances the walk. The input state is not mutated.
	ProcessUserResponse(ctx context.Context, state *domain.FlowState, answer string) (*domain.ExecutionResult, error)

	// Resume re-renders the pending question of a stored state without
	// consuming an answer.
	Resume(ctx context.Context, state *domain.FlowState) (*domain.ExecutionResult, error)
}

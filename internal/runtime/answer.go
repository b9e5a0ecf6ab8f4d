package runtime

import (
	"context"
	"strings"

	"github.com/vitaehq/converse/internal/validation"
	"github.com/vitaehq/converse/pkg/domain"
)

// ProcessUserResponse consumes one user answer for a suspended session. The
// input state is never mutated; the returned result carries the updated
// copy.
//
// A validation failure is not an error: the walk stays suspended at the
// same question, the failure message is appended to the transcript, and the
// caller re-prompts. Only when the question declares maxRetries and the
// budget is exhausted does the walk leave the question, through the
// "max-retries" handle when one exists, otherwise into the errored state.
func (e *Engine) ProcessUserResponse(ctx context.Context, prev *domain.FlowState, answer string) (*domain.ExecutionResult, error) {
	switch prev.Status {
	case domain.StatusAwaitingAnswer:
	case domain.StatusComplete:
		return nil, domain.ErrFlowComplete
	default:
		return nil, domain.ErrNotAwaitingAnswer
	}

	node, ok := e.nodes[prev.CurrentNodeID]
	if !ok {
		return nil, &domain.MissingNodeError{NodeID: prev.CurrentNodeID}
	}
	data, ok := node.Data.(domain.QuestionData)
	if !ok {
		return nil, domain.ErrNotAwaitingAnswer
	}

	state := prev.Clone()
	base := len(state.Transcript)
	state.Append(domain.RoleUser, answer)

	if res := validation.ValidateAnswer(data.Validation, answer); !res.Valid {
		state.Attempts++
		e.emitValidationFailure(ctx, node, state.Attempts, res.Message)
		e.logger.Debug("answer rejected", "node", node.ID, "attempt", state.Attempts, "reason", res.Message)

		if data.MaxRetries > 0 && state.Attempts >= data.MaxRetries {
			state.Attempts = 0
			if next, ok := e.target(node, domain.HandleMaxRetries); ok {
				return e.walkFrom(ctx, state, next, base)
			}
			return e.fatal(state, base, &domain.BranchResolutionError{
				NodeID: node.ID,
				Reason: "validation retries exhausted and no max-retries edge declared",
			})
		}

		state.Append(domain.RoleSystem, res.Message)
		return e.buildResult(state, base, e.questionNode(node, state)), nil
	}

	state.Attempts = 0
	next, value, err := e.acceptAnswer(node, data, answer)
	if err != nil {
		return e.fatal(state, base, err)
	}
	if data.VariableName != "" {
		state.Set(data.VariableName, value)
	}
	return e.walkFrom(ctx, state, next, base)
}

// acceptAnswer resolves the stored variable value and the next node for a
// valid answer. Option questions match the answer against option values and
// labels, ignoring case and surrounding whitespace; the canonical option
// value is what gets stored. Free-text questions store the answer verbatim.
func (e *Engine) acceptAnswer(node *domain.Node, data domain.QuestionData, answer string) (next, value string, err error) {
	if len(data.Options) == 0 {
		next, err = e.defaultTarget(node)
		return next, answer, err
	}

	opt, ok := matchOption(data.Options, answer)
	if !ok {
		// A validated but unmatched answer on an option question keeps the
		// raw text and follows the default edge.
		next, err = e.defaultTarget(node)
		return next, answer, err
	}

	if opt.NextNodeID != "" {
		return opt.NextNodeID, opt.Value, nil
	}
	if next, ok := e.target(node, opt.Value); ok {
		return next, opt.Value, nil
	}
	next, err = e.defaultTarget(node)
	return next, opt.Value, err
}

func matchOption(options []domain.Option, answer string) (domain.Option, bool) {
	trimmed := strings.TrimSpace(answer)
	for _, opt := range options {
		if strings.EqualFold(trimmed, opt.Value) || strings.EqualFold(trimmed, opt.Label) {
			return opt, true
		}
	}
	return domain.Option{}, false
}

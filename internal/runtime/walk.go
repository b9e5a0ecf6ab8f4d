package runtime

import (
	"context"
	"strconv"
	"time"

	"github.com/vitaehq/converse/internal/condition"
	"github.com/vitaehq/converse/internal/interpolate"
	"github.com/vitaehq/converse/pkg/domain"
)

// walk advances the state from nodeID until it suspends at a question,
// reaches an end node, or fails. The step budget bounds traversal: a walk
// that visits more than twice the node count without suspending can only be
// looping.
func (e *Engine) walk(ctx context.Context, state *domain.FlowState, nodeID string) (*domain.ExecutionResult, error) {
	return e.walkFrom(ctx, state, nodeID, len(state.Transcript))
}

// walkFrom is the walk body. base marks where this segment's transcript
// window starts; entries appended before the walk (the user's answer) are
// part of the same segment.
func (e *Engine) walkFrom(ctx context.Context, state *domain.FlowState, nodeID string, base int) (*domain.ExecutionResult, error) {
	budget := 2*len(e.nodes) + 1

	for step := 0; step < budget; step++ {
		node, ok := e.nodes[nodeID]
		if !ok {
			return e.fatal(state, base, &domain.MissingNodeError{NodeID: nodeID})
		}
		state.CurrentNodeID = nodeID
		e.emitNodeEnter(ctx, node)
		e.logger.Debug("entering node", "node", nodeID, "type", node.Type)

		switch data := node.Data.(type) {
		case domain.StartData:
			next, err := e.defaultTarget(node)
			if err != nil {
				return e.fatal(state, base, err)
			}
			nodeID = next

		case domain.MessageData:
			state.Append(domain.RoleAssistant, interpolate.Render(data.Content, state.Variables))
			next, err := e.defaultTarget(node)
			if err != nil {
				return e.fatal(state, base, err)
			}
			nodeID = next

		case domain.QuestionData:
			q := e.questionNode(node, state)
			state.Status = domain.StatusAwaitingAnswer
			state.Append(domain.RoleAssistant, q.Data.(domain.QuestionData).Text)
			e.emitQuestionAsked(ctx, node, q.Data.(domain.QuestionData).Text)
			return e.buildResult(state, base, q), nil

		case domain.ConditionData:
			next, err := e.resolveCondition(ctx, node, data, state)
			if err != nil {
				return e.fatal(state, base, err)
			}
			nodeID = next

		case domain.ActionData:
			next, err := e.runAction(ctx, node, data, state)
			if err != nil {
				return e.fatal(state, base, err)
			}
			nodeID = next

		case domain.WaitData:
			// Non-blocking: the delay is recorded for the hosting
			// application, never slept inside the walk.
			state.SetMeta("lastWaitMs", strconv.Itoa(data.DelayMs))
			next, err := e.defaultTarget(node)
			if err != nil {
				return e.fatal(state, base, err)
			}
			nodeID = next

		case domain.APICallData:
			next, err := e.runExternalCall(ctx, node, data.Call, data.ResponseMapping, state)
			if err != nil {
				return e.fatal(state, base, err)
			}
			nodeID = next

		case domain.WebhookData:
			next, err := e.runExternalCall(ctx, node, data.Call, data.ResponseMapping, state)
			if err != nil {
				return e.fatal(state, base, err)
			}
			nodeID = next

		case domain.EndData:
			if data.Message != "" {
				state.Append(domain.RoleAssistant, interpolate.Render(data.Message, state.Variables))
			}
			state.Status = domain.StatusComplete
			state.IsComplete = true
			e.emitComplete(ctx, node)
			e.logger.Debug("flow complete", "flow", e.def.ID, "node", nodeID)
			return e.buildResult(state, base, nil), nil

		default:
			return e.fatal(state, base, &domain.UnknownNodeTypeError{NodeID: node.ID, Type: node.Type})
		}
	}

	return e.fatal(state, base, &domain.TraversalLimitError{NodeID: nodeID, Steps: budget})
}

// resolveCondition picks the next node for a condition node, either by the
// binary true/false handles or by ordered multi-output selection.
func (e *Engine) resolveCondition(ctx context.Context, node *domain.Node, data domain.ConditionData, state *domain.FlowState) (string, error) {
	if data.Condition.IsMultiOutput() {
		out, ok := condition.SelectOutput(data.Condition, state.Variables)
		if !ok {
			e.emitBranchError(ctx, node, "no output matched")
			return "", &domain.BranchResolutionError{NodeID: node.ID, Reason: "no output matched the current state"}
		}
		next, ok := e.target(node, out.Value)
		if !ok {
			e.emitBranchError(ctx, node, "no edge for output "+out.Value)
			return "", &domain.BranchResolutionError{NodeID: node.ID, Reason: "no edge for output " + strconv.Quote(out.Value)}
		}
		return next, nil
	}

	handle := domain.HandleFalse
	if condition.Evaluate(data.Condition, state.Variables) {
		handle = domain.HandleTrue
	}
	next, ok := e.target(node, handle)
	if !ok {
		e.emitBranchError(ctx, node, "no edge for handle "+handle)
		return "", &domain.BranchResolutionError{NodeID: node.ID, Reason: "no edge for handle " + strconv.Quote(handle)}
	}
	return next, nil
}

// target returns the destination of the edge with the given source handle.
func (e *Engine) target(node *domain.Node, handle string) (string, bool) {
	for _, edge := range e.edges[node.ID] {
		if edge.SourceHandle == handle {
			return edge.Target, true
		}
	}
	return "", false
}

// defaultTarget returns the destination of the first outgoing edge in
// declaration order, preferring one with an empty handle.
func (e *Engine) defaultTarget(node *domain.Node) (string, error) {
	edges := e.edges[node.ID]
	for _, edge := range edges {
		if edge.SourceHandle == "" {
			return edge.Target, nil
		}
	}
	if len(edges) > 0 {
		return edges[0].Target, nil
	}
	return "", &domain.BranchResolutionError{NodeID: node.ID, Reason: "node has no outgoing edge"}
}

// questionNode returns a render-ready copy of a question node with its text
// interpolated against the current state.
func (e *Engine) questionNode(node *domain.Node, state *domain.FlowState) *domain.Node {
	q := *node
	data := node.Data.(domain.QuestionData)
	data.Text = interpolate.Render(data.Text, state.Variables)
	q.Data = data
	return &q
}

// buildResult assembles the public result: all transcript entries appended
// since the walk segment began, plus the pending question if any.
func (e *Engine) buildResult(state *domain.FlowState, base int, question *domain.Node) *domain.ExecutionResult {
	state.UpdatedAt = time.Now().UTC()
	var msgs []domain.Message
	if base < len(state.Transcript) {
		msgs = make([]domain.Message, len(state.Transcript)-base)
		copy(msgs, state.Transcript[base:])
	}
	return &domain.ExecutionResult{
		NextQuestion: question,
		IsComplete:   state.IsComplete,
		Messages:     msgs,
		State:        state,
	}
}

// fatal marks the state errored and returns it alongside the typed error so
// callers can both persist the terminal state and inspect the cause.
func (e *Engine) fatal(state *domain.FlowState, base int, err error) (*domain.ExecutionResult, error) {
	state.Status = domain.StatusErrored
	state.SetMeta("error", err.Error())
	e.logger.Error("traversal failed", "flow", e.def.ID, "node", state.CurrentNodeID, "error", err)
	return e.buildResult(state, base, nil), err
}

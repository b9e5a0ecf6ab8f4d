package runtime

import (
	"context"
	"time"

	"github.com/vitaehq/converse/pkg/domain"
)

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now().UTC(), Type: t, FlowID: e.def.ID}
}

func (e *Engine) emitNodeEnter(ctx context.Context, node *domain.Node) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	e.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: e.base(domain.EventNodeEnter),
		NodeID:    node.ID,
		NodeType:  node.Type,
	})
}

func (e *Engine) emitQuestionAsked(ctx context.Context, node *domain.Node, text string) {
	if e.hooks.OnQuestionAsked == nil {
		return
	}
	data, _ := node.Data.(domain.QuestionData)
	e.hooks.OnQuestionAsked(ctx, &domain.QuestionEvent{
		EventBase: e.base(domain.EventQuestionAsked),
		NodeID:    node.ID,
		Variable:  data.VariableName,
		Text:      text,
	})
}

func (e *Engine) emitValidationFailure(ctx context.Context, node *domain.Node, attempt int, message string) {
	if e.hooks.OnValidationFailure == nil {
		return
	}
	e.hooks.OnValidationFailure(ctx, &domain.ValidationEvent{
		EventBase: e.base(domain.EventValidationFailure),
		NodeID:    node.ID,
		Attempt:   attempt,
		Message:   message,
	})
}

func (e *Engine) emitActionInvoke(ctx context.Context, node *domain.Node, call domain.ActionCall, d time.Duration, isError bool) {
	if e.hooks.OnActionInvoke == nil {
		return
	}
	e.hooks.OnActionInvoke(ctx, &domain.ActionEvent{
		EventBase: e.base(domain.EventActionInvoke),
		NodeID:    node.ID,
		Kind:      string(node.Type),
		URL:       call.URL,
		Duration:  d,
		IsError:   isError,
	})
}

func (e *Engine) emitComplete(ctx context.Context, node *domain.Node) {
	if e.hooks.OnComplete == nil {
		return
	}
	e.hooks.OnComplete(ctx, &domain.CompleteEvent{
		EventBase: e.base(domain.EventComplete),
		NodeID:    node.ID,
	})
}

func (e *Engine) emitBranchError(ctx context.Context, node *domain.Node, reason string) {
	if e.hooks.OnBranchError == nil {
		return
	}
	e.hooks.OnBranchError(ctx, &domain.BranchEvent{
		EventBase: e.base(domain.EventBranchError),
		NodeID:    node.ID,
		Reason:    reason,
	})
}

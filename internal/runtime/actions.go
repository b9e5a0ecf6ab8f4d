package runtime

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/vitaehq/converse/internal/interpolate"
	"github.com/vitaehq/converse/pkg/domain"
)

// runAction executes an action node side effect and returns the next node.
func (e *Engine) runAction(ctx context.Context, node *domain.Node, data domain.ActionData, state *domain.FlowState) (string, error) {
	switch data.Kind {
	case domain.ActionSetVariable:
		state.Set(data.Variable, interpolate.Render(data.Value, state.Variables))
		return e.defaultTarget(node)

	case domain.ActionWait:
		state.SetMeta("lastWaitMs", strconv.Itoa(data.DelayMs))
		return e.defaultTarget(node)

	case domain.ActionCallAPI, domain.ActionSendWebhook:
		if data.Call == nil {
			return "", &domain.BranchResolutionError{NodeID: node.ID, Reason: "action declares no call"}
		}
		return e.runExternalCall(ctx, node, *data.Call, data.ResponseMapping, state)

	default:
		// Unknown kinds pass through rather than killing the session; the
		// editor may ship kinds this engine predates.
		e.logger.Warn("skipping unknown action kind", "node", node.ID, "kind", data.Kind)
		return e.defaultTarget(node)
	}
}

// runExternalCall invokes an outbound HTTP request and routes the walk to
// the success or error handle. A failure with no error-handle edge is fatal.
func (e *Engine) runExternalCall(ctx context.Context, node *domain.Node, call domain.ActionCall, mapping map[string]string, state *domain.FlowState) (string, error) {
	call.URL = interpolate.Render(call.URL, state.Variables)
	call.Body = interpolate.Render(call.Body, state.Variables)
	call.Headers = interpolate.RenderMap(call.Headers, state.Variables)

	timeout := e.timeout
	if call.TimeoutMs > 0 {
		timeout = time.Duration(call.TimeoutMs) * time.Millisecond
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	res, err := e.invoker.Invoke(callCtx, call)
	e.emitActionInvoke(ctx, node, call, time.Since(started), err != nil || !res.OK)
	if err != nil {
		// Local failure (canceled context), not a remote one.
		return "", err
	}

	state.Set(node.ID+"_status", strconv.Itoa(res.Status))

	if !res.OK {
		e.logger.Warn("external call failed", "node", node.ID, "url", call.URL, "status", res.Status, "error", res.Err)
		state.Set(node.ID+"_error", res.Err)
		if next, ok := e.target(node, domain.HandleError); ok {
			return next, nil
		}
		return "", &domain.ExternalActionError{NodeID: node.ID, Cause: res.Err}
	}

	applyResponseMapping(mapping, res.Body, state)

	if next, ok := e.target(node, domain.HandleSuccess); ok {
		return next, nil
	}
	return e.defaultTarget(node)
}

// applyResponseMapping copies fields out of a JSON response body into flow
// variables. Each mapping value is a dotted path into the document; missing
// paths and non-JSON bodies write nothing.
func applyResponseMapping(mapping map[string]string, body []byte, state *domain.FlowState) {
	if len(mapping) == 0 || len(body) == 0 {
		return
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return
	}
	for variable, path := range mapping {
		if v, ok := lookupPath(doc, path); ok {
			state.Set(variable, stringify(v))
		}
	}
}

func lookupPath(doc any, path string) (any, bool) {
	cur := doc
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

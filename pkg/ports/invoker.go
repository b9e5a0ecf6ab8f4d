package ports

import (
	"context"

	"github.com/vitaehq/converse/pkg/domain"
)

// ActionInvoker executes external calls on behalf of api-call, webhook and
// action nodes. Implementations must normalize all remote failures (network
// errors, timeouts, non-2xx statuses) into ActionResult{OK: false} rather
// than returning a Go error; the error return is reserved for local,
// unrecoverable conditions such as a canceled context.
type ActionInvoker interface {
	Invoke(ctx context.Context, call domain.ActionCall) (domain.ActionResult, error)
}

// ActionInvokerFunc adapts a function to the ActionInvoker interface.
type ActionInvokerFunc func(ctx context.Context, call domain.ActionCall) (domain.ActionResult, error)

func (f ActionInvokerFunc) Invoke(ctx context.Context, call domain.ActionCall) (domain.ActionResult, error) {
	return f(ctx, call)
}

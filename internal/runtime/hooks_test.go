package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehq/converse/pkg/domain"
)

func TestLifecycleHooksFire(t *testing.T) {
	var entered []string
	var questions, failures, completions int

	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, ev *domain.NodeEvent) {
			entered = append(entered, ev.NodeID)
		},
		OnQuestionAsked: func(_ context.Context, ev *domain.QuestionEvent) {
			questions++
			assert.Equal(t, "name", ev.Variable)
		},
		OnValidationFailure: func(_ context.Context, ev *domain.ValidationEvent) {
			failures++
			assert.Equal(t, 1, ev.Attempt)
		},
		OnComplete: func(_ context.Context, ev *domain.CompleteEvent) {
			completions++
			assert.Equal(t, "e", ev.NodeID)
		},
	}

	eng := NewEngine(linearFlow(), WithHooks(hooks))
	init, err := eng.Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "q"}, entered)
	assert.Equal(t, 1, questions)

	_, err = eng.ProcessUserResponse(context.Background(), init.State, "  ")
	require.NoError(t, err)
	assert.Equal(t, 1, failures)

	res, err := eng.ProcessUserResponse(context.Background(), init.State, "Alice")
	require.NoError(t, err)
	require.True(t, res.IsComplete)
	assert.Equal(t, 1, completions)
}

func TestBranchErrorHookFires(t *testing.T) {
	var branchErrors int
	eng := NewEngine(multiOutputFlow(), WithHooks(domain.LifecycleHooks{
		OnBranchError: func(_ context.Context, ev *domain.BranchEvent) {
			branchErrors++
			assert.Equal(t, "c", ev.NodeID)
		},
	}))

	init, err := eng.Initialize(context.Background())
	require.NoError(t, err)
	_, err = eng.ProcessUserResponse(context.Background(), init.State, "C")
	require.Error(t, err)
	assert.Equal(t, 1, branchErrors)
}

func TestActionInvokeHookFires(t *testing.T) {
	var invokes int
	inv := &stubInvoker{result: domain.ActionResult{OK: true, Status: 204}}
	eng := NewEngine(apiFlow(true), WithInvoker(inv), WithHooks(domain.LifecycleHooks{
		OnActionInvoke: func(_ context.Context, ev *domain.ActionEvent) {
			invokes++
			assert.Equal(t, "call", ev.NodeID)
			assert.False(t, ev.IsError)
		},
	}))

	_, err := eng.Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, invokes)
}

package converse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehq/converse"
	"github.com/vitaehq/converse/pkg/definition"
	"github.com/vitaehq/converse/pkg/domain"
)

const greeterFlow = `{
  "id": "greeter",
  "name": "Greeter",
  "version": "1.0.0",
  "nodes": [
    {"id": "s", "type": "start", "data": {}},
    {"id": "ask", "type": "question", "data": {
      "text": "What is your name?",
      "variableName": "name",
      "validation": [{"type": "required"}]
    }},
    {"id": "greet", "type": "message", "data": {"content": "Nice to meet you, {{name}}."}},
    {"id": "done", "type": "end", "data": {"message": "Bye!"}}
  ],
  "edges": [
    {"id": "e1", "source": "s", "target": "ask"},
    {"id": "e2", "source": "ask", "target": "greet"},
    {"id": "e3", "source": "greet", "target": "done"}
  ]
}`

func newGreeter(t *testing.T) *converse.Engine {
	t.Helper()
	def, err := definition.Parse([]byte(greeterFlow))
	require.NoError(t, err)
	eng, err := converse.New(def)
	require.NoError(t, err)
	return eng
}

func TestNewRejectsInvalidDefinition(t *testing.T) {
	def, err := definition.Parse([]byte(greeterFlow))
	require.NoError(t, err)
	def.Edges = def.Edges[:1] // leave the question dangling

	_, err = converse.New(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid flow definition")

	_, err = converse.New(nil)
	require.Error(t, err)
}

func TestEngineEndToEnd(t *testing.T) {
	ctx := context.Background()
	eng := newGreeter(t)

	res, err := eng.Initialize(ctx)
	require.NoError(t, err)
	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, "ask", res.NextQuestion.ID)

	res, err = eng.ProcessUserResponse(ctx, res.State, "Ada")
	require.NoError(t, err)
	assert.True(t, res.IsComplete)
	assert.Equal(t, "Ada", res.State.Variables["name"])

	var contents []string
	for _, m := range res.Messages {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, "Nice to meet you, Ada.")
	assert.Contains(t, contents, "Bye!")
}

func TestEngineResume(t *testing.T) {
	ctx := context.Background()
	eng := newGreeter(t)

	res, err := eng.Initialize(ctx)
	require.NoError(t, err)

	resumed, err := eng.Resume(ctx, res.State)
	require.NoError(t, err)
	require.NotNil(t, resumed.NextQuestion)
	assert.Equal(t, "ask", resumed.NextQuestion.ID)
	assert.False(t, resumed.IsComplete)
}

func TestEngineHooksWiring(t *testing.T) {
	ctx := context.Background()
	def, err := definition.Parse([]byte(greeterFlow))
	require.NoError(t, err)

	var completed bool
	eng, err := converse.New(def, converse.WithLifecycleHooks(domain.LifecycleHooks{
		OnComplete: func(context.Context, *domain.CompleteEvent) { completed = true },
	}))
	require.NoError(t, err)

	res, err := eng.Initialize(ctx)
	require.NoError(t, err)
	_, err = eng.ProcessUserResponse(ctx, res.State, "Ada")
	require.NoError(t, err)
	assert.True(t, completed)
}

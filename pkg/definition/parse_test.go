package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehq/converse/pkg/domain"
)

const sampleFlow = `{
  "id": "onboarding",
  "name": "Onboarding",
  "version": "1.0.0",
  "nodes": [
    {"id": "n1", "type": "start", "position": {"x": 0, "y": 0}, "data": {}},
    {"id": "n2", "type": "question", "data": {
      "text": "What is your name?",
      "variableName": "name",
      "validation": [{"type": "required", "message": "name please"}],
      "maxRetries": 3
    }},
    {"id": "n3", "type": "condition", "data": {
      "condition": {
        "operator": "and",
        "rules": [{"field": "name", "operator": "is_not_empty"}]
      }
    }},
    {"id": "n4", "type": "message", "data": {"content": "Hello {{name}}!"}},
    {"id": "n5", "type": "end", "data": {"message": "Bye"}}
  ],
  "edges": [
    {"id": "e1", "source": "n1", "target": "n2"},
    {"id": "e2", "source": "n2", "target": "n3"},
    {"id": "e3", "source": "n3", "target": "n4", "sourceHandle": "true"},
    {"id": "e4", "source": "n3", "target": "n5", "sourceHandle": "false"},
    {"id": "e5", "source": "n4", "target": "n5"}
  ],
  "variables": [{"name": "name", "type": "string", "scope": "local"}],
  "settings": {"defaultTimeoutMs": 5000}
}`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(sampleFlow))
	require.NoError(t, err)

	assert.Equal(t, "onboarding", def.ID)
	assert.Len(t, def.Nodes, 5)
	assert.Len(t, def.Edges, 5)
	assert.Equal(t, 5000, def.Settings.DefaultTimeoutMs)

	q := def.NodeByID("n2")
	require.NotNil(t, q)
	qd, ok := q.Data.(domain.QuestionData)
	require.True(t, ok, "question data must decode into QuestionData")
	assert.Equal(t, "name", qd.VariableName)
	assert.Equal(t, 3, qd.MaxRetries)
	require.Len(t, qd.Validation, 1)
	assert.Equal(t, domain.ValidationRequired, qd.Validation[0].Type)

	c := def.NodeByID("n3")
	require.NotNil(t, c)
	cd, ok := c.Data.(domain.ConditionData)
	require.True(t, ok)
	require.Len(t, cd.Condition.Rules, 1)
	assert.Equal(t, domain.OpIsNotEmpty, cd.Condition.Rules[0].Operator)
}

func TestParseUnknownNodeType(t *testing.T) {
	_, err := Parse([]byte(`{"id":"f","nodes":[{"id":"n1","type":"teleport","data":{}}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node type")
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	doc := `
id: greet
name: Greeter
version: "1.0.0"
nodes:
  - id: s
    type: start
    data: {}
  - id: q
    type: question
    data:
      text: How are you?
      variableName: mood
  - id: e
    type: end
    data: {}
edges:
  - id: e1
    source: s
    target: q
  - id: e2
    source: q
    target: e
`
	def, err := ParseYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "greet", def.ID)
	assert.Len(t, def.Nodes, 3)

	qd, ok := def.NodeByID("q").Data.(domain.QuestionData)
	require.True(t, ok)
	assert.Equal(t, "mood", qd.VariableName)
}

func TestMarshalRoundTrip(t *testing.T) {
	def, err := Parse([]byte(sampleFlow))
	require.NoError(t, err)

	data, err := Marshal(def)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, def, again)
}

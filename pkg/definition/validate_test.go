package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehq/converse/pkg/domain"
)

func codes(r ValidationResult) []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Code)
	}
	return out
}

func validFlow() *domain.FlowDefinition {
	return &domain.FlowDefinition{
		ID: "f", Name: "f", Version: "1",
		Nodes: []domain.Node{
			{ID: "s", Type: domain.NodeTypeStart, Data: domain.StartData{}},
			{ID: "q", Type: domain.NodeTypeQuestion, Data: domain.QuestionData{Text: "?", VariableName: "x"}},
			{ID: "e", Type: domain.NodeTypeEnd, Data: domain.EndData{}},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "s", Target: "q"},
			{ID: "e2", Source: "q", Target: "e"},
		},
	}
}

func TestValidateAcceptsWellFormedFlow(t *testing.T) {
	res := Validate(validFlow())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidateRequiresSingleStart(t *testing.T) {
	f := validFlow()
	f.Nodes[0].Type = domain.NodeTypeMessage
	f.Nodes[0].Data = domain.MessageData{Content: "hi"}
	res := Validate(f)
	assert.False(t, res.IsValid)
	assert.Contains(t, codes(res), CodeNoStartNode)

	f = validFlow()
	f.Nodes = append(f.Nodes, domain.Node{ID: "s2", Type: domain.NodeTypeStart, Data: domain.StartData{}})
	f.Edges = append(f.Edges, domain.Edge{ID: "e3", Source: "s2", Target: "q"})
	res = Validate(f)
	assert.False(t, res.IsValid)
	assert.Contains(t, codes(res), CodeMultipleStartNodes)
}

func TestValidateRejectsIncomingEdgeToStart(t *testing.T) {
	f := validFlow()
	f.Edges = append(f.Edges, domain.Edge{ID: "e3", Source: "q", Target: "s"})
	res := Validate(f)
	assert.Contains(t, codes(res), CodeStartHasIncoming)
}

func TestValidateRejectsDanglingEdges(t *testing.T) {
	f := validFlow()
	f.Edges = append(f.Edges, domain.Edge{ID: "e3", Source: "q", Target: "ghost"})
	res := Validate(f)
	assert.False(t, res.IsValid)
	assert.Contains(t, codes(res), CodeDanglingEdge)
}

func TestValidateRejectsDuplicateNodeIDs(t *testing.T) {
	f := validFlow()
	f.Nodes = append(f.Nodes, domain.Node{ID: "q", Type: domain.NodeTypeEnd, Data: domain.EndData{}})
	res := Validate(f)
	assert.Contains(t, codes(res), CodeDuplicateNodeID)
}

func TestValidateRejectsDeadEndNodes(t *testing.T) {
	f := validFlow()
	f.Edges = f.Edges[:1] // drop q -> e
	res := Validate(f)
	assert.Contains(t, codes(res), CodeNoOutgoingEdge)
}

func TestValidateConditionBranchCoverage(t *testing.T) {
	f := validFlow()
	f.Nodes = append(f.Nodes, domain.Node{
		ID:   "c",
		Type: domain.NodeTypeCondition,
		Data: domain.ConditionData{Condition: domain.Condition{
			Operator: domain.OperatorAnd,
			Rules:    []domain.Rule{{Field: "x", Operator: domain.OpIsNotEmpty}},
		}},
	})
	f.Edges = append(f.Edges,
		domain.Edge{ID: "e3", Source: "q", Target: "c"},
		domain.Edge{ID: "e4", Source: "c", Target: "e", SourceHandle: domain.HandleTrue},
	)

	res := Validate(f)
	require.False(t, res.IsValid)
	assert.Contains(t, codes(res), CodeMissingBranch)

	f.Edges = append(f.Edges, domain.Edge{ID: "e5", Source: "c", Target: "e", SourceHandle: domain.HandleFalse})
	assert.True(t, Validate(f).IsValid)
}

func TestValidateMultiOutputBranchCoverage(t *testing.T) {
	f := validFlow()
	f.Nodes = append(f.Nodes, domain.Node{
		ID:   "c",
		Type: domain.NodeTypeCondition,
		Data: domain.ConditionData{Condition: domain.Condition{
			Outputs: []domain.Output{
				{Value: "small", Rules: []domain.Rule{{Field: "n", Operator: domain.OpLessThan, Value: "10"}}},
				{Value: "large"},
			},
		}},
	})
	f.Edges = append(f.Edges,
		domain.Edge{ID: "e3", Source: "q", Target: "c"},
		domain.Edge{ID: "e4", Source: "c", Target: "e", SourceHandle: "small"},
	)

	res := Validate(f)
	require.False(t, res.IsValid)
	assert.Contains(t, codes(res), CodeMissingBranch)

	f.Edges = append(f.Edges, domain.Edge{ID: "e5", Source: "c", Target: "e", SourceHandle: "large"})
	assert.True(t, Validate(f).IsValid)
}

func TestValidateExternalCallNeedsSuccessEdge(t *testing.T) {
	f := validFlow()
	f.Nodes = append(f.Nodes, domain.Node{
		ID:   "api",
		Type: domain.NodeTypeAPICall,
		Data: domain.APICallData{Call: domain.ActionCall{Method: "GET", URL: "https://example.com"}},
	})
	f.Edges = append(f.Edges, domain.Edge{ID: "e3", Source: "q", Target: "api"})

	res := Validate(f)
	require.False(t, res.IsValid)
	assert.Contains(t, codes(res), CodeMissingBranch)

	f.Edges = append(f.Edges, domain.Edge{ID: "e4", Source: "api", Target: "e", SourceHandle: domain.HandleSuccess})
	assert.True(t, Validate(f).IsValid)
}

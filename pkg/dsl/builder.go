// Package dsl provides a fluent builder for constructing flow definitions
// in Go code, as an alternative to loading editor-exported JSON.
package dsl

import (
	"fmt"

	"github.com/vitaehq/converse/pkg/definition"
	"github.com/vitaehq/converse/pkg/domain"
)

// Builder accumulates nodes and edges and compiles them into a validated
// FlowDefinition. Methods chain; errors surface once, at Build.
type Builder struct {
	def     domain.FlowDefinition
	edgeSeq int
}

// NewFlow starts a builder for a flow with the given id and display name.
func NewFlow(id, name string) *Builder {
	return &Builder{def: domain.FlowDefinition{
		ID:      id,
		Name:    name,
		Version: "1.0.0",
	}}
}

// Start adds the entry node.
func (b *Builder) Start(id string) *Builder {
	return b.node(id, domain.NodeTypeStart, domain.StartData{})
}

// Message adds a one-way message node.
func (b *Builder) Message(id, content string) *Builder {
	return b.node(id, domain.NodeTypeMessage, domain.MessageData{Content: content})
}

// Question adds a free-text question that stores its answer in variable.
func (b *Builder) Question(id, text, variable string, rules ...domain.ValidationRule) *Builder {
	return b.node(id, domain.NodeTypeQuestion, domain.QuestionData{
		Text:         text,
		VariableName: variable,
		Validation:   rules,
	})
}

// Choice adds an option-based question.
func (b *Builder) Choice(id, text, variable string, options ...domain.Option) *Builder {
	return b.node(id, domain.NodeTypeQuestion, domain.QuestionData{
		Text:         text,
		VariableName: variable,
		Options:      options,
	})
}

// Condition adds a binary condition combining the rules with AND.
func (b *Builder) Condition(id string, rules ...domain.Rule) *Builder {
	return b.node(id, domain.NodeTypeCondition, domain.ConditionData{
		Condition: domain.Condition{Operator: domain.OperatorAnd, Rules: rules},
	})
}

// Switch adds a multi-output condition selecting the first matching output.
func (b *Builder) Switch(id string, outputs ...domain.Output) *Builder {
	return b.node(id, domain.NodeTypeCondition, domain.ConditionData{
		Condition: domain.Condition{Outputs: outputs},
	})
}

// SetVariable adds an action node that assigns value (interpolated) to
// variable.
func (b *Builder) SetVariable(id, variable, value string) *Builder {
	return b.node(id, domain.NodeTypeAction, domain.ActionData{
		Kind:     domain.ActionSetVariable,
		Variable: variable,
		Value:    value,
	})
}

// APICall adds an api-call node.
func (b *Builder) APICall(id string, call domain.ActionCall, responseMapping map[string]string) *Builder {
	return b.node(id, domain.NodeTypeAPICall, domain.APICallData{
		Call:            call,
		ResponseMapping: responseMapping,
	})
}

// Webhook adds a webhook delivery node.
func (b *Builder) Webhook(id string, call domain.ActionCall) *Builder {
	return b.node(id, domain.NodeTypeWebhook, domain.WebhookData{Call: call})
}

// Wait adds a non-blocking wait marker.
func (b *Builder) Wait(id string, delayMs int) *Builder {
	return b.node(id, domain.NodeTypeWait, domain.WaitData{DelayMs: delayMs})
}

// End adds a terminal node with an optional farewell message.
func (b *Builder) End(id, message string) *Builder {
	return b.node(id, domain.NodeTypeEnd, domain.EndData{Message: message})
}

// Edge connects two nodes with the default handle.
func (b *Builder) Edge(source, target string) *Builder {
	return b.edge(source, target, "")
}

// BranchTrue connects a condition's true handle.
func (b *Builder) BranchTrue(source, target string) *Builder {
	return b.edge(source, target, domain.HandleTrue)
}

// BranchFalse connects a condition's false handle.
func (b *Builder) BranchFalse(source, target string) *Builder {
	return b.edge(source, target, domain.HandleFalse)
}

// Branch connects an arbitrary source handle: a multi-output value, an
// option value, "success", "error" or "max-retries".
func (b *Builder) Branch(source, handle, target string) *Builder {
	return b.edge(source, target, handle)
}

// Variable declares a flow variable with an optional default.
func (b *Builder) Variable(name, defaultValue string) *Builder {
	b.def.Variables = append(b.def.Variables, domain.Variable{
		Name:         name,
		Scope:        domain.ScopeLocal,
		DefaultValue: defaultValue,
	})
	return b
}

// Build compiles and validates the definition.
func (b *Builder) Build() (*domain.FlowDefinition, error) {
	def := b.def
	if res := definition.Validate(&def); !res.IsValid {
		return nil, fmt.Errorf("building flow %q: %w", def.ID, res.Errors[0])
	}
	return &def, nil
}

func (b *Builder) node(id string, t domain.NodeType, data domain.NodeData) *Builder {
	b.def.Nodes = append(b.def.Nodes, domain.Node{ID: id, Type: t, Data: data})
	return b
}

func (b *Builder) edge(source, target, handle string) *Builder {
	b.edgeSeq++
	b.def.Edges = append(b.def.Edges, domain.Edge{
		ID:           fmt.Sprintf("e%d", b.edgeSeq),
		Source:       source,
		Target:       target,
		SourceHandle: handle,
	})
	return b
}

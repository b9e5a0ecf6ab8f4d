package domain

// FlowDefinition is the immutable description of a conversation graph.
// It is produced by the visual editor (or the dsl package) and must be
// treated as read-only once execution begins: a single definition may be
// shared across arbitrarily many concurrent sessions without locking.
type FlowDefinition struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Version     string     `json:"version"`
	Nodes       []Node     `json:"nodes"`
	Edges       []Edge     `json:"edges"`
	Variables   []Variable `json:"variables,omitempty"`
	Settings    Settings   `json:"settings"`
}

// Settings carries flow-wide execution defaults.
type Settings struct {
	// DefaultTimeoutMs bounds external action calls that do not specify
	// their own timeout. Zero means the engine default (10s).
	DefaultTimeoutMs int `json:"defaultTimeoutMs,omitempty"`
}

// Variable declares a name the flow intends to read or write. Declarations
// are informational: the engine tolerates references to undeclared
// variables by treating them as absent, never as errors.
type Variable struct {
	Name         string        `json:"name"`
	Type         string        `json:"type,omitempty"`
	Scope        VariableScope `json:"scope,omitempty"`
	DefaultValue string        `json:"defaultValue,omitempty"`
}

// VariableScope distinguishes flow-global variables from ones local to a
// single session run.
type VariableScope string

const (
	ScopeGlobal VariableScope = "global"
	ScopeLocal  VariableScope = "local"
)

// NodeByID returns the node with the given id, or nil.
func (f *FlowDefinition) NodeByID(id string) *Node {
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			return &f.Nodes[i]
		}
	}
	return nil
}

// StartNode returns the unique start node, or nil if absent. Uniqueness is
// enforced by definition.Validate before execution.
func (f *FlowDefinition) StartNode() *Node {
	for i := range f.Nodes {
		if f.Nodes[i].Type == NodeTypeStart {
			return &f.Nodes[i]
		}
	}
	return nil
}

// EdgesFrom returns the outgoing edges of a node in declaration order.
// Declaration order is significant: it is the tie-break for default edges.
func (f *FlowDefinition) EdgesFrom(nodeID string) []Edge {
	var out []Edge
	for _, e := range f.Edges {
		if e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}

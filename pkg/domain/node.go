package domain

// NodeType tags the behavior of a node. The set is closed: parsing rejects
// unknown types, and the traversal engine dispatches exhaustively.
type NodeType string

const (
	NodeTypeStart     NodeType = "start"
	NodeTypeMessage   NodeType = "message"
	NodeTypeQuestion  NodeType = "question"
	NodeTypeCondition NodeType = "condition"
	NodeTypeAction    NodeType = "action"
	NodeTypeWait      NodeType = "wait"
	NodeTypeAPICall   NodeType = "api-call"
	NodeTypeWebhook   NodeType = "webhook"
	NodeTypeEnd       NodeType = "end"
)

// Position is editor-only layout information. The engine ignores it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a vertex in the flow graph. Data is a tagged union: exactly one
// concrete struct per NodeType, selected during parsing. This replaces the
// editor's loosely-typed record (every field optional) with a shape the
// compiler can check.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position,omitempty"`
	Data     NodeData `json:"data,omitempty"`
}

// NodeData is the sealed interface implemented by the per-type data
// structs below.
type NodeData interface {
	nodeData()
}

// StartData carries no payload; the start node only marks the entry point.
type StartData struct{}

// MessageData renders a one-way assistant message.
type MessageData struct {
	Content string `json:"content"`
}

// Option is a selectable answer for option-based questions. NextNodeID,
// when set, overrides generic edge resolution for that choice.
type Option struct {
	ID         string `json:"id,omitempty"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	NextNodeID string `json:"nextNodeId,omitempty"`
}

// QuestionData suspends the walk and waits for a user answer.
type QuestionData struct {
	Text         string           `json:"text"`
	VariableName string           `json:"variableName"`
	InputType    string           `json:"inputType,omitempty"`
	Options      []Option         `json:"options,omitempty"`
	Validation   []ValidationRule `json:"validation,omitempty"`

	// MaxRetries bounds consecutive validation failures. Zero means
	// indefinite re-prompting (the default). When exceeded, the engine
	// follows the "max-retries" handle edge if one exists, otherwise the
	// session transitions to errored.
	MaxRetries int `json:"maxRetries,omitempty"`
}

// ConditionData branches on the current state, either binary
// (true/false handles) or multi-output (one handle per output value).
type ConditionData struct {
	Condition Condition `json:"condition"`
}

// Action kinds executed synchronously by action nodes.
const (
	ActionSetVariable = "set_variable"
	ActionCallAPI     = "call_api"
	ActionSendWebhook = "send_webhook"
	ActionWait        = "wait"
)

// ActionData executes a side effect and continues. Kind selects which of
// the optional fields apply.
type ActionData struct {
	Kind string `json:"kind"`

	// set_variable
	Variable string `json:"variable,omitempty"`
	Value    string `json:"value,omitempty"`

	// call_api / send_webhook
	Call            *ActionCall       `json:"call,omitempty"`
	ResponseMapping map[string]string `json:"responseMapping,omitempty"`

	// wait
	DelayMs int `json:"delayMs,omitempty"`
}

// WaitData models an intended delay. The engine records it and moves on;
// real elapsed-time scheduling is the hosting application's job.
type WaitData struct {
	DelayMs int `json:"delayMs"`
}

// APICallData invokes an external HTTP API through the action invoker and
// branches on success/error handles. ResponseMapping copies response JSON
// fields into FlowState variables (dotted paths supported).
type APICallData struct {
	Call            ActionCall        `json:"call"`
	ResponseMapping map[string]string `json:"responseMapping,omitempty"`
}

// WebhookData delivers a webhook through the action invoker. Same
// branching contract as APICallData.
type WebhookData struct {
	Call            ActionCall        `json:"call"`
	ResponseMapping map[string]string `json:"responseMapping,omitempty"`
}

// EndData optionally renders a final message before completion.
type EndData struct {
	Message string `json:"message,omitempty"`
}

func (StartData) nodeData()     {}
func (MessageData) nodeData()   {}
func (QuestionData) nodeData()  {}
func (ConditionData) nodeData() {}
func (ActionData) nodeData()    {}
func (WaitData) nodeData()      {}
func (APICallData) nodeData()   {}
func (WebhookData) nodeData()   {}
func (EndData) nodeData()       {}

package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter         EventType = "node_enter"
	EventQuestionAsked     EventType = "question_asked"
	EventValidationFailure EventType = "validation_failure"
	EventActionInvoke      EventType = "action_invoke"
	EventComplete          EventType = "complete"
	EventBranchError       EventType = "branch_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	FlowID    string    `json:"flow_id"`
}

// NodeEvent represents entry into a node during traversal.
type NodeEvent struct {
	EventBase
	NodeID   string   `json:"node_id"`
	NodeType NodeType `json:"node_type"`
}

// QuestionEvent fires when the walk suspends at a question.
type QuestionEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	Variable string `json:"variable"`
	Text     string `json:"text"`
}

// ValidationEvent fires when an answer is rejected by the validation gate.
type ValidationEvent struct {
	EventBase
	NodeID  string `json:"node_id"`
	Attempt int    `json:"attempt"`
	Message string `json:"message"`
}

// ActionEvent represents one external invocation (api-call, webhook or
// action node side effect).
type ActionEvent struct {
	EventBase
	NodeID   string        `json:"node_id"`
	Kind     string        `json:"kind"`
	URL      string        `json:"url,omitempty"`
	Duration time.Duration `json:"duration"`
	IsError  bool          `json:"is_error,omitempty"`
}

// CompleteEvent fires once per session, when an end node is reached.
type CompleteEvent struct {
	EventBase
	NodeID string `json:"node_id"`
}

// BranchEvent fires when a condition cannot resolve any outgoing edge.
type BranchEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Reason string `json:"reason"`
}

// LifecycleHooks defines callbacks for engine observability. All fields are
// optional; nil hooks are skipped.
type LifecycleHooks struct {
	OnNodeEnter         func(context.Context, *NodeEvent)
	OnQuestionAsked     func(context.Context, *QuestionEvent)
	OnValidationFailure func(context.Context, *ValidationEvent)
	OnActionInvoke      func(context.Context, *ActionEvent)
	OnComplete          func(context.Context, *CompleteEvent)
	OnBranchError       func(context.Context, *BranchEvent)
}

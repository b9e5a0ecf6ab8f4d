package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNotAwaitingAnswer is returned when a user response arrives for a
// session that is not suspended at a question.
var ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")

// ErrFlowComplete is returned when a response arrives for a session whose
// flow has already finished.
var ErrFlowComplete = errors.New("flow already complete")

// BranchResolutionError means a condition node could not pick any outgoing
// edge: no output matched, or the matching handle has no edge.
type BranchResolutionError struct {
	NodeID string
	Reason string
}

func (e *BranchResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve branch at node %q: %s", e.NodeID, e.Reason)
}

// UnknownNodeTypeError means traversal reached a node whose type the engine
// does not dispatch. Validation normally catches this at load time.
type UnknownNodeTypeError struct {
	NodeID string
	Type   NodeType
}

func (e *UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("unknown node type %q at node %q", e.Type, e.NodeID)
}

// TraversalLimitError means a single walk visited more nodes than the flow
// could justify, which indicates a cycle with no question to break it.
type TraversalLimitError struct {
	NodeID string
	Steps  int
}

func (e *TraversalLimitError) Error() string {
	return fmt.Sprintf("traversal aborted at node %q after %d steps: probable cycle without a question node", e.NodeID, e.Steps)
}

// ExternalActionError means an api-call or webhook node failed and the flow
// declares no error-handle edge to absorb it.
type ExternalActionError struct {
	NodeID string
	Cause  string
}

func (e *ExternalActionError) Error() string {
	return fmt.Sprintf("external action failed at node %q: %s", e.NodeID, e.Cause)
}

// MissingNodeError means an edge points at a node ID that does not exist.
type MissingNodeError struct {
	NodeID string
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("node %q not found in flow definition", e.NodeID)
}

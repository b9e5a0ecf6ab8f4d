package definition

import "fmt"

// Error codes reported by Validate.
const (
	CodeNoStartNode        = "no_start_node"
	CodeMultipleStartNodes = "multiple_start_nodes"
	CodeStartHasIncoming   = "start_has_incoming"
	CodeDuplicateNodeID    = "duplicate_node_id"
	CodeDanglingEdge       = "dangling_edge"
	CodeNoOutgoingEdge     = "no_outgoing_edge"
	CodeMissingBranch      = "missing_branch"
)

// Error is one structural problem found in a flow definition.
type Error struct {
	Code    string `json:"code"`
	NodeID  string `json:"nodeId,omitempty"`
	EdgeID  string `json:"edgeId,omitempty"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s: node %q: %s", e.Code, e.NodeID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationResult aggregates every problem found, not just the first one,
// so editors can surface all of them in a single pass.
type ValidationResult struct {
	IsValid bool    `json:"isValid"`
	Errors  []Error `json:"errors,omitempty"`
}

package domain

// ExecutionResult is what every engine entry point returns: the messages
// produced during this walk segment, the question now pending (if any), and
// the updated state snapshot.
type ExecutionResult struct {
	// NextQuestion is the question node the session is suspended at, or nil
	// when the flow completed or errored.
	NextQuestion *Node `json:"nextQuestion,omitempty"`

	// IsComplete mirrors State.IsComplete for callers that discard State.
	IsComplete bool `json:"isComplete"`

	// Messages are the assistant/system outputs emitted since the previous
	// suspension point, in emission order.
	Messages []Message `json:"messages,omitempty"`

	// State is the post-walk snapshot.
	State *FlowState `json:"state"`
}

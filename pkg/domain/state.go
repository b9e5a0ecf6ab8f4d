package domain

import "time"

// ExecutionStatus is the lifecycle phase of a session.
type ExecutionStatus string

const (
	// StatusAwaitingAnswer means the walk is suspended at a question node.
	StatusAwaitingAnswer ExecutionStatus = "awaiting-answer"
	// StatusComplete means an end node was reached. Terminal.
	StatusComplete ExecutionStatus = "complete"
	// StatusErrored means a fatal traversal error occurred. Terminal.
	StatusErrored ExecutionStatus = "errored"
)

// Transcript roles.
const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
	RoleSystem    = "system"
)

// Message is one transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FlowState is the complete runtime snapshot of one session. Everything the
// engine needs to resume a conversation lives here, which is what makes
// sessions storable and the engine itself stateless between turns.
type FlowState struct {
	FlowID        string            `json:"flowId"`
	Variables     map[string]string `json:"variables"`
	CurrentNodeID string            `json:"currentNodeId,omitempty"`
	Status        ExecutionStatus   `json:"status"`
	IsComplete    bool              `json:"isComplete"`
	Transcript    []Message         `json:"transcript,omitempty"`

	// Attempts counts consecutive validation failures at the current
	// question. Reset on every accepted answer.
	Attempts int `json:"attempts,omitempty"`

	// Metadata carries adapter-owned annotations (wait durations, error
	// details). The traversal logic never branches on it.
	Metadata map[string]string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// NewState returns a fresh state for a flow, seeding variables from the
// definition's declared defaults.
func NewState(def *FlowDefinition) *FlowState {
	now := time.Now().UTC()
	s := &FlowState{
		FlowID:    def.ID,
		Variables: make(map[string]string),
		Status:    StatusAwaitingAnswer,
		Metadata:  make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, v := range def.Variables {
		if v.DefaultValue != "" {
			s.Variables[v.Name] = v.DefaultValue
		}
	}
	return s
}

// Get returns the value of a variable and whether it is set.
func (s *FlowState) Get(name string) (string, bool) {
	v, ok := s.Variables[name]
	return v, ok
}

// Set writes a variable, allocating the map if needed.
func (s *FlowState) Set(name, value string) {
	if s.Variables == nil {
		s.Variables = make(map[string]string)
	}
	s.Variables[name] = value
}

// SetMeta writes a metadata annotation, allocating the map if needed.
func (s *FlowState) SetMeta(key, value string) {
	if s.Metadata == nil {
		s.Metadata = make(map[string]string)
	}
	s.Metadata[key] = value
}

// Append adds a transcript entry.
func (s *FlowState) Append(role, content string) {
	s.Transcript = append(s.Transcript, Message{Role: role, Content: content})
}

// Clone returns a deep copy. Stores hand copies out so callers can mutate
// freely without racing persisted snapshots.
func (s *FlowState) Clone() *FlowState {
	if s == nil {
		return nil
	}
	c := *s
	c.Variables = make(map[string]string, len(s.Variables))
	for k, v := range s.Variables {
		c.Variables[k] = v
	}
	if s.Metadata != nil {
		c.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			c.Metadata[k] = v
		}
	}
	if s.Transcript != nil {
		c.Transcript = make([]Message, len(s.Transcript))
		copy(c.Transcript, s.Transcript)
	}
	return &c
}

package domain

// Well-known source handles. A handle selects among multiple outputs of a
// node; an empty handle marks the default/only output.
const (
	HandleTrue       = "true"
	HandleFalse      = "false"
	HandleSuccess    = "success"
	HandleError      = "error"
	HandleMaxRetries = "max-retries"
)

// Edge is a directed connection between two nodes. SourceHandle qualifies
// which output of the source node it belongs to (condition branches,
// success/error of external calls, a question option's value).
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}

package domain

// ActionCall describes one outbound HTTP request the engine wants made.
// Headers and Body are fully interpolated before the invoker sees them.
type ActionCall struct {
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers,omitempty"`
	Body      string            `json:"body,omitempty"`
	TimeoutMs int               `json:"timeoutMs,omitempty"`
}

// ActionResult is the normalized outcome of an invocation. Invokers never
// return Go errors for remote failures: network errors, timeouts and non-2xx
// statuses all come back as OK=false so the engine can branch on the error
// handle instead of aborting the walk.
type ActionResult struct {
	OK     bool   `json:"ok"`
	Status int    `json:"status,omitempty"`
	Body   []byte `json:"body,omitempty"`
	Err    string `json:"err,omitempty"`
}

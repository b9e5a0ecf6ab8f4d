package domain

// Validation rule types understood by the answer gate.
const (
	ValidationRequired  = "required"
	ValidationEmail     = "email"
	ValidationPhone     = "phone"
	ValidationMinLength = "minLength"
	ValidationMaxLength = "maxLength"
	ValidationPattern   = "pattern"
)

// ValidationRule is one acceptance requirement on a question answer.
// Value holds the rule parameter: a number for minLength/maxLength, a
// regular expression string for pattern, nothing for the rest. It is kept
// as any because editor exports serialize numbers and strings
// interchangeably; the gate coerces as needed.
type ValidationRule struct {
	Type    string `json:"type"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

package domain

// LogicalOperator combines rule results.
type LogicalOperator string

const (
	OperatorAnd LogicalOperator = "and"
	OperatorOr  LogicalOperator = "or"
)

// RuleOperator compares a state variable against a rule value.
type RuleOperator string

const (
	OpEquals      RuleOperator = "equals"
	OpNotEquals   RuleOperator = "not_equals"
	OpContains    RuleOperator = "contains"
	OpGreaterThan RuleOperator = "greater_than"
	OpLessThan    RuleOperator = "less_than"
	OpStartsWith  RuleOperator = "starts_with"
	OpEndsWith    RuleOperator = "ends_with"
	OpIsEmpty     RuleOperator = "is_empty"
	OpIsNotEmpty  RuleOperator = "is_not_empty"
	OpInList      RuleOperator = "in_list"
	OpNotInList   RuleOperator = "not_in_list"
)

// Rule is a single comparison of state[Field] against Value.
//
// Comparison semantics are deliberately asymmetric and preserved from the
// product definition: equals/not_equals and starts_with/ends_with are
// case-insensitive (equals additionally trims both sides), contains is
// case-sensitive. in_list/not_in_list treat Value as a comma-separated
// list with trimmed, lowercased entries.
type Rule struct {
	Field    string       `json:"field"`
	Operator RuleOperator `json:"operator"`
	Value    string       `json:"value,omitempty"`
}

// Output is one arm of a multi-output condition. Its own rule set decides
// whether it matches; an empty rule set always matches and therefore acts
// as an explicit else/default arm when declared last.
type Output struct {
	ID       string          `json:"id,omitempty"`
	Value    string          `json:"value"`
	Label    string          `json:"label,omitempty"`
	Operator LogicalOperator `json:"operator,omitempty"`
	Rules    []Rule          `json:"rules,omitempty"`
}

// Condition is either a binary combination of rules (Operator + Rules) or
// an ordered multi-output selection (Outputs). The two forms are mutually
// exclusive; Outputs wins when both are present.
type Condition struct {
	Operator LogicalOperator `json:"operator,omitempty"`
	Rules    []Rule          `json:"rules,omitempty"`
	Outputs  []Output        `json:"outputs,omitempty"`
}

// IsMultiOutput reports whether the condition selects among outputs rather
// than evaluating to a boolean.
func (c Condition) IsMultiOutput() bool {
	return len(c.Outputs) > 0
}

package dsl

import "github.com/vitaehq/converse/pkg/domain"

// RuleEquals matches when the variable equals value (case-insensitive,
// trimmed).
func RuleEquals(field, value string) domain.Rule {
	return domain.Rule{Field: field, Operator: domain.OpEquals, Value: value}
}

// RuleNotEquals negates RuleEquals.
func RuleNotEquals(field, value string) domain.Rule {
	return domain.Rule{Field: field, Operator: domain.OpNotEquals, Value: value}
}

// RuleContains matches a case-sensitive substring.
func RuleContains(field, value string) domain.Rule {
	return domain.Rule{Field: field, Operator: domain.OpContains, Value: value}
}

// RuleGreaterThan compares numerically.
func RuleGreaterThan(field, value string) domain.Rule {
	return domain.Rule{Field: field, Operator: domain.OpGreaterThan, Value: value}
}

// RuleLessThan compares numerically.
func RuleLessThan(field, value string) domain.Rule {
	return domain.Rule{Field: field, Operator: domain.OpLessThan, Value: value}
}

// RuleIsEmpty matches unset or whitespace-only variables.
func RuleIsEmpty(field string) domain.Rule {
	return domain.Rule{Field: field, Operator: domain.OpIsEmpty}
}

// RuleIsNotEmpty negates RuleIsEmpty.
func RuleIsNotEmpty(field string) domain.Rule {
	return domain.Rule{Field: field, Operator: domain.OpIsNotEmpty}
}

// RuleInList matches against a comma-separated list of values.
func RuleInList(field, list string) domain.Rule {
	return domain.Rule{Field: field, Operator: domain.OpInList, Value: list}
}

// Output builds one arm of a Switch, matched when all rules hold.
func Output(value string, rules ...domain.Rule) domain.Output {
	return domain.Output{Value: value, Operator: domain.OperatorAnd, Rules: rules}
}

// DefaultOutput builds an always-matching arm; declare it last.
func DefaultOutput(value string) domain.Output {
	return domain.Output{Value: value}
}

// Required is the standard non-empty validation rule.
func Required(message string) domain.ValidationRule {
	return domain.ValidationRule{Type: domain.ValidationRequired, Message: message}
}

// Email validates the answer as an email address.
func Email(message string) domain.ValidationRule {
	return domain.ValidationRule{Type: domain.ValidationEmail, Message: message}
}

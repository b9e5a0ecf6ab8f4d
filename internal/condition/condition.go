// Package condition evaluates branching rules against flow state.
package condition

import (
	"strconv"
	"strings"

	"github.com/vitaehq/converse/pkg/domain"
)

// Evaluate resolves a binary condition to a boolean. An empty rule list is
// always true, acting as an explicit pass-through default. Combination is
// "and" unless the operator is "or".
func Evaluate(c domain.Condition, vars map[string]string) bool {
	return evaluateRules(c.Operator, c.Rules, vars)
}

// SelectOutput picks the first output, in declared order, whose rule set
// evaluates true for the given state. Declaration order is the tie-break
// when several match. The second return is false when nothing matches.
func SelectOutput(c domain.Condition, vars map[string]string) (domain.Output, bool) {
	for _, out := range c.Outputs {
		if evaluateRules(out.Operator, out.Rules, vars) {
			return out, true
		}
	}
	return domain.Output{}, false
}

func evaluateRules(op domain.LogicalOperator, rules []domain.Rule, vars map[string]string) bool {
	if len(rules) == 0 {
		return true
	}
	if op == domain.OperatorOr {
		for _, r := range rules {
			if EvaluateRule(r, vars) {
				return true
			}
		}
		return false
	}
	for _, r := range rules {
		if !EvaluateRule(r, vars) {
			return false
		}
	}
	return true
}

// EvaluateRule applies one rule to the state. An absent field is treated as
// the empty string, never as an error.
//
// The per-operator case semantics are intentionally uneven and must not be
// normalized: equals trims and ignores case, contains is an exact
// case-sensitive substring test, starts_with and ends_with ignore case.
func EvaluateRule(r domain.Rule, vars map[string]string) bool {
	field := vars[r.Field]

	switch r.Operator {
	case domain.OpEquals:
		return strings.EqualFold(strings.TrimSpace(field), strings.TrimSpace(r.Value))
	case domain.OpNotEquals:
		return !strings.EqualFold(strings.TrimSpace(field), strings.TrimSpace(r.Value))
	case domain.OpContains:
		return strings.Contains(field, r.Value)
	case domain.OpStartsWith:
		return strings.HasPrefix(strings.ToLower(field), strings.ToLower(r.Value))
	case domain.OpEndsWith:
		return strings.HasSuffix(strings.ToLower(field), strings.ToLower(r.Value))
	case domain.OpGreaterThan:
		a, b, ok := coerceNumbers(field, r.Value)
		return ok && a > b
	case domain.OpLessThan:
		a, b, ok := coerceNumbers(field, r.Value)
		return ok && a < b
	case domain.OpIsEmpty:
		return strings.TrimSpace(field) == ""
	case domain.OpIsNotEmpty:
		return strings.TrimSpace(field) != ""
	case domain.OpInList:
		return inList(field, r.Value)
	case domain.OpNotInList:
		return !inList(field, r.Value)
	default:
		return false
	}
}

func coerceNumbers(a, b string) (float64, float64, bool) {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return fa, fb, true
}

func inList(field, list string) bool {
	needle := strings.ToLower(strings.TrimSpace(field))
	for _, entry := range strings.Split(list, ",") {
		if strings.ToLower(strings.TrimSpace(entry)) == needle {
			return true
		}
	}
	return false
}

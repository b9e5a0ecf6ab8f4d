// Package validation gates user answers against question rules.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vitaehq/converse/pkg/domain"
)

// Result is the outcome of gating one answer.
type Result struct {
	Valid   bool
	Message string
}

// Loose by intent: these reject garbage, not borderline addresses. Strict
// verification belongs to whatever consumes the variable downstream.
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,}$`)
)

// ValidateAnswer applies the rules in declaration order and returns the
// first failure. An empty rule set accepts everything.
func ValidateAnswer(rules []domain.ValidationRule, answer string) Result {
	for _, r := range rules {
		if msg, ok := check(r, answer); !ok {
			return Result{Valid: false, Message: message(r, msg)}
		}
	}
	return Result{Valid: true}
}

func check(r domain.ValidationRule, answer string) (string, bool) {
	switch r.Type {
	case domain.ValidationRequired:
		if strings.TrimSpace(answer) == "" {
			return "this field is required", false
		}
	case domain.ValidationEmail:
		if !emailPattern.MatchString(strings.TrimSpace(answer)) {
			return "please enter a valid email address", false
		}
	case domain.ValidationPhone:
		if !phonePattern.MatchString(strings.TrimSpace(answer)) {
			return "please enter a valid phone number", false
		}
	case domain.ValidationMinLength:
		n := intValue(r.Value)
		if len([]rune(answer)) < n {
			return fmt.Sprintf("answer must be at least %d characters", n), false
		}
	case domain.ValidationMaxLength:
		n := intValue(r.Value)
		if n > 0 && len([]rune(answer)) > n {
			return fmt.Sprintf("answer must be at most %d characters", n), false
		}
	case domain.ValidationPattern:
		expr, _ := r.Value.(string)
		if expr == "" {
			return "", true
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			// A broken pattern must not lock the user out of the flow.
			return "", true
		}
		// Partial match: the pattern may hit anywhere in the answer.
		if re.FindStringIndex(answer) == nil {
			return "answer does not match the expected format", false
		}
	}
	return "", true
}

func message(r domain.ValidationRule, fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

// intValue coerces a rule parameter to an int. Editor exports serialize the
// length bound as either a JSON number or a string.
func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	default:
		return 0
	}
}

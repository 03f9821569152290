package planning

import (
	"strings"
)

// ValidationResult is the outcome of a soft-invariant check.
// A failed validation is data, not an error: callers may repair and retry, or proceed.
type ValidationResult struct {
	Valid      bool
	Message    string
	Violations []string
}

// Valid returns a passing ValidationResult.
func Valid() ValidationResult {
	return ValidationResult{Valid: true, Violations: []string{}}
}

// Invalid returns a failing ValidationResult whose message joins all violations.
func Invalid(violations ...string) ValidationResult {
	return ValidationResult{
		Valid:      false,
		Message:    strings.Join(violations, "; "),
		Violations: violations,
	}
}

// Merge combines several results into one. The result is valid only if all inputs are.
func Merge(results ...ValidationResult) ValidationResult {
	var violations []string
	for _, result := range results {
		violations = append(violations, result.Violations...)
	}

	if len(violations) == 0 {
		return Valid()
	}

	return Invalid(violations...)
}

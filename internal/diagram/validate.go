package diagram

import (
	"fmt"
	"regexp"
	"strings"
)

// diagramKeywords are the accepted leading declaration tokens.
var diagramKeywords = []string{"graph", "classDiagram", "sequenceDiagram"}

// forbiddenShapePatterns flag nested shape wrappers the normalization pass
// should have collapsed.
var forbiddenShapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\("`),
	regexp.MustCompile(`\{\["`),
	regexp.MustCompile(`\[\{"`),
	regexp.MustCompile(`\(\{"`),
	regexp.MustCompile(`\[\[\["`),
}

// ValidationResult is the validator verdict. Errors is empty exactly when
// IsValid is true.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate checks generated diagram text for structural sanity: a known
// leading keyword, balanced brackets, and none of the forbidden nested-shape
// patterns. Independent checks accumulate errors; the bracket scan stops at
// its first mismatch.
func Validate(text string) ValidationResult {
	var errs []string

	trimmed := strings.TrimSpace(text)
	if !hasDiagramKeyword(trimmed) {
		errs = append(errs, fmt.Sprintf("diagram must begin with one of %v", diagramKeywords))
	}

	if err := checkBracketBalance(text); err != "" {
		errs = append(errs, err)
	}

	for _, pattern := range forbiddenShapePatterns {
		if pattern.MatchString(text) {
			errs = append(errs, fmt.Sprintf("invalid nested shape syntax: %s", pattern.String()))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func hasDiagramKeyword(trimmed string) bool {
	first := trimmed
	if idx := strings.IndexAny(trimmed, " \t\n"); idx >= 0 {
		first = trimmed[:idx]
	}
	for _, keyword := range diagramKeywords {
		if first == keyword {
			return true
		}
	}
	return false
}

// checkBracketBalance scans left to right with a stack over [], (), {}.
// The first mismatch short-circuits the scan.
func checkBracketBalance(text string) string {
	pairs := map[byte]byte{']': '[', ')': '(', '}': '{'}
	var stack []byte

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '[', '(', '{':
			stack = append(stack, c)
		case ']', ')', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
				return fmt.Sprintf("unbalanced bracket: unexpected %q at offset %d", string(c), i)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return fmt.Sprintf("unbalanced bracket: %q left open", string(stack[len(stack)-1]))
	}
	return ""
}

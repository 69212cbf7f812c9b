package utils

import "strings"

// Allows you to specify *.lms.example.com to get a suffix match.
// If the first character is a *, it just checks to see if its a suffix.
// If it's a string literal, it does a literal match.
func MatchesWithWildcard(valueToEvaluate string, matcher string) bool {
	if matcher == "" {
		return false
	}
	if matcher[0] == '*' {
		return strings.HasSuffix(valueToEvaluate, matcher[1:])
	}
	return valueToEvaluate == matcher
}

func TestStringAgainstSliceMatchers(matchers []string, valueToEvaluate string) bool {
	for _, matcher := range matchers {
		if MatchesWithWildcard(valueToEvaluate, matcher) {
			return true
		}
	}

	return false
}

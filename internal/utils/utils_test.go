package utils

import "testing"

func TestMatchesWithWildcard(t *testing.T) {
	cases := []struct {
		value, matcher string
		expect         bool
	}{
		{"dash.lms.example.com", "*.lms.example.com", true},
		{"lms.example.com", "lms.example.com", true},
		{"lms.example.com", "*.lms.example.com", false},
		{"evil.com", "*.lms.example.com", false},
		{"anything", "", false},
	}

	for _, tc := range cases {
		if got := MatchesWithWildcard(tc.value, tc.matcher); got != tc.expect {
			t.Errorf("MatchesWithWildcard(%q, %q) = %v, want %v", tc.value, tc.matcher, got, tc.expect)
		}
	}
}

func TestTestStringAgainstSliceMatchers(t *testing.T) {
	matchers := []string{"portal.example.com", "*.lms.example.com"}

	if !TestStringAgainstSliceMatchers(matchers, "portal.example.com") {
		t.Error("literal match should pass")
	}
	if !TestStringAgainstSliceMatchers(matchers, "admin.lms.example.com") {
		t.Error("wildcard match should pass")
	}
	if TestStringAgainstSliceMatchers(matchers, "example.com") {
		t.Error("unlisted host should fail")
	}
	if TestStringAgainstSliceMatchers(nil, "anything") {
		t.Error("empty matcher list matches nothing")
	}
}

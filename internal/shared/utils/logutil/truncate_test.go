package logutil

import "testing"

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "empty string", input: "", maxLen: 10, expected: ""},
		{name: "shorter than limit", input: "vr_abc", maxLen: 10, expected: "vr_abc"},
		{name: "exactly at limit", input: "vr_abc", maxLen: 6, expected: "vr_abc"},
		{name: "bearer token keeps prefix only", input: "eyJhbGciOiJIUzI1NiJ9.payload.sig", maxLen: 12, expected: "eyJhbGciOiJI..."},
		{name: "zero limit hides everything", input: "secret", maxLen: 0, expected: "..."},
		{name: "negative limit hides everything", input: "secret", maxLen: -1, expected: "..."},
		{name: "limit of one", input: "secret", maxLen: 1, expected: "s..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateForLog(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

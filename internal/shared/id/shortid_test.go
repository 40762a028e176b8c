package id

import (
	"strings"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		expected int
	}{
		{name: "default length when zero", length: 0, expected: DefaultLength},
		{name: "default length when negative", length: -5, expected: DefaultLength},
		{name: "explicit length", length: 8, expected: 8},
		{name: "long id", length: 32, expected: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			if err != nil {
				t.Fatalf("Generate(%d) returned error: %v", tt.length, err)
			}
			if len(got) != tt.expected {
				t.Errorf("Generate(%d) length = %d, want %d", tt.length, len(got), tt.expected)
			}
		})
	}
}

func TestGenerateAlphabet(t *testing.T) {
	got := MustGenerate(64)
	for _, r := range got {
		if !strings.ContainsRune(alphabet, r) {
			t.Errorf("generated ID contains character %q outside the Base62 alphabet", r)
		}
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixVerification, 12)
	if err != nil {
		t.Fatalf("GenerateWithPrefix returned error: %v", err)
	}
	if !strings.HasPrefix(got, "vr_") {
		t.Errorf("GenerateWithPrefix = %q, want vr_ prefix", got)
	}
	if len(got) != len("vr_")+12 {
		t.Errorf("GenerateWithPrefix length = %d, want %d", len(got), len("vr_")+12)
	}
}

func TestHasPrefix(t *testing.T) {
	if !HasPrefix("app_abc123", PrefixApplication) {
		t.Error("HasPrefix should match app_ prefix")
	}
	if HasPrefix("application_abc", PrefixApplication) {
		t.Error("HasPrefix should require exact prefix followed by underscore")
	}
	if HasPrefix("pd_abc", PrefixApplication) {
		t.Error("HasPrefix should not match a different prefix")
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := MustGenerate(DefaultLength)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

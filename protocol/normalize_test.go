package protocol

import (
	"testing"
)

func TestNormalize(t *testing.T) {

	tests := []struct {
		in   string
		want string
	}{
		{"  Hello World!  ", "hello world"},
		{"Café #1!", "caf 1"},
		{"", ""},
		{"already normal", "already normal"},
		{"UPPER and lower 123", "upper and lower 123"},
		{"many     spaces   here", "many spaces here"},
		{"--punctuation!@#$%^&*()--", "punctuation"},
		{"   ", ""},
		{"日本語", ""},
		// Tabs and newlines are stripped by the character filter, never
		// converted to spaces
		{"a\tb", "ab"},
		{"a \t b", "a b"},
		{"line1\nline2", "line1line2"},
		// Only ASCII letters are case-folded; Unicode letters are dropped
		{"Ω Unicode Κ test", "unicode test"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {

	inputs := []string{
		"  Hello World!  ",
		"Café #1!",
		"",
		"a\tb\nc  d",
		"The QUICK brown-fox 42",
		"   spaced   out   ",
		"ünïcödé sôup",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

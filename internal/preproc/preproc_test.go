package preproc

import (
	"strings"
	"testing"
)

func TestNormalizeKeepsLineCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single line", "hello world"},
		{"blank lines", "a\n\n\nb"},
		{"trailing newline", "a\nb\n"},
		{"crlf", "a\r\nb\r\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			want := strings.Count(tt.input, "\n") + 1
			if len(got) != want {
				t.Fatalf("Normalize(%q) returned %d lines, want %d", tt.input, len(got), want)
			}
		})
	}
}

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims", "   padded \t", "padded"},
		{"collapses spaces", "a    b\t\tc", "a b c"},
		{"slashes become spaces", "// comment", "comment"},
		{"pipes become spaces", "a|b", "a b"},
		{"smart quotes", "“quoted”", "'quoted'"},
		{"dashes", "a—b", "a-b"},
		{"junk symbols removed", "a © b", "a b"},
		{"strips carriage return", "line\r", "line"},
		{"composes unicode", "é", "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if len(got) != 1 {
				t.Fatalf("expected one line, got %v", got)
			}
			if got[0] != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got[0], tt.want)
			}
		})
	}
}

func TestNormalizeBlackboxesURLs(t *testing.T) {
	a := Normalize("see https://example.com/license.txt for details")
	b := Normalize("see http://other.org/LICENSE for details")
	if a[0] != b[0] {
		t.Fatalf("expected URLs to normalize identically, got %q and %q", a[0], b[0])
	}
}

func TestAggressive(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases and strips punctuation", "Hello, World!", "hello world"},
		{"collapses lines", "one\ntwo\n\n\n\nthree", "one two three"},
		{"apostrophes vanish", "it's just a test", "its just a test"},
		{"first line copyright", "copyright 20xx me irl\n\nmy first license", "my first license"},
		{"copyright statement", "some text\n\ncopyright 2018 someone\n\nmore text", "some text more text"},
		{"copyright paragraph", "intro\n\ncopyright a\ncopyright b\n\nbody", "intro body"},
		{"copyright mid sentence kept", "first line\nkeep the above copyright notice", "first line keep the above copyright notice"},
		{"title line", "MIT License\n\npermission is hereby granted", "permission is hereby granted"},
		{"title line with version", "Some License version 2.0\n\nbody text", "body text"},
		{"unicode lowercase", "ÉCOLE", "école"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggressive(tt.input)
			if got != tt.want {
				t.Errorf("Aggressive(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAggressiveStripsCommentPrefix(t *testing.T) {
	input := strings.Join([]string{
		"dnl permission is granted",
		"dnl to use this software",
		"dnl without restriction",
		"dnl of any kind",
	}, "\n")
	plain := "permission is granted\nto use this software\nwithout restriction\nof any kind"

	if got, want := Aggressive(input), Aggressive(plain); got != want {
		t.Fatalf("comment prefix not stripped: got %q, want %q", got, want)
	}
}

func TestAggressiveKeepsRarePrefix(t *testing.T) {
	input := "the first line\nthe second line\nsomething else\nand another\nfinal words"
	got := removeCommonTokens(input)
	if got != input {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestNormalizeThenAggressive(t *testing.T) {
	sample := "copyright 20xx me irl\n\n //  my   first license"
	got := Aggressive(strings.Join(Normalize(sample), "\n"))
	if got != "my first license" {
		t.Fatalf("pipeline result = %q, want %q", got, "my first license")
	}
}

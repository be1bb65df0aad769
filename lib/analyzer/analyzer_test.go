package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/tisane-lang/tisane/lib/diag"
	"github.com/tisane-lang/tisane/lib/lexer"
	"github.com/tisane-lang/tisane/lib/parser"
)

func analyze(t *testing.T, lines ...string) error {
	t.Helper()
	source := strings.Join(lines, "\n")
	program, err := parser.Parse(lexer.New("", source))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	return Analyze(program)
}

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{
			"reference after declaration",
			[]string{"{", "let a = 1", "print a", "}"},
		},
		{
			"assignment on a later line",
			[]string{"{", "let a = 1", "a = 2", "}"},
		},
		{
			"reference from inner scope",
			[]string{"{", "let a = 1", "{", "print a", "}", "}"},
		},
		{
			"shadowing",
			[]string{"{", "let a = 1", "{", "let a = 2", "print a", "}", "print a", "}"},
		},
		{
			"input into declared variable",
			[]string{"{", "let a", "input a", "}"},
		},
		{
			"loop counter",
			[]string{"{", "let i = 0", "while i < 3 {", "i = i + 1", "}", "}"},
		},
		{
			"condition and branches",
			[]string{"{", "let a = 1", "if a == 1 {", "print a", "} else {", "print -a", "}", "}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := analyze(t, tt.lines...); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUndefinedReferences(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		line  int
	}{
		{
			"never declared",
			[]string{"{", "print a", "}"},
			2,
		},
		{
			"declared later",
			[]string{"{", "print a", "let a = 1", "}"},
			2,
		},
		{
			"self-referential initializer",
			[]string{"{", "let a = a", "}"},
			2,
		},
		{
			"same-line reference after declaration",
			[]string{"{", "let a = 1 + a", "}"},
			2,
		},
		{
			"assignment target not declared",
			[]string{"{", "a = 1", "}"},
			2,
		},
		{
			"input target not declared",
			[]string{"{", "input a", "}"},
			2,
		},
		{
			"inner declaration invisible outside",
			[]string{"{", "{", "let a = 1", "}", "print a", "}"},
			5,
		},
		{
			"sibling scopes do not leak",
			[]string{"{", "{", "let a = 1", "}", "{", "print a", "}", "}"},
			6,
		},
		{
			"deep in an expression",
			[]string{"{", "let a = 1", "print (a + 1) * b", "}"},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := analyze(t, tt.lines...)
			if err == nil {
				t.Fatalf("expected error, got none")
			}

			var semanticErr *diag.SemanticError
			if !errors.As(err, &semanticErr) {
				t.Fatalf("expected SemanticError, got %T", err)
			}
			if !strings.Contains(semanticErr.Msg, "is not defined") {
				t.Errorf("message = %q", semanticErr.Msg)
			}
			if semanticErr.Location.Start.Line != tt.line {
				t.Errorf("line = %d, want %d", semanticErr.Location.Start.Line, tt.line)
			}
		})
	}
}

// A same-line shadow does not hide an earlier-line outer declaration: the
// lookup keeps going outward when the innermost match fails the line check.
func TestShadowFallsBackToOuterScope(t *testing.T) {
	err := analyze(t, "{", "let a = 1", "{", "let a = 2 + a", "}", "}")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestErrorNamesTheIdentifier(t *testing.T) {
	err := analyze(t, "{", "print count", "}")
	if err == nil {
		t.Fatalf("expected error, got none")
	}

	var semanticErr *diag.SemanticError
	if !errors.As(err, &semanticErr) {
		t.Fatalf("expected SemanticError, got %T", err)
	}
	if semanticErr.Msg != "Identifier 'count' is not defined" {
		t.Errorf("message = %q", semanticErr.Msg)
	}
	if semanticErr.Location.Start.Column != 7 {
		t.Errorf("column = %d, want 7", semanticErr.Location.Start.Column)
	}
}

package diag_test

import (
	"errors"
	"fmt"
	"testing"

	"calc/internal/diag"
	"calc/internal/source"
)

func TestErrorMessages(t *testing.T) {
	sp := source.Span{Start: 1, End: 2}
	tests := []struct {
		err  *diag.Error
		want string
	}{
		{diag.InvalidToken("a", sp), "invalid token: a"},
		{diag.InvalidToken("1.2.3", sp), "invalid token: 1.2.3"},
		{diag.UnmatchedParens(sp), "unmatched parentheses"},
		{diag.DivideByZero(sp), "division by zero"},
		{diag.InvalidExpression("stack empty after evaluation", sp), "invalid expression: stack empty after evaluation"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorsIs(t *testing.T) {
	err := fmt.Errorf("line 3: %w", diag.DivideByZero(source.Span{Start: 2, End: 3}))
	if !errors.Is(err, diag.ErrDivideByZero) {
		t.Fatal("wrapped DivideByZero should match sentinel")
	}
	if errors.Is(err, diag.ErrInvalidExpression) {
		t.Fatal("DivideByZero must not match InvalidExpression")
	}
	if errors.Is(errors.New("boom"), diag.ErrInvalidToken) {
		t.Fatal("plain error must not match")
	}
}

func TestCodeOf(t *testing.T) {
	if got := diag.CodeOf(diag.UnmatchedParens(source.Span{})); got != diag.SynUnmatchedParens {
		t.Fatalf("CodeOf = %v", got)
	}
	if got := diag.CodeOf(errors.New("other")); got != diag.UnknownCode {
		t.Fatalf("CodeOf(other) = %v", got)
	}
	sp, ok := diag.SpanOf(fmt.Errorf("x: %w", diag.InvalidToken("$", source.Span{Start: 4, End: 5})))
	if !ok || sp.Start != 4 || sp.End != 5 {
		t.Fatalf("SpanOf = %v, %v", sp, ok)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[diag.Code]string{
		diag.LexInvalidToken:       "LEX1001",
		diag.SynUnmatchedParens:    "SYN2001",
		diag.EvalDivideByZero:      "EVL3001",
		diag.EvalInvalidExpression: "EVL3002",
		diag.UnknownCode:           "E0000",
	}
	for c, want := range tests {
		if got := c.ID(); got != want {
			t.Errorf("ID() = %q, want %q", got, want)
		}
	}
	if got := diag.EvalDivideByZero.String(); got != "[EVL3001]: Division by zero" {
		t.Errorf("String() = %q", got)
	}
}

func TestCodeKind(t *testing.T) {
	tests := map[diag.Code]string{
		diag.LexInvalidToken:       "InvalidToken",
		diag.SynUnmatchedParens:    "UnmatchedParens",
		diag.EvalDivideByZero:      "DivideByZero",
		diag.EvalInvalidExpression: "InvalidExpression",
		diag.UnknownCode:           "Unknown",
	}
	for c, want := range tests {
		if got := c.Kind(); got != want {
			t.Errorf("%d.Kind() = %q, want %q", c, got, want)
		}
	}
}

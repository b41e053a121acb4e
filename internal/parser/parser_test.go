package parser_test

import (
	"errors"
	"testing"

	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/parser"
	"calc/internal/token"
)

func mustTokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	return tokens
}

// rpn превращает выражение в постфиксную строку
func rpn(t *testing.T, input string) string {
	t.Helper()
	tokens := mustTokenize(t, input)
	if err := parser.ValidateParens(tokens); err != nil {
		t.Fatalf("ValidateParens(%q): %v", input, err)
	}
	postfix, err := parser.ToPostfix(tokens)
	if err != nil {
		t.Fatalf("ToPostfix(%q): %v", input, err)
	}
	return token.Join(postfix)
}

func TestValidateParens(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		start uint32
	}{
		{"", true, 0},
		{"1 + 2", true, 0},
		{"(1 + 2)", true, 0},
		{"((1) * (2 + (3)))", true, 0},
		{"()", true, 0},
		{"(2 + 3", false, 0},
		{"2 + 3)", false, 5},
		{")", false, 0},
		{")(", false, 0},
		{"1 + ((2)", false, 4},
		{"(1)) + (2", false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := parser.ValidateParens(mustTokenize(t, tt.input))
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, diag.ErrUnmatchedParens) {
				t.Fatalf("expected UnmatchedParens, got %v", err)
			}
			sp, _ := diag.SpanOf(err)
			if sp.Start != tt.start {
				t.Errorf("error span starts at %d, want %d", sp.Start, tt.start)
			}
		})
	}
}

func TestToPostfix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 + 3", "2 3 +"},
		{"2 + 3 * 4", "2 3 4 * +"},
		{"(2 + 3) * 4", "2 3 + 4 *"},
		{"10 - 4 - 3", "10 4 - 3 -"},
		{"8 / 4 / 2", "8 4 / 2 /"},
		{"2^3^2", "2 3 2 ^ ^"},
		{"(2^3)^2", "2 3 ^ 2 ^"},
		{"2 + 3 * (4 - 1)^2", "2 3 4 1 - 2 ^ * +"},
		{"-5", "5 -"},
		{"-(-4)", "4 - -"},
		{"-2^3", "2 3 ^ -"},
		{"-2 + 3", "2 - 3 +"},
		{"2^-1", "2 1 - ^"},
		{"2 * -3^2", "2 3 2 ^ - *"},
		{"1 - -1", "1 1 - -"},
		{"3 + 4 * 2 / (1 - 5)^2^3", "3 4 2 * 1 5 - 2 3 ^ ^ / +"},
		{"", ""},
		{"()", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := rpn(t, tt.input); got != tt.want {
				t.Errorf("ToPostfix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToPostfix_Kinds(t *testing.T) {
	postfix, err := parser.ToPostfix(mustTokenize(t, "-(1 - 2)"))
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Kind{token.Number, token.Number, token.Minus, token.UnaryMinus}
	if len(postfix) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(postfix), len(want))
	}
	for i, k := range want {
		if postfix[i].Kind != k {
			t.Errorf("token %d: %v, want %v", i, postfix[i].Kind, k)
		}
	}
}

func TestToPostfix_NoParensInOutput(t *testing.T) {
	for _, in := range []string{"((1))", "(1 + (2 * (3 - 4)))", "-((-(2)))"} {
		postfix, err := parser.ToPostfix(mustTokenize(t, in))
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		for _, tok := range postfix {
			if tok.Kind == token.LParen || tok.Kind == token.RParen {
				t.Fatalf("%q: parenthesis in postfix output %s", in, token.Join(postfix))
			}
		}
	}
}

func TestToPostfix_Unbalanced(t *testing.T) {
	for _, in := range []string{"(1 + 2", "1 + 2)", ")", "(()"} {
		_, err := parser.ToPostfix(mustTokenize(t, in))
		if !errors.Is(err, diag.ErrUnmatchedParens) {
			t.Errorf("ToPostfix(%q): expected UnmatchedParens, got %v", in, err)
		}
	}
}

func TestToPostfix_RejectsInvalidKinds(t *testing.T) {
	tokens := []token.Token{
		{Kind: token.Number, Value: 1},
		{Kind: token.Invalid, Text: "?"},
	}
	_, err := parser.ToPostfix(tokens)
	if !errors.Is(err, diag.ErrInvalidToken) {
		t.Fatalf("expected InvalidToken, got %v", err)
	}
}

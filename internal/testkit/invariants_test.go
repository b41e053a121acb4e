package testkit

import (
	"strings"
	"testing"

	"calc/internal/lexer"
	"calc/internal/parser"
	"calc/internal/source"
	"calc/internal/token"
)

func TestCheckTokenSpansAccepts(t *testing.T) {
	for _, input := range []string{"", "1", " 2 + 3 * 4 ", "-(-4.5)^2", "10 / (2 - 7)"} {
		tokens, err := lexer.Tokenize(input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if err := CheckTokenSpans(input, tokens); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}

func TestCheckTokenSpansRejects(t *testing.T) {
	input := "1 + 2"
	tests := []struct {
		name   string
		tokens []token.Token
		want   string
	}{
		{
			name:   "empty span",
			tokens: []token.Token{token.NewNumber(1, "1", source.Span{Start: 0, End: 0})},
			want:   "empty span",
		},
		{
			name:   "beyond input",
			tokens: []token.Token{token.NewNumber(2, "2", source.Span{Start: 4, End: 9})},
			want:   "beyond input",
		},
		{
			name: "overlap",
			tokens: []token.Token{
				token.NewNumber(1, "1 +", source.Span{Start: 0, End: 3}),
				token.New(token.Plus, source.Span{Start: 2, End: 3}),
			},
			want: "overlaps",
		},
		{
			name:   "text mismatch",
			tokens: []token.Token{token.New(token.Minus, source.Span{Start: 2, End: 3})},
			want:   "input under span",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTokenSpans(input, tt.tokens)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCheckPostfix(t *testing.T) {
	for _, input := range []string{"1", "2 + 3 * 4", "-(2 ^ -3) / (1 - 5)", "((7))"} {
		tokens, err := lexer.Tokenize(input)
		if err != nil {
			t.Fatal(err)
		}
		postfix, err := parser.ToPostfix(tokens)
		if err != nil {
			t.Fatal(err)
		}
		if err := CheckPostfix(tokens, postfix); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}

	for _, input := range []string{"1 +", "1 2", "*"} {
		tokens, _ := lexer.Tokenize(input)
		postfix, err := parser.ToPostfix(tokens)
		if err != nil {
			t.Fatal(err)
		}
		if err := CheckPostfix(tokens, postfix); err == nil {
			t.Errorf("%q: expected an invariant violation", input)
		}
	}
}

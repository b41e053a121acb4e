package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/token"
)

func num(v float64) token.Token { return token.Token{Kind: token.Number, Value: v} }
func op(k token.Kind) token.Token { return token.Token{Kind: k} }

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%s)", tok.Kind, tok.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность токенов (вид и значение)
func expectTokens(t *testing.T, input string, expected []token.Token) {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): unexpected error %v", input, err)
	}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %s",
			len(expected), len(tokens), input, tokensToString(tokens))
	}
	for i, tok := range tokens {
		if !tok.Equal(expected[i]) {
			t.Errorf("Token %d: expected %v, got %v (input %q)",
				i, tokensToString(expected[i:i+1]), tokensToString(tokens[i:i+1]), input)
		}
	}
}

// expectInvalid проверяет, что вход отклоняется с InvalidToken(text)
func expectInvalid(t *testing.T, input, text string) {
	t.Helper()
	_, err := lexer.Tokenize(input)
	if !errors.Is(err, diag.ErrInvalidToken) {
		t.Fatalf("Tokenize(%q): expected InvalidToken, got %v", input, err)
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("Tokenize(%q): error is not *diag.Error", input)
	}
	if de.Text != text {
		t.Errorf("Tokenize(%q): offending text %q, want %q", input, de.Text, text)
	}
}

func TestTokenize_Simple(t *testing.T) {
	expectTokens(t, "2 + 3", []token.Token{num(2), op(token.Plus), num(3)})
}

func TestTokenize_Complex(t *testing.T) {
	expectTokens(t, "12.5 - 4.2 * (3 / 7)", []token.Token{
		num(12.5), op(token.Minus), num(4.2), op(token.Multiply),
		op(token.LParen), num(3), op(token.Divide), num(7), op(token.RParen),
	})
}

func TestTokenize_Whitespace(t *testing.T) {
	expectTokens(t, "  2 \t +\n  3  ", []token.Token{num(2), op(token.Plus), num(3)})
	expectTokens(t, "2 + 3", []token.Token{num(2), op(token.Plus), num(3)})
}

func TestTokenize_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		tokens, err := lexer.Tokenize(in)
		if err != nil {
			t.Fatalf("Tokenize(%q): unexpected error %v", in, err)
		}
		if len(tokens) != 0 {
			t.Fatalf("Tokenize(%q): expected no tokens, got %s", in, tokensToString(tokens))
		}
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		value float64
	}{
		{"42", 42},
		{".5", 0.5},
		{"5.", 5},
		{"0", 0},
		{"007", 7},
		{"1234567890.1234567890", 1234567890.1234567890},
		{"1234567890", 1234567890},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, []token.Token{num(tt.value)})
		})
	}
}

func TestTokenize_Operators(t *testing.T) {
	expectTokens(t, "1+-*/^()", []token.Token{
		num(1), op(token.Plus), op(token.UnaryMinus), op(token.Multiply),
		op(token.Divide), op(token.Power), op(token.LParen), op(token.RParen),
	})
	expectTokens(t, "()", []token.Token{op(token.LParen), op(token.RParen)})
	expectTokens(t, "+", []token.Token{op(token.Plus)})
}

func TestTokenize_UnaryMinus(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Token
	}{
		{"-5", []token.Token{op(token.UnaryMinus), num(5)}},
		{"2 - 3", []token.Token{num(2), op(token.Minus), num(3)}},
		{"2 - -3", []token.Token{num(2), op(token.Minus), op(token.UnaryMinus), num(3)}},
		{"-(-4)", []token.Token{op(token.UnaryMinus), op(token.LParen), op(token.UnaryMinus), num(4), op(token.RParen)}},
		{"(1) - 2", []token.Token{op(token.LParen), num(1), op(token.RParen), op(token.Minus), num(2)}},
		{"2^-1", []token.Token{num(2), op(token.Power), op(token.UnaryMinus), num(1)}},
		{"--1", []token.Token{op(token.UnaryMinus), op(token.UnaryMinus), num(1)}},
		{"1 + -2 * (3 / 4)", []token.Token{
			num(1), op(token.Plus), op(token.UnaryMinus), num(2), op(token.Multiply),
			op(token.LParen), num(3), op(token.Divide), num(4), op(token.RParen),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, tt.expected)
		})
	}
}

func TestTokenize_Invalid(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"abc", "a"},
		{"2 + a", "a"},
		{"2 + .", "."},
		{"1.2.3", "1.2.3"},
		{"1a2", "a"},
		{"1e10", "e"},
		{"1E10", "E"},
		{"2 % 3", "%"},
		{"λ", "λ"},
		{"3 ** 2 $", "$"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectInvalid(t, tt.input, tt.text)
		})
	}
}

func TestTokenize_Overflow(t *testing.T) {
	huge := "1" + strings.Repeat("0", 400)
	expectInvalid(t, huge, huge)
}

func TestTokenize_Spans(t *testing.T) {
	tokens, err := lexer.Tokenize(" 12 +(3.5)")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		start, end uint32
		text       string
	}{
		{1, 3, "12"}, {4, 5, "+"}, {5, 6, "("}, {6, 9, "3.5"}, {9, 10, ")"},
	}
	for i, w := range want {
		sp := tokens[i].Span
		if sp.Start != w.start || sp.End != w.end || tokens[i].Text != w.text {
			t.Errorf("token %d: span %v text %q, want %d-%d %q", i, sp, tokens[i].Text, w.start, w.end, w.text)
		}
	}
}

func TestTokenize_ErrorSpan(t *testing.T) {
	_, err := lexer.Tokenize("1 + 2 # 3")
	sp, ok := diag.SpanOf(err)
	if !ok {
		t.Fatalf("expected diag error, got %v", err)
	}
	if sp.Start != 6 || sp.End != 7 {
		t.Fatalf("error span %v, want 6-7", sp)
	}
}

func TestNext_EOFIsSticky(t *testing.T) {
	lx := lexer.New("7")
	if tok, err := lx.Next(); err != nil || tok.Kind != token.Number {
		t.Fatalf("first token: %v %v", tok.Kind, err)
	}
	for range 3 {
		tok, err := lx.Next()
		if err != nil || tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v %v", tok.Kind, err)
		}
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"2 + 3 * 4",
		"-(-4)",
		"2^3^2",
		"  12.50-.5 ",
		"1234567890.1234567890 / 3",
		"((1+2)*-3)^-0.5",
		"1 2 + 2",
		"0.000001 - 5.",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := lexer.Tokenize(in)
			if err != nil {
				t.Fatal(err)
			}
			expectTokens(t, token.Join(first), first)
		})
	}
}

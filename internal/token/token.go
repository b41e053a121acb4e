package token

import (
	"strconv"
	"strings"

	"calc/internal/source"
)

// Token represents a single expression token with its location.
type Token struct {
	Kind  Kind
	Value float64 // only for Number
	Text  string
	Span  source.Span
}

// NewNumber builds a Number token.
func NewNumber(v float64, text string, sp source.Span) Token {
	return Token{Kind: Number, Value: v, Text: text, Span: sp}
}

// New builds an operator or parenthesis token.
func New(k Kind, sp source.Span) Token {
	return Token{Kind: k, Text: k.Symbol(), Span: sp}
}

// Equal compares kind and value, ignoring spelling and position.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == Number {
		return t.Value == o.Value
	}
	return true
}

// String returns the canonical spelling of the token. Numbers never use
// exponent notation, so the result can always be tokenized again.
func (t Token) String() string {
	if t.Kind == Number {
		return FormatNumber(t.Value)
	}
	if s := t.Kind.Symbol(); s != "" {
		return s
	}
	return t.Text
}

// FormatNumber renders v in plain decimal notation.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Join renders tokens separated by single spaces.
func Join(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.String())
	}
	return sb.String()
}

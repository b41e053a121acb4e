package lexer

import (
	"unicode"

	"calc/internal/source"
	"calc/internal/token"
)

// Lexer scans an expression one token at a time.
type Lexer struct {
	cursor Cursor
	prev   token.Kind // Invalid до первого токена
}

func New(src string) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		prev:   token.Invalid,
	}
}

// Next возвращает следующий токен. После конца ввода всегда возвращает EOF.
// Ошибки имеют тип *diag.Error с кодом LexInvalidToken.
func (lx *Lexer) Next() (token.Token, error) {
	lx.skipSpace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}, nil
	}

	var (
		tok token.Token
		err error
	)
	ch := lx.cursor.Peek()
	switch {
	case isNumberByte(ch):
		tok, err = lx.scanNumber()
	default:
		tok, err = lx.scanOperatorOrParen()
	}
	if err != nil {
		return tok, err
	}

	lx.prev = tok.Kind
	return tok, nil
}

// Tokenize scans the whole input. Empty or blank input yields an empty
// slice and no error.
func Tokenize(input string) ([]token.Token, error) {
	lx := New(input)
	tokens := make([]token.Token, 0, len(input)/2+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.PeekRune()
		if !unicode.IsSpace(r) {
			return
		}
		lx.cursor.BumpRune()
	}
}

// unaryContext reports whether a '-' at the cursor negates the next operand:
// at the start of input, after an operator or after '('.
func (lx *Lexer) unaryContext() bool {
	return lx.prev == token.Invalid || lx.prev.IsOperator() || lx.prev == token.LParen
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{Start: lx.cursor.Off, End: lx.cursor.Off}
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isNumberByte(b byte) bool { return isDec(b) || b == '.' }

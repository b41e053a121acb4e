package lexer

import (
	"calc/internal/diag"
	"calc/internal/token"
)

// Все операторы односимвольные; '-' становится UnaryMinus по контексту.
func (lx *Lexer) scanOperatorOrParen() (token.Token, error) {
	start := lx.cursor.Mark()
	unary := lx.unaryContext()
	emit := func(k token.Kind) (token.Token, error) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.cursor.Src[sp.Start:sp.End]}, nil
	}

	switch lx.cursor.BumpRune() {
	case '+':
		return emit(token.Plus)
	case '-':
		if unary {
			return emit(token.UnaryMinus)
		}
		return emit(token.Minus)
	case '*':
		return emit(token.Multiply)
	case '/':
		return emit(token.Divide)
	case '^':
		return emit(token.Power)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	default:
		// неизвестный символ
		sp := lx.cursor.SpanFrom(start)
		text := lx.cursor.Src[sp.Start:sp.End]
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}, diag.InvalidToken(text, sp)
	}
}

package lexer

import (
	"math"
	"strconv"

	"calc/internal/diag"
	"calc/internal/token"
)

// Число: подряд идущие цифры и точки. Буфер сбрасывается на первом другом
// символе и разбирается целиком, поэтому "1.2.3" и "." это одна ошибка,
// а "1e5" даёт число 1 и ошибку на 'e'.
func (lx *Lexer) scanNumber() (token.Token, error) {
	start := lx.cursor.Mark()
	for isNumberByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Src[sp.Start:sp.End]

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}, diag.InvalidToken(text, sp)
	}
	return token.NewNumber(v, text, sp), nil
}

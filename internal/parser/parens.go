package parser

import (
	"calc/internal/diag"
	"calc/internal/token"
)

// ValidateParens checks that every ')' closes an earlier '(' and that no
// '(' is left open. The error span points at the first unmatched ')', or at
// the outermost '(' that is still open at the end of input.
func ValidateParens(tokens []token.Token) error {
	open := make([]int, 0, 8) // индексы незакрытых '('
	for i, tok := range tokens {
		switch tok.Kind {
		case token.LParen:
			open = append(open, i)
		case token.RParen:
			if len(open) == 0 {
				return diag.UnmatchedParens(tok.Span)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return diag.UnmatchedParens(tokens[open[0]].Span)
	}
	return nil
}

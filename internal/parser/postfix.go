package parser

import (
	"calc/internal/diag"
	"calc/internal/token"
)

// ToPostfix reorders tokens into postfix order. Unbalanced parentheses fail
// with UnmatchedParens even when ValidateParens was skipped.
func ToPostfix(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	ops := make([]token.Token, 0, 8)

	for _, tok := range tokens {
		switch {
		case tok.Kind == token.Number:
			out = append(out, tok)

		case tok.Kind.IsPrefix():
			ops = append(ops, tok)

		case tok.Kind == token.RParen:
			closed := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == token.LParen {
					closed = true
					break
				}
				out = append(out, top)
			}
			if !closed {
				return nil, diag.UnmatchedParens(tok.Span)
			}

		case tok.Kind.IsBinary():
			for len(ops) > 0 && shouldPop(ops[len(ops)-1].Kind, tok.Kind) {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)

		default:
			return nil, diag.InvalidToken(tok.Text, tok.Span)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == token.LParen {
			return nil, diag.UnmatchedParens(top.Span)
		}
		out = append(out, top)
	}
	return out, nil
}

// shouldPop reports whether top must leave the stack before incoming is
// pushed.
func shouldPop(top, incoming token.Kind) bool {
	if top == token.LParen {
		return false
	}
	if incoming.RightAssoc() {
		return top.Precedence() > incoming.Precedence()
	}
	return top.Precedence() >= incoming.Precedence()
}

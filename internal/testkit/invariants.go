// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"calc/internal/token"
)

// CheckTokenSpans runs a minimal set of span invariants on a token stream:
// 1) every span is non-empty and within the input bounds
// 2) spans are strictly increasing and do not overlap
// 3) the text of each token is exactly the input under its span
// 4) number tokens carry finite values
func CheckTokenSpans(input string, tokens []token.Token) error {
	lenInput, err := safecast.Conv[uint32](len(input))
	if err != nil {
		return fmt.Errorf("len input overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d (%s): empty span %v", i, tok.Kind, sp)
		}
		if sp.End > lenInput {
			return fmt.Errorf("token %d (%s): span end beyond input: %d > %d", i, tok.Kind, sp.End, lenInput)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("token %d (%s): span %v overlaps previous end %d", i, tok.Kind, sp, prevEnd)
		}
		prevEnd = sp.End

		if got := sp.Text(input); got != tok.Text {
			return fmt.Errorf("token %d (%s): text %q, input under span is %q", i, tok.Kind, tok.Text, got)
		}
		if tok.Kind == token.Number && (math.IsInf(tok.Value, 0) || math.IsNaN(tok.Value)) {
			return fmt.Errorf("token %d: non-finite number %v", i, tok.Value)
		}
	}
	return nil
}

// CheckPostfix runs invariants on a postfix sequence produced from tokens:
// 1) it holds no parentheses
// 2) it is a permutation of the non-parenthesis input tokens
// 3) simulating the stack never underflows and leaves exactly one value
func CheckPostfix(tokens, postfix []token.Token) error {
	want := 0
	for _, tok := range tokens {
		if tok.Kind != token.LParen && tok.Kind != token.RParen {
			want++
		}
	}
	if len(postfix) != want {
		return fmt.Errorf("postfix has %d tokens, want %d", len(postfix), want)
	}

	depth := 0
	for i, tok := range postfix {
		switch {
		case tok.Kind == token.LParen || tok.Kind == token.RParen:
			return fmt.Errorf("postfix token %d is a parenthesis", i)
		case tok.Kind == token.Number:
			depth++
		case tok.Kind == token.UnaryMinus:
			if depth < 1 {
				return fmt.Errorf("postfix token %d: unary minus on empty stack", i)
			}
		case tok.Kind.IsBinary():
			if depth < 2 {
				return fmt.Errorf("postfix token %d: %s needs two operands, have %d", i, tok.Kind, depth)
			}
			depth--
		default:
			return fmt.Errorf("postfix token %d: unexpected kind %s", i, tok.Kind)
		}
	}
	if depth != 1 {
		return fmt.Errorf("postfix leaves %d values on the stack", depth)
	}
	return nil
}

package vm

import (
	"fmt"
	"math"

	"calc/internal/diag"
	"calc/internal/source"
	"calc/internal/token"
)

// Evaluate runs a postfix sequence and returns the single value it leaves
// on the stack.
func Evaluate(postfix []token.Token) (float64, error) {
	st := newStack(len(postfix))

	for _, tok := range postfix {
		switch {
		case tok.Kind == token.Number:
			st.push(tok.Value, tok.Span)

		case tok.Kind == token.UnaryMinus:
			v, sp, ok := st.pop()
			if !ok {
				return 0, diag.InvalidExpression("unary minus requires one operand", tok.Span)
			}
			st.push(-v, tok.Span.Cover(sp))

		case tok.Kind.IsBinary():
			if st.len() < 2 {
				return 0, diag.InvalidExpression(
					fmt.Sprintf("insufficient operands for operation '%s'", tok.Kind), tok.Span)
			}
			b, bsp, _ := st.pop()
			a, asp, _ := st.pop()
			v, err := applyBinary(tok, a, b)
			if err != nil {
				return 0, err
			}
			st.push(v, asp.Cover(bsp).Cover(tok.Span))

		case tok.Kind == token.LParen, tok.Kind == token.RParen:
			return 0, diag.InvalidExpression("unexpected parenthesis in postfix sequence", tok.Span)

		default:
			return 0, diag.InvalidExpression(fmt.Sprintf("unexpected token '%s'", tok.Kind), tok.Span)
		}
	}

	switch st.len() {
	case 0:
		return 0, diag.InvalidExpression("stack empty after evaluation", source.Span{})
	case 1:
		v, _, _ := st.pop()
		return v, nil
	default:
		return 0, diag.InvalidExpression("extra values remained on the stack", st.spans[1])
	}
}

// applyBinary применяет бинарный оператор; a левый операнд
func applyBinary(op token.Token, a, b float64) (float64, error) {
	switch op.Kind {
	case token.Plus:
		return a + b, nil
	case token.Minus:
		return a - b, nil
	case token.Multiply:
		return a * b, nil
	case token.Divide:
		if b == 0 {
			return 0, diag.DivideByZero(op.Span)
		}
		return a / b, nil
	case token.Power:
		// 0^-n даёт +Inf, как и math.Pow
		return math.Pow(a, b), nil
	default:
		return 0, diag.InvalidExpression(fmt.Sprintf("unexpected token '%s'", op.Kind), op.Span)
	}
}

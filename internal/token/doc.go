// Package token defines the lexical tokens of calc expressions.
// Invariants:
//   - The Kind set is closed; every stage switches over it exhaustively.
//   - A Number token always carries a finite Value.
//   - Token.Text is the slice of the input the token was scanned from.
//   - Minus and UnaryMinus are told apart by the lexer; later stages never
//     re-derive unary-ness.
//   - LParen/RParen never appear in a postfix sequence.
package token

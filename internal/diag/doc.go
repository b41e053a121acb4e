// Package diag defines the error model shared by all pipeline stages.
//
// Every failure produced by the lexer, the parser or the evaluator is a
// *Error carrying a Code, the span of the offending input and a short
// payload (the bad token text or the evaluator's detail message).
//
// There are exactly four codes, one per error kind:
//
//   - LexInvalidToken – unrecognised character or malformed number.
//   - SynUnmatchedParens – parentheses do not balance.
//   - EvalDivideByZero – division with a zero right-hand operand.
//   - EvalInvalidExpression – wrong operand arity or leftover stack values,
//     detected while evaluating postfix.
//
// All errors are terminal: a stage returns the first one and the pipeline
// hands it to the caller unchanged. Callers classify errors with errors.Is
// against the sentinels (ErrInvalidToken, ...) or with CodeOf.
//
// Package diag does not render anything; see internal/diagfmt.
package diag

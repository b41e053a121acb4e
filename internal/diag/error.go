package diag

import (
	"errors"

	"calc/internal/source"
)

// Error is a classified pipeline failure.
type Error struct {
	Code   Code
	Span   source.Span
	Text   string // offending input for LexInvalidToken
	Detail string // explanation for EvalInvalidExpression
}

// Sentinels for errors.Is. Only the Code is compared.
var (
	ErrInvalidToken      = &Error{Code: LexInvalidToken}
	ErrUnmatchedParens   = &Error{Code: SynUnmatchedParens}
	ErrDivideByZero      = &Error{Code: EvalDivideByZero}
	ErrInvalidExpression = &Error{Code: EvalInvalidExpression}
)

func InvalidToken(text string, sp source.Span) *Error {
	return &Error{Code: LexInvalidToken, Span: sp, Text: text}
}

func UnmatchedParens(sp source.Span) *Error {
	return &Error{Code: SynUnmatchedParens, Span: sp}
}

func DivideByZero(sp source.Span) *Error {
	return &Error{Code: EvalDivideByZero, Span: sp}
}

func InvalidExpression(detail string, sp source.Span) *Error {
	return &Error{Code: EvalInvalidExpression, Span: sp, Detail: detail}
}

func (e *Error) Error() string {
	switch e.Code {
	case LexInvalidToken:
		return "invalid token: " + e.Text
	case SynUnmatchedParens:
		return "unmatched parentheses"
	case EvalDivideByZero:
		return "division by zero"
	case EvalInvalidExpression:
		return "invalid expression: " + e.Detail
	}
	return e.Code.Title()
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the Code of the first *Error in err's chain, or
// UnknownCode.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return UnknownCode
}

// SpanOf returns the span of the first *Error in err's chain.
func SpanOf(err error) (source.Span, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Span, true
	}
	return source.Span{}, false
}

package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexInvalidToken Code = 1001
	// Синтаксические
	SynUnmatchedParens Code = 2001
	// Ошибки вычисления
	EvalDivideByZero      Code = 3001
	EvalInvalidExpression Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInvalidToken:       "Invalid token",
	SynUnmatchedParens:    "Unmatched parentheses",
	EvalDivideByZero:      "Division by zero",
	EvalInvalidExpression: "Invalid expression",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EVL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Kind returns the error kind name used in machine-readable output.
func (c Code) Kind() string {
	switch c {
	case LexInvalidToken:
		return "InvalidToken"
	case SynUnmatchedParens:
		return "UnmatchedParens"
	case EvalDivideByZero:
		return "DivideByZero"
	case EvalInvalidExpression:
		return "InvalidExpression"
	}
	return "Unknown"
}

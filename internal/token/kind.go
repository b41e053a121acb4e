package token

// Kind represents the category of an expression token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the input. Tokenize never returns it.
	EOF

	// Number represents a numeric literal.
	Number
	// Plus represents binary addition.
	Plus // +
	// Minus represents binary subtraction.
	Minus // -
	// Multiply represents multiplication.
	Multiply // *
	// Divide represents division.
	Divide // /
	// Power represents exponentiation.
	Power // ^
	// UnaryMinus represents negation of the following operand.
	UnaryMinus // -
	// LParen represents the left parenthesis.
	LParen // (
	// RParen represents the right parenthesis.
	RParen // )
)

// Уровни приоритета, от слабого к сильному.
const (
	PrecStructural = 1 // числа и скобки
	PrecAdditive   = 2 // + -
	PrecMultiplic  = 3 // * /
	PrecPower      = 4 // ^ и унарный минус
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Number:
		return "Number"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Multiply:
		return "Multiply"
	case Divide:
		return "Divide"
	case Power:
		return "Power"
	case UnaryMinus:
		return "UnaryMinus"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	}
	return "Kind(?)"
}

// Symbol returns the source spelling of an operator or parenthesis,
// or an empty string for the remaining kinds.
func (k Kind) Symbol() string {
	switch k {
	case Plus:
		return "+"
	case Minus, UnaryMinus:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Power:
		return "^"
	case LParen:
		return "("
	case RParen:
		return ")"
	default:
		return ""
	}
}

// Precedence returns the binding rank of the kind.
func (k Kind) Precedence() int {
	switch k {
	case Plus, Minus:
		return PrecAdditive
	case Multiply, Divide:
		return PrecMultiplic
	case Power, UnaryMinus:
		return PrecPower
	default:
		return PrecStructural
	}
}

// RightAssoc reports whether operators of this kind group right to left.
func (k Kind) RightAssoc() bool {
	return k == Power || k == UnaryMinus
}

// IsBinary reports whether the kind is a two-operand operator.
func (k Kind) IsBinary() bool {
	switch k {
	case Plus, Minus, Multiply, Divide, Power:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the kind is a binary or unary operator.
func (k Kind) IsOperator() bool {
	return k.IsBinary() || k == UnaryMinus
}

// IsPrefix reports whether the kind opens a prefix context: it is pushed
// onto the operator stack without popping anything.
func (k Kind) IsPrefix() bool {
	return k == LParen || k == UnaryMinus
}

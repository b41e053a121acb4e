// Package parser checks parenthesis balance and reorders infix tokens into
// postfix (reverse Polish) order.
//
// ToPostfix uses the shunting-yard algorithm. Binary operators pop the
// operator stack while the top binds at least as tightly (strictly more
// tightly for right-associative '^'). Prefix operators, '(' and unary minus,
// are pushed without popping anything. Parentheses never appear in the
// output.
package parser

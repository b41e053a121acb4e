// Package vm evaluates postfix token sequences on a value stack.
package vm

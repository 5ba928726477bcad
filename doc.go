// Package calc implements a calculator language with variable and function
// definitions.
//
// A statement is either an expression such as "2 + 3 * 4" or a definition.
// "x = 5" binds a variable to the value of its expression, and
// "f(x, y) = x * y + 1" defines a function whose body is evaluated on each
// call. Definitions live in a Session until it is cleared:
//
//	s := calc.NewSession()
//	s.Evaluate("f(x) = x ^ 2")
//	r, err := s.Evaluate("f(3) + 1") // r.Value == 10
//
// Exponentiation is right associative, so "2 ^ 3 ^ 2" is 512. The other
// binary operators associate to the left. Unary minus applies to a single
// factor, so "-2 ^ 2" is 4. Functions cannot call themselves, directly or
// through other functions.
//
// By default, numbers are float64. Sessions created with Prec above 53 bits
// compute with arbitrary precision instead.
//
// The grammar is built from the parser combinators in package parsec.
package calc

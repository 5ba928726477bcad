// Package parsec implements parser combinators over immutable streams.
//
// A Parser is a plain function from a Stream to a Result. Parsers are values:
// they can be stored, combined, and reused. Failures are results, never
// panics, and every failure carries the position where a match was attempted.
//
// Alternation does not backtrack on its own. Character primitives consume the
// character they reject, so p.Or(q) runs q from wherever p stopped. To try q
// from the original input, wrap p with Rollback:
//
//	Str("abc").Rollback().Or(func() Parser[rune, string] { return Str("xyz") })
package parsec

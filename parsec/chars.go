package parsec

import (
	"fmt"
	"strconv"
	"strings"
)

// Success creates a parser that consumes nothing and produces v.
func Success[S, T any](v T) Parser[S, T] {
	return func(s Stream[S]) Result[S, T] {
		return Ok(s, v)
	}
}

// Fails creates a parser that consumes nothing and fails with msg.
func Fails[S, T any](msg string) Parser[S, T] {
	return func(s Stream[S]) Result[S, T] {
		return Fail[S, T](s, &Error{Msg: msg, Pos: s.Position()})
	}
}

// EOF creates a parser that succeeds only at the end of the stream. If the
// stream implements fmt.Stringer, the failure message quotes the remainder.
func EOF[S any]() Parser[S, struct{}] {
	return func(s Stream[S]) Result[S, struct{}] {
		h, ok := s.Head()
		if !ok {
			return Ok(s, struct{}{})
		}
		found := fmt.Sprint(h)
		if r, ok := s.(fmt.Stringer); ok {
			found = strconv.Quote(r.String())
		}
		return Fail[S, struct{}](s, &Error{
			Msg: "expected end of input but " + found + " was found",
			Pos: s.Position(),
		})
	}
}

// Satisfy parses one character for which pred is true. On a mismatch, the
// failure consumes the character; expect names what was wanted.
func Satisfy(pred func(rune) bool, expect string) Parser[rune, rune] {
	return func(s Stream[rune]) Result[rune, rune] {
		c, ok := s.Head()
		if !ok {
			return Fail[rune, rune](s, &Error{Msg: "end of stream: " + expect, Pos: s.Position()})
		}
		if !pred(c) {
			return Fail[rune, rune](s.Tail(), &Error{
				Msg: "expected " + expect + " but " + string(c) + " was found",
				Pos: s.Position(),
			})
		}
		return Ok(s.Tail(), c)
	}
}

// Char parses exactly c.
func Char(c rune) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return r == c }, string(c))
}

// OneOf parses any character in set.
func OneOf(set string) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return strings.ContainsRune(set, r) }, "one of "+set)
}

// NoneOf parses any character not in set.
func NoneOf(set string) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return !strings.ContainsRune(set, r) }, "none of "+set)
}

// Alphabet parses an ASCII letter.
func Alphabet() Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' }, "alphabet")
}

// Digit parses an ASCII digit.
func Digit() Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return '0' <= r && r <= '9' }, "digit")
}

// AlphaNum parses an ASCII letter or digit.
func AlphaNum() Parser[rune, rune] {
	return Alphabet().Rollback().Or(Digit)
}

// Space parses a space or tab.
func Space() Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return r == ' ' || r == '\t' }, "space")
}

// Spaces parses zero or more spaces and tabs.
func Spaces() Parser[rune, string] {
	return ManyStr(Space())
}

// AnyChar parses any single character.
func AnyChar() Parser[rune, rune] {
	return Satisfy(func(rune) bool { return true }, "any char")
}

// Str parses the characters of lit in order. It does not roll back by itself;
// a failure is left wherever the mismatch occurred and its message is prefixed
// with lit.
func Str(lit string) Parser[rune, string] {
	p := Parser[rune, string](func(s Stream[rune]) Result[rune, string] {
		cur := s
		for _, c := range lit {
			r := Char(c)(cur)
			if !r.OK() {
				return Fail[rune, string](r.Rest, r.Err)
			}
			cur = r.Rest
		}
		return Ok(cur, lit)
	})
	return p.OnFailure(func(err *Error) *Error {
		return &Error{Msg: lit + ": " + err.Msg, Pos: err.Pos}
	})
}

package parsec

// Error is a parse failure at a position.
type Error struct {
	// Msg describes what was expected and what was found.
	Msg string
	// Pos is where the failing match was attempted.
	Pos Position
}

func (err *Error) Error() string {
	return err.Pos.String() + ": " + err.Msg
}

// Result is the outcome of running a parser. Exactly one of Value and Err is
// meaningful: Err is nil on success.
type Result[S, T any] struct {
	// Rest is the stream after the parse. On failure, it is wherever the
	// parser stopped unless the parser was rolled back.
	Rest  Stream[S]
	Value T
	Err   *Error
}

// Ok creates a successful result.
func Ok[S, T any](rest Stream[S], v T) Result[S, T] {
	return Result[S, T]{Rest: rest, Value: v}
}

// Fail creates a failed result.
func Fail[S, T any](rest Stream[S], err *Error) Result[S, T] {
	return Result[S, T]{Rest: rest, Err: err}
}

// OK returns whether the parse succeeded.
func (r Result[S, T]) OK() bool {
	return r.Err == nil
}

// Parser parses a value of type T from a stream of S.
type Parser[S, T any] func(Stream[S]) Result[S, T]

// Parse runs the parser.
func (p Parser[S, T]) Parse(s Stream[S]) Result[S, T] {
	return p(s)
}

// Or tries p and, if it fails, the parser produced by alt. alt runs on the
// stream where p's failure left off; that is the original stream only if p
// was rolled back.
func (p Parser[S, T]) Or(alt func() Parser[S, T]) Parser[S, T] {
	return func(s Stream[S]) Result[S, T] {
		r := p(s)
		if r.OK() {
			return r
		}
		return alt()(r.Rest)
	}
}

// Rollback makes p's failures non-consuming: a failed result carries the
// stream p started from. The error keeps the position where p failed.
func (p Parser[S, T]) Rollback() Parser[S, T] {
	return func(s Stream[S]) Result[S, T] {
		r := p(s)
		if r.OK() {
			return r
		}
		return Fail[S, T](s, r.Err)
	}
}

// OnFailure rewrites the error of a failed parse. Successful results and the
// failure's stream are untouched.
func (p Parser[S, T]) OnFailure(f func(*Error) *Error) Parser[S, T] {
	return func(s Stream[S]) Result[S, T] {
		r := p(s)
		if r.OK() {
			return r
		}
		return Fail[S, T](r.Rest, f(r.Err))
	}
}

// Map transforms the value of a successful parse.
func Map[S, A, B any](p Parser[S, A], f func(A) B) Parser[S, B] {
	return func(s Stream[S]) Result[S, B] {
		r := p(s)
		if !r.OK() {
			return Fail[S, B](r.Rest, r.Err)
		}
		return Ok(r.Rest, f(r.Value))
	}
}

// FlatMap sequences parsers: it runs p, then the parser f makes from p's value
// on the remaining stream. A failure of p short-circuits.
func FlatMap[S, A, B any](p Parser[S, A], f func(A) Parser[S, B]) Parser[S, B] {
	return func(s Stream[S]) Result[S, B] {
		r := p(s)
		if !r.OK() {
			return Fail[S, B](r.Rest, r.Err)
		}
		return f(r.Value)(r.Rest)
	}
}

// Bind runs p, discards its value, and then runs next.
func Bind[S, A, B any](p Parser[S, A], next func() Parser[S, B]) Parser[S, B] {
	return FlatMap(p, func(A) Parser[S, B] { return next() })
}

// Lazy defers constructing a parser until it runs, so that recursive grammar
// rules can refer to themselves.
func Lazy[S, T any](f func() Parser[S, T]) Parser[S, T] {
	return func(s Stream[S]) Result[S, T] {
		return f()(s)
	}
}

// Many parses zero or more repetitions of p. A repetition that fails is
// discarded, so Many always succeeds at the end of the last full repetition.
func Many[S, T any](p Parser[S, T]) Parser[S, []T] {
	return func(s Stream[S]) Result[S, []T] {
		return many(p, s, []T{})
	}
}

// Many1 is like Many but requires at least one repetition.
func Many1[S, T any](p Parser[S, T]) Parser[S, []T] {
	return func(s Stream[S]) Result[S, []T] {
		r := p(s)
		if !r.OK() {
			return Fail[S, []T](r.Rest, r.Err)
		}
		return many(p, r.Rest, []T{r.Value})
	}
}

func many[S, T any](p Parser[S, T], s Stream[S], v []T) Result[S, []T] {
	for {
		r := p(s)
		if !r.OK() {
			return Ok(s, v)
		}
		v = append(v, r.Value)
		if r.Rest.Position().Offset == s.Position().Offset {
			// p succeeded without consuming anything and would do so forever.
			return Ok(r.Rest, v)
		}
		s = r.Rest
	}
}

// ManyStr parses zero or more characters and concatenates them.
func ManyStr[S any](p Parser[S, rune]) Parser[S, string] {
	return Map(Many(p), runestr)
}

// ManyStr1 parses one or more characters and concatenates them.
func ManyStr1[S any](p Parser[S, rune]) Parser[S, string] {
	return Map(Many1(p), runestr)
}

func runestr(v []rune) string {
	return string(v)
}

// SepBy1 parses one or more p separated by the parsers sep produces. A trailing
// separator is not consumed.
func SepBy1[S, T, U any](p Parser[S, T], sep func() Parser[S, U]) Parser[S, []T] {
	return FlatMap(p, func(x T) Parser[S, []T] {
		rest := Many(Bind(sep(), func() Parser[S, T] { return p }))
		return Map(rest, func(xs []T) []T {
			return append([]T{x}, xs...)
		})
	})
}

// SepBy parses zero or more p separated by sep. It always succeeds, consuming
// nothing if there is not even one p.
func SepBy[S, T, U any](p Parser[S, T], sep func() Parser[S, U]) Parser[S, []T] {
	return SepBy1(p, sep).Rollback().Or(func() Parser[S, []T] {
		return Success[S]([]T{})
	})
}

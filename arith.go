package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// arith is the arithmetic of one number representation.
type arith[N any] interface {
	num(text string) (N, error)
	add(x, y N) (N, error)
	sub(x, y N) (N, error)
	mul(x, y N) (N, error)
	quo(x, y N) (N, error)
	rem(x, y N) (N, error)
	pow(x, y N) (N, error)
	neg(x N) N
	// result converts a value for a Result.
	result(x N) (float64, *big.Float)
	// source formats x as text that evaluates back to x.
	source(x N) string
}

// floatArith is IEEE 754 double arithmetic. No operation fails: division and
// remainder by zero and other invalid operations produce infinities and NaN.
type floatArith struct{}

func (floatArith) num(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	// Out of range literals are ±Inf or 0, which is what we want.
	return f, nil
}

func (floatArith) add(x, y float64) (float64, error) { return x + y, nil }
func (floatArith) sub(x, y float64) (float64, error) { return x - y, nil }
func (floatArith) mul(x, y float64) (float64, error) { return x * y, nil }
func (floatArith) quo(x, y float64) (float64, error) { return x / y, nil }

// rem is the truncated remainder; its sign follows x.
func (floatArith) rem(x, y float64) (float64, error) { return math.Mod(x, y), nil }

// pow follows math.Pow, including Pow(0, 0) = 1, NaN for a negative base with
// a non-integer exponent, and Pow(±1, ±Inf) = 1.
func (floatArith) pow(x, y float64) (float64, error) { return math.Pow(x, y), nil }

func (floatArith) neg(x float64) float64 { return -x }

func (floatArith) result(x float64) (float64, *big.Float) { return x, nil }

func (floatArith) source(x float64) string {
	switch {
	case math.IsNaN(x):
		return "0 / 0"
	case math.IsInf(x, 1):
		return "1 / 0"
	case math.IsInf(x, -1):
		return "-1 / 0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// bigArith is arbitrary-precision arithmetic. Operations whose IEEE result
// would be NaN return a DomainError instead.
type bigArith struct {
	prec uint
}

// do calls f with a new value at a's precision, converting a big.ErrNaN panic
// into a DomainError for name.
func (a bigArith) do(name string, x *big.Float, f func(z *big.Float)) (r *big.Float, err error) {
	z := new(big.Float).SetPrec(a.prec)
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok || !errors.As(e, &big.ErrNaN{}) {
			panic(p)
		}
		r, err = nil, &DomainError{X: x, Func: name}
	}()
	f(z)
	return z, nil
}

func (a bigArith) num(text string) (*big.Float, error) {
	r, _, err := new(big.Float).SetPrec(a.prec).Parse(text, 10)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (a bigArith) add(x, y *big.Float) (*big.Float, error) {
	return a.do("+", nil, func(z *big.Float) { z.Add(x, y) })
}

func (a bigArith) sub(x, y *big.Float) (*big.Float, error) {
	return a.do("-", nil, func(z *big.Float) { z.Sub(x, y) })
}

func (a bigArith) mul(x, y *big.Float) (*big.Float, error) {
	return a.do("*", nil, func(z *big.Float) { z.Mul(x, y) })
}

func (a bigArith) quo(x, y *big.Float) (*big.Float, error) {
	// Quo panics on 0/0 and Inf/Inf.
	return a.do("/", nil, func(z *big.Float) { z.Quo(x, y) })
}

func (a bigArith) rem(x, y *big.Float) (*big.Float, error) {
	switch {
	case y.Sign() == 0:
		return nil, &DomainError{X: y, Func: "%"}
	case x.IsInf():
		return nil, &DomainError{X: x, Func: "%"}
	case y.IsInf():
		return new(big.Float).SetPrec(a.prec).Set(x), nil
	}
	// x - y*trunc(x/y), with enough precision that the quotient's integer part
	// and the product are exact.
	prec := a.prec
	if d := x.MantExp(nil) - y.MantExp(nil); d > 0 {
		prec += uint(d)
	}
	q := new(big.Float).SetPrec(prec).Quo(x, y)
	qi, _ := q.Int(nil)
	t := new(big.Float).SetPrec(y.MinPrec() + uint(qi.BitLen()) + 1).SetInt(qi)
	t.Mul(t, y)
	return new(big.Float).SetPrec(a.prec).Sub(x, t), nil
}

var bigOne = big.NewFloat(1)

// pow uses the value bigfloat.Pow returns, which is not always its first
// argument.
func (a bigArith) pow(x, y *big.Float) (*big.Float, error) {
	switch {
	case y.Sign() == 0:
		return new(big.Float).SetPrec(a.prec).SetInt64(1), nil
	case y.Cmp(bigOne) == 0:
		return new(big.Float).SetPrec(a.prec).Set(x), nil
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return new(big.Float).SetPrec(a.prec).SetInf(false), nil
		}
		return new(big.Float).SetPrec(a.prec), nil
	case x.IsInf() || y.IsInf():
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		return a.do("^", x, func(z *big.Float) { z.SetFloat64(math.Pow(xf, yf)) })
	case x.Sign() < 0:
		if !y.IsInt() {
			return nil, &DomainError{X: x, Func: "^"}
		}
		yi, _ := y.Int(nil)
		r, err := a.do("^", x, func(z *big.Float) {
			z.Set(bigfloat.Pow(z, new(big.Float).Abs(x), y))
		})
		if err != nil {
			return nil, err
		}
		if yi.Bit(0) == 1 {
			r.Neg(r)
		}
		return r, nil
	}
	return a.do("^", x, func(z *big.Float) { z.Set(bigfloat.Pow(z, x, y)) })
}

func (a bigArith) neg(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(a.prec).Neg(x)
}

func (a bigArith) result(x *big.Float) (float64, *big.Float) {
	f, _ := x.Float64()
	return f, x
}

func (a bigArith) source(x *big.Float) string {
	switch {
	case x.IsInf() && x.Sign() > 0:
		return "1 / 0"
	case x.IsInf():
		return "-1 / 0"
	}
	return x.Text('f', -1)
}

// fromFloat converts a float64 result of a native function, failing for NaN.
func (a bigArith) fromFloat(name string, x *big.Float, f float64) (*big.Float, error) {
	return a.do(name, x, func(z *big.Float) { z.SetFloat64(f) })
}

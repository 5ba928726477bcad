package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// NativeFunc is a function implemented in Go and bound in the global frame.
type NativeFunc[N any] struct {
	// Name identifies the function in errors.
	Name string
	// Arity is the number of arguments the function takes.
	Arity int
	// Call computes the function. len(args) is always Arity.
	Call func(args []N) (N, error)
}

// Func is a function from reals to reals, usable in sessions of any precision.
// Arbitrary-precision sessions call it with float64 approximations.
type Func func(args ...float64) float64

// floatGlobals creates the global frame for double precision sessions.
func floatGlobals() *Frame[float64] {
	g := NewFrame[float64]("")
	g.Vars["PI"] = Number[float64]{V: math.Pi}
	g.Vars["E"] = Number[float64]{V: math.E}
	for name, f := range map[string]func(float64) float64{
		"abs":  math.Abs,
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tan":  math.Tan,
		"log":  math.Log,
		"exp":  math.Exp,
		"sqrt": math.Sqrt,
	} {
		g.Vars[name] = monadic(name, f)
	}
	return g
}

func monadic(name string, f func(float64) float64) *NativeFunc[float64] {
	return &NativeFunc[float64]{
		Name:  name,
		Arity: 1,
		Call: func(args []float64) (float64, error) {
			return f(args[0]), nil
		},
	}
}

// unary adapts a function of one float64 to a Func.
func unary(f func(float64) float64) Func {
	return func(args ...float64) float64 { return f(args[0]) }
}

// floatFunc adapts a Func for double precision sessions.
func floatFunc(name string, arity int, f Func) *NativeFunc[float64] {
	return &NativeFunc[float64]{
		Name:  name,
		Arity: arity,
		Call: func(args []float64) (float64, error) {
			return f(args...), nil
		},
	}
}

// bigGlobals creates the global frame for arbitrary-precision sessions. Trig
// functions are not available in arbitrary precision, so they are computed in
// float64.
func bigGlobals(a bigArith) *Frame[*big.Float] {
	g := NewFrame[*big.Float]("")
	pi := bigfloat.Pi(new(big.Float).SetPrec(a.prec))
	g.Vars["PI"] = Number[*big.Float]{V: pi}
	e := new(big.Float).SetPrec(a.prec)
	e.Set(bigfloat.Exp(e, new(big.Float).SetInt64(1)))
	g.Vars["E"] = Number[*big.Float]{V: e}

	g.Vars["abs"] = a.monadic("abs", func(z, x *big.Float) { z.Abs(x) })
	g.Vars["sqrt"] = a.monadic("sqrt", func(z, x *big.Float) { z.Sqrt(x) })
	g.Vars["exp"] = a.monadic("exp", func(z, x *big.Float) {
		if x.IsInf() {
			if x.Sign() > 0 {
				z.SetInf(false)
			} else {
				z.SetInt64(0)
			}
			return
		}
		z.Set(bigfloat.Exp(z, x))
	})
	g.Vars["log"] = a.monadic("log", func(z, x *big.Float) {
		switch {
		case x.Sign() < 0:
			panic(big.ErrNaN{})
		case x.Sign() == 0:
			z.SetInf(true)
		case x.IsInf():
			z.SetInf(false)
		default:
			z.Set(bigfloat.Log(z, x))
		}
	})
	for name, f := range map[string]func(float64) float64{
		"sin": math.Sin,
		"cos": math.Cos,
		"tan": math.Tan,
	} {
		g.Vars[name] = a.bigFunc(name, 1, unary(f))
	}
	return g
}

// monadic wraps a function of one variable. f must set z to its result; z has
// the session's precision. If x is outside f's domain, f should panic with
// big.ErrNaN.
func (a bigArith) monadic(name string, f func(z, x *big.Float)) *NativeFunc[*big.Float] {
	return &NativeFunc[*big.Float]{
		Name:  name,
		Arity: 1,
		Call: func(args []*big.Float) (*big.Float, error) {
			x := args[0]
			return a.do(name, x, func(z *big.Float) { f(z, x) })
		},
	}
}

// bigFunc adapts a Func for arbitrary-precision sessions.
func (a bigArith) bigFunc(name string, arity int, f Func) *NativeFunc[*big.Float] {
	return &NativeFunc[*big.Float]{
		Name:  name,
		Arity: arity,
		Call: func(args []*big.Float) (*big.Float, error) {
			v := make([]float64, len(args))
			for i, x := range args {
				v[i], _ = x.Float64()
			}
			var x *big.Float
			if len(args) == 1 {
				x = args[0]
			}
			return a.fromFloat(name, x, f(v...))
		},
	}
}

package calc

import (
	"math"
	"math/big"
)

// Option is an option used when creating a session.
type Option interface {
	sessOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt  map[string]float64
	exactopt struct {
		name string
		val  *big.Float
	}
	precopt uint
	funcopt struct {
		name  string
		arity int
		fn    Func
	}
)

func (varopt) sessOption()   {}
func (varsopt) sessOption()  {}
func (exactopt) sessOption() {}
func (precopt) sessOption()  {}
func (funcopt) sessOption()  {}

// SetVar sets a global variable. Global variables may be shadowed by
// definitions but are not removed by Clear. Arbitrary-precision sessions
// panic on NaN values.
func SetVar(name string, val float64) Option {
	return varopt{name, val}
}

// SetExactVar sets a global variable from an arbitrary-precision value. It
// is rounded to the session's precision, or to float64 in default sessions.
func SetExactVar(name string, val *big.Float) Option {
	return exactopt{name, val}
}

// SetVars sets any number of global variables.
func SetVars(vars map[string]float64) Option {
	return varsopt(vars)
}

// Prec sets the precision of calculations in bits. A precision of 53 or less,
// including the default of 0, computes with float64.
func Prec(prec uint) Option {
	return precopt(prec)
}

// SetFunc sets a global function of arity arguments. Panics if arity is less
// than 1, since calls always have at least one argument.
func SetFunc(name string, arity int, fn Func) Option {
	if arity < 1 {
		panic("calc: function arity must be positive")
	}
	return funcopt{name, arity, fn}
}

func applyFloat(g *Frame[float64], opt Option) {
	switch o := opt.(type) {
	case varopt:
		g.Vars[o.name] = Number[float64]{V: o.val}
	case varsopt:
		for k, v := range o {
			g.Vars[k] = Number[float64]{V: v}
		}
	case exactopt:
		f, _ := o.val.Float64()
		g.Vars[o.name] = Number[float64]{V: f}
	case funcopt:
		g.Vars[o.name] = floatFunc(o.name, o.arity, o.fn)
	case precopt: // already handled
	default:
		panic("calc: unknown option type")
	}
}

func applyBig(g *Frame[*big.Float], a bigArith, opt Option) {
	switch o := opt.(type) {
	case varopt:
		g.Vars[o.name] = Number[*big.Float]{V: a.value(o.name, o.val)}
	case varsopt:
		for k, v := range o {
			g.Vars[k] = Number[*big.Float]{V: a.value(k, v)}
		}
	case exactopt:
		g.Vars[o.name] = Number[*big.Float]{V: new(big.Float).SetPrec(a.prec).Set(o.val)}
	case funcopt:
		g.Vars[o.name] = a.bigFunc(o.name, o.arity, o.fn)
	case precopt: // already handled
	default:
		panic("calc: unknown option type")
	}
}

// value converts a variable's value. Arbitrary-precision sessions cannot
// represent NaN.
func (a bigArith) value(name string, v float64) *big.Float {
	if math.IsNaN(v) {
		panic("calc: NaN value for variable " + name)
	}
	return new(big.Float).SetPrec(a.prec).SetFloat64(v)
}

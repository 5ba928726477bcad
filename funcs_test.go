package calc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestNativeFuncs(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"abs", "abs(-2.5)", 2.5},
		{"sin", "sin(1)", math.Sin(1)},
		{"cos", "cos(1)", math.Cos(1)},
		{"tan", "tan(1)", math.Tan(1)},
		{"log", "log(10)", math.Log(10)},
		{"log-zero", "log(0)", math.Inf(-1)},
		{"exp", "exp(2)", math.Exp(2)},
		{"exp-neg-inf", "exp(-1/0)", 0},
		{"sqrt", "sqrt(2)", math.Sqrt2},
		{"expr-arg", "sqrt(3 * 3 + 4 * 4)", 5},
	}
	for _, prec := range []uint{0, 64, 256} {
		s := calc.NewSession(calc.Prec(prec))
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				r, err := s.Evaluate(c.src)
				if err != nil {
					t.Fatalf("prec %d: %q failed: %v", prec, c.src, err)
				}
				if math.IsInf(c.want, 0) {
					if r.Value != c.want {
						t.Errorf("prec %d: %q: want %g, got %g", prec, c.src, c.want, r.Value)
					}
					return
				}
				if math.Abs(r.Value-c.want) > 1e-15*math.Max(1, math.Abs(c.want)) {
					t.Errorf("prec %d: %q: want %g, got %g", prec, c.src, c.want, r.Value)
				}
			})
		}
	}
}

func TestNativeFuncNames(t *testing.T) {
	for _, name := range []string{"abs", "sin", "cos", "tan", "log", "exp", "sqrt"} {
		_, err := calc.Evaluate(name + "(1, 2)")
		var cerr *calc.CallError
		if !errors.As(err, &cerr) {
			t.Errorf("%s with two arguments: want CallError, got %v", name, err)
			continue
		}
		if cerr.Func != name || cerr.Want != 1 || cerr.Len != 2 {
			t.Errorf("%s: wrong error %+v", name, cerr)
		}
	}
}

func TestUserFuncPrecise(t *testing.T) {
	var calls int
	sq := func(args ...float64) float64 {
		calls++
		return args[0] * args[0]
	}
	s := calc.NewSession(calc.Prec(80), calc.SetFunc("sq", 1, sq), calc.SetVar("h", 0.5))
	r, err := s.Evaluate("sq(3) + h")
	if err != nil {
		t.Fatal(err)
	}
	if r.Value != 9.5 || calls != 1 {
		t.Errorf("want 9.5 after one call, got %g after %d", r.Value, calls)
	}
	nan := func(args ...float64) float64 { return math.NaN() }
	s = calc.NewSession(calc.Prec(80), calc.SetFunc("nan", 1, nan))
	if _, err := s.Evaluate("nan(1)"); err == nil {
		t.Error("NaN from a native function did not fail")
	}
}

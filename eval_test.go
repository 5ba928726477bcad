package calc_test

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"num", "1", 1},
		{"frac", "0.25", 0.25},
		{"prec", "2+3*4", 14},
		{"paren", "(2+3)*4", 20},
		{"sub-left", "10-2-3", 5},
		{"div-left", "100/10/5", 2},
		{"mixed-left", "8/2*4", 16},
		{"plus-minus-left", "1-2+3", 2},
		{"mod", "11%3", 2},
		{"mod-neg", "-11%3", -2},
		{"mod-frac", "5.5 % 2", 1.5},
		{"pow-right", "2^3^2", 512},
		{"pow-neg-exp", "2 ^ -1", 0.5},
		{"neg-pow", "-2^2", 4},
		{"neg-paren-pow", "-(2^2)", -4},
		{"double-neg", "--3", 3},
		{"div-zero", "1/0", math.Inf(1)},
		{"neg-div-zero", "-11/0", math.Inf(-1)},
		{"pi", "PI", math.Pi},
		{"e", "E", math.E},
		{"abs", "abs(-3)", 3},
		{"sqrt", "sqrt(16)", 4},
		{"exp", "exp(0)", 1},
		{"log", "log(E)", 1},
		{"cos", "cos(0)", 1},
		{"nested-call", "sqrt(abs(-16))", 4},
		{"spaces", " \t1 +\t2 ", 3},
	}
	s := calc.NewSession()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := s.Evaluate(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if r.Def != nil {
				t.Errorf("%q made a definition: %v", c.src, r.Def)
			}
			if r.Value != c.want {
				t.Errorf("%q: want %g, got %g", c.src, c.want, r.Value)
			}
			if r.Exact != nil {
				t.Errorf("%q: float64 session gave exact result %v", c.src, r.Exact)
			}
		})
	}
}

func TestEvaluateApprox(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"sin(PI/2)", 1},
		{"sin(PI)", 0},
		{"tan(PI/4)", 1},
		{"exp(log(10))", 10},
	}
	for _, c := range cases {
		r, err := calc.Evaluate(c.src)
		if err != nil {
			t.Errorf("%q failed: %v", c.src, err)
			continue
		}
		if math.Abs(r.Value-c.want) > 1e-12 {
			t.Errorf("%q: want %g, got %g", c.src, c.want, r.Value)
		}
	}
}

func TestEvaluateNaN(t *testing.T) {
	for _, src := range []string{"0/0", "sqrt(-1)", "(-8)^(1/3)", "5 % 0"} {
		r, err := calc.Evaluate(src)
		if err != nil {
			t.Errorf("%q failed: %v", src, err)
			continue
		}
		if !math.IsNaN(r.Value) {
			t.Errorf("%q: want NaN, got %g", src, r.Value)
		}
	}
}

func TestDefinitions(t *testing.T) {
	s := calc.NewSession()
	steps := []struct {
		src  string
		want float64
		msg  string
	}{
		{"x = 5", 5, "定義しました: x = 5"},
		{"x * 2", 10, ""},
		{"y = x + 1", 6, "定義しました: y = 6"},
		{"x = 1", 1, "定義しました: x = 1"},
		{"y", 6, ""},
		{"f(a, b) = a * b + x", 0, "定義しました: f(a, b) = a * b + x"},
		{"f(2, 3)", 7, ""},
		{"x = 10", 10, "定義しました: x = 10"},
		{"f(2, 3)", 16, ""},
		{"g(x) = f(x, x)", 0, "定義しました: g(x) = f(x, x)"},
		{"g(3)", 12, ""},
		{"inc(n) = n + 1", 0, "定義しました: inc(n) = n + 1"},
		{"inc(inc(1))", 3, ""},
		{"PI = 3", 3, "定義しました: PI = 3"},
		{"PI", 3, ""},
	}
	for _, c := range steps {
		r, err := s.Evaluate(c.src)
		if err != nil {
			t.Fatalf("%q failed: %v", c.src, err)
		}
		if r.Value != c.want {
			t.Errorf("%q: want %g, got %g", c.src, c.want, r.Value)
		}
		if c.msg == "" {
			if r.Def != nil {
				t.Errorf("%q made a definition", c.src)
			}
			continue
		}
		if r.Def == nil {
			t.Errorf("%q did not make a definition", c.src)
		}
		if r.String() != c.msg {
			t.Errorf("%q: want message %q, got %q", c.src, c.msg, r.String())
		}
	}
	s.Clear()
	if _, err := s.Evaluate("x"); !errors.As(err, new(*calc.NameError)) {
		t.Errorf("x after clear: want NameError, got %v", err)
	}
	r, err := s.Evaluate("PI")
	if err != nil {
		t.Fatal(err)
	}
	if r.Value != math.Pi {
		t.Errorf("PI after clear: want %g, got %g", math.Pi, r.Value)
	}
}

func TestFailedDefinitionBindsNothing(t *testing.T) {
	s := calc.NewSession()
	if _, err := s.Evaluate("x = y"); err == nil {
		t.Fatal("defining x from undefined y succeeded")
	}
	if _, err := s.Evaluate("x"); !errors.As(err, new(*calc.NameError)) {
		t.Errorf("want NameError, got %v", err)
	}
	if d := s.Definitions(); len(d) != 0 {
		t.Errorf("want no definitions, got %q", d)
	}
}

func TestDynamicScope(t *testing.T) {
	s := calc.NewSession()
	for _, src := range []string{"g(y) = y + z", "h(z) = g(1)"} {
		if _, err := s.Evaluate(src); err != nil {
			t.Fatalf("%q failed: %v", src, err)
		}
	}
	r, err := s.Evaluate("h(5)")
	if err != nil {
		t.Fatal(err)
	}
	if r.Value != 6 {
		t.Errorf("want 6, got %g", r.Value)
	}
	if _, err := s.Evaluate("g(1)"); !errors.As(err, new(*calc.NameError)) {
		t.Errorf("z outside h: want NameError, got %v", err)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup []string
		src   string
		err   interface{}
		msg   string
	}{
		{"undefined-var", nil, "y + 1", new(*calc.NameError), `^y は定義されていません$`},
		{"undefined-func", nil, "g(1)", new(*calc.NameError), `^g は定義されていません$`},
		{"not-func", []string{"x = 1"}, "x(2)", new(*calc.NotFuncError), `^x は関数ではありません$`},
		{"not-number", nil, "sin + 1", new(*calc.NotNumberError), `^sin は数値ではありません$`},
		{"recursion", []string{"f(x) = f(x)"}, "f(1)", new(*calc.RecursionError), `^f は再帰呼び出しできません$`},
		{"mutual-recursion", []string{"g(x) = h(x)", "h(x) = g(x) + 1"}, "g(1)", new(*calc.RecursionError), `^g は`},
		{"arity-user", []string{"f(x) = x"}, "f(1, 2)", new(*calc.CallError), `^f の引数は 1 個必要です \(2 個指定されました\)$`},
		{"arity-native", nil, "sin(1, 2)", new(*calc.CallError), `^sin の引数は 1 個必要です`},
		{"duplicate-param", []string{"f(x, x) = x"}, "f(1, 2)", new(*calc.DuplicateParamError), `^f の引数 x は既に定義されています$`},
		{"in-arg", []string{"f(x) = x"}, "f(q)", new(*calc.NameError), `^q は`},
		{"in-body", []string{"f(x) = x + q"}, "f(1)", new(*calc.NameError), `^q は`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := calc.NewSession()
			for _, src := range c.setup {
				if _, err := s.Evaluate(src); err != nil {
					t.Fatalf("setup %q failed: %v", src, err)
				}
			}
			r, err := s.Evaluate(c.src)
			if err == nil {
				t.Fatalf("%q succeeded with %v", c.src, r)
			}
			if !errors.As(err, c.err) {
				t.Errorf("wrong error type: want %T, got %T (%v)", c.err, err, err)
			}
			if !regexp.MustCompile(c.msg).MatchString(err.Error()) {
				t.Errorf("error message %q does not match %q", err.Error(), c.msg)
			}
			// The failed call must not leave frames behind.
			if _, err := s.Evaluate("z = 1"); err != nil {
				t.Fatal(err)
			}
			d := s.Definitions()
			if len(d) == 0 || d[len(d)-1] != "z = 1" {
				t.Errorf("definition after error landed in the wrong frame: %q", d)
			}
		})
	}
}

func TestDefinitionsList(t *testing.T) {
	s := calc.NewSession()
	for _, src := range []string{"y = 2", "f(x) = x*2", "a = 1/0", "b = -0.5"} {
		if _, err := s.Evaluate(src); err != nil {
			t.Fatalf("%q failed: %v", src, err)
		}
	}
	want := []string{"a = 1 / 0", "b = -0.5", "f(x) = x * 2", "y = 2"}
	got := s.Definitions()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %q, got %q", want, got)
	}
	// Replaying the definitions in a new session recreates them.
	u := calc.NewSession()
	for _, src := range got {
		if _, err := u.Evaluate(src); err != nil {
			t.Fatalf("replaying %q failed: %v", src, err)
		}
	}
	if d := u.Definitions(); !reflect.DeepEqual(d, want) {
		t.Errorf("replay: want %q, got %q", want, d)
	}
}

func TestPureExpressionsAreIdempotent(t *testing.T) {
	s := calc.NewSession()
	if _, err := s.Evaluate("f(x) = x ^ 2 - x"); err != nil {
		t.Fatal(err)
	}
	for _, src := range []string{"f(3) + f(4)", "sin(1) * 7 % 3", "2 ^ 0.5"} {
		a, err := s.Evaluate(src)
		if err != nil {
			t.Fatal(err)
		}
		b, err := s.Evaluate(src)
		if err != nil {
			t.Fatal(err)
		}
		if a.Value != b.Value {
			t.Errorf("%q: %g then %g", src, a.Value, b.Value)
		}
	}
}

func TestOptions(t *testing.T) {
	hyp := func(args ...float64) float64 { return math.Hypot(args[0], args[1]) }
	s := calc.NewSession(
		calc.SetVar("k", 3),
		calc.SetVars(map[string]float64{"m": 4, "n": 5}),
		calc.SetFunc("hyp", 2, hyp),
	)
	r, err := s.Evaluate("hyp(k, m) - n")
	if err != nil {
		t.Fatal(err)
	}
	if r.Value != 0 {
		t.Errorf("want 0, got %g", r.Value)
	}
	if _, err := s.Evaluate("hyp(1)"); !errors.As(err, new(*calc.CallError)) {
		t.Errorf("want CallError, got %v", err)
	}
	if s.Prec() != 53 {
		t.Errorf("default precision: want 53, got %d", s.Prec())
	}
	if d := s.Definitions(); len(d) != 0 {
		t.Errorf("options made definitions: %q", d)
	}
}

func TestPrecise(t *testing.T) {
	s := calc.NewSession(calc.Prec(32), calc.Prec(128))
	if s.Prec() != 128 {
		t.Fatalf("want precision 128, got %d", s.Prec())
	}
	cases := []struct {
		src   string
		exact string
	}{
		{"12345678901234567890 + 1", "12345678901234567891"},
		{"2^3^2", "512"},
		{"10-2-3", "5"},
		{"-7 % 3", "-1"},
		{"7.5 % 2", "1.5"},
		{"(-2)^3", "-8"},
		{"(-2)^2", "4"},
		{"0^0", "1"},
		{"1/4", "0.25"},
		{"abs(-3)", "3"},
		{"sqrt(16)", "4"},
	}
	for _, c := range cases {
		r, err := s.Evaluate(c.src)
		if err != nil {
			t.Errorf("%q failed: %v", c.src, err)
			continue
		}
		if r.Exact == nil {
			t.Errorf("%q: no exact result", c.src)
			continue
		}
		if got := r.Exact.Text('f', -1); got != c.exact {
			t.Errorf("%q: want %s, got %s", c.src, c.exact, got)
		}
	}
	r, err := s.Evaluate("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	if r.Exact.Prec() != 128 {
		t.Errorf("result has precision %d", r.Exact.Prec())
	}
	r, err = s.Evaluate("1/0")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(r.Value, 1) {
		t.Errorf("1/0: want +Inf, got %g", r.Value)
	}
	r, err = s.Evaluate("sin(PI/2)")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Value-1) > 1e-12 {
		t.Errorf("sin(PI/2): want 1, got %g", r.Value)
	}
	pi := new(big.Float).SetPrec(128)
	pi.SetString("3.14159265358979323846264338327950288419")
	r, err = s.Evaluate("PI")
	if err != nil {
		t.Fatal(err)
	}
	d := new(big.Float).Sub(r.Exact, pi)
	if d.Abs(d).Cmp(big.NewFloat(1e-35)) > 0 {
		t.Errorf("PI is not precise: %s", r.Exact.Text('g', 40))
	}
}

func TestPreciseDomainErrors(t *testing.T) {
	s := calc.NewSession(calc.Prec(100))
	cases := []struct {
		src string
		fn  string
	}{
		{"0/0", "/"},
		{"5 % 0", "%"},
		{"(-8)^(1/3)", "^"},
		{"log(-1)", "log"},
		{"sqrt(-1)", "sqrt"},
		{"1/0 - 1/0", "-"},
	}
	for _, c := range cases {
		_, err := s.Evaluate(c.src)
		var derr *calc.DomainError
		if !errors.As(err, &derr) {
			t.Errorf("%q: want DomainError, got %v", c.src, err)
			continue
		}
		if derr.Func != c.fn {
			t.Errorf("%q: want error for %s, got %s", c.src, c.fn, derr.Func)
		}
		if !errors.Is(err, big.ErrNaN{}) {
			t.Errorf("%q: error does not wrap big.ErrNaN", c.src)
		}
	}
}

func TestEvaluateUnknownNode(t *testing.T) {
	_, err := calc.NewSession().Exec(foreign{})
	if !errors.Is(err, calc.ErrUnknownNode) {
		t.Errorf("want ErrUnknownNode, got %v", err)
	}
}

type foreign struct{ calc.ExprPM }

func TestPrecisePow(t *testing.T) {
	s := calc.NewSession(calc.Prec(100))
	cases := []struct {
		src   string
		exact string
	}{
		{"5^1", "5"},
		{"(-3)^1", "-3"},
		{"0.5^1", "0.5"},
		{"exp(0)", "1"},
	}
	for _, c := range cases {
		r, err := s.Evaluate(c.src)
		if err != nil {
			t.Errorf("%q failed: %v", c.src, err)
			continue
		}
		if got := r.Exact.Text('f', -1); got != c.exact {
			t.Errorf("%q: want %s, got %s", c.src, c.exact, got)
		}
	}

	r, err := s.Evaluate("x = 7^1")
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "定義しました: x = 7" {
		t.Errorf("wrong confirmation %q", r.String())
	}

	r, err = s.Evaluate("2^2000")
	if err != nil {
		t.Fatal(err)
	}
	want := new(big.Float).SetMantExp(big.NewFloat(1), 2000)
	d := new(big.Float).Quo(new(big.Float).Sub(r.Exact, want), want)
	if d.Abs(d).Cmp(big.NewFloat(1e-25)) > 0 {
		t.Errorf("2^2000: got %s", r.Exact.Text('g', 20))
	}

	r, err = s.Evaluate("10^1000 % 3")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Exact.IsInt() || r.Value < 0 || r.Value >= 3 {
		t.Errorf("10^1000 %% 3: want an integer in [0, 3), got %s", r.Exact.Text('g', 20))
	}

	r, err = s.Evaluate("log(E ^ 3)")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Value-3) > 1e-15 {
		t.Errorf("log(E ^ 3): want 3, got %g", r.Value)
	}
}

func TestSetExactVar(t *testing.T) {
	v, _, err := big.ParseFloat("12345678901234567891", 10, 128, big.ToNearestEven)
	if err != nil {
		t.Fatal(err)
	}
	r, err := calc.Evaluate("n - 1", calc.Prec(128), calc.SetExactVar("n", v))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Exact.Text('f', -1); got != "12345678901234567890" {
		t.Errorf("want 12345678901234567890, got %s", got)
	}
	r, err = calc.Evaluate("n", calc.SetExactVar("n", big.NewFloat(0.5)))
	if err != nil {
		t.Fatal(err)
	}
	if r.Value != 0.5 {
		t.Errorf("float64 session: want 0.5, got %g", r.Value)
	}
}

package calc

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
)

// Session evaluates statements against a persistent set of definitions. It is
// not safe to use a Session concurrently.
type Session struct {
	eng  engine
	prec uint
}

// engine is an evaluator of any number representation.
type engine interface {
	exec(s Statement) (Result, error)
	reset()
	defs() []string
}

// Result is the outcome of evaluating a statement.
type Result struct {
	// Value is the value of an expression or of a defined variable. It is 0
	// for function definitions.
	Value float64
	// Exact is the value at full precision in arbitrary-precision sessions,
	// and nil otherwise.
	Exact *big.Float
	// Def is the definition the statement made, or nil for expressions.
	Def Def
	// Msg is a confirmation message for definitions.
	Msg string
}

// String returns the confirmation message for definitions or the formatted
// value for expressions.
func (r Result) String() string {
	if r.Def != nil {
		return r.Msg
	}
	if r.Exact != nil {
		return r.Exact.Text('g', digits(r.Exact.Prec()))
	}
	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}

// digits returns the number of decimal digits representable in prec bits.
func digits(prec uint) int {
	// log10(2) ~ 0.30103
	return int(float64(prec) * 0.30103)
}

// NewSession creates a session with the global constants PI and E and the
// functions abs, sin, cos, tan, log, exp, and sqrt, plus any variables and
// functions set by opts. The default precision is that of float64.
func NewSession(opts ...Option) *Session {
	var prec uint
	// Loop backward so we apply the last precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			prec = uint(p)
			break
		}
	}
	if prec <= 53 {
		g := floatGlobals()
		for _, opt := range opts {
			applyFloat(g, opt)
		}
		return &Session{eng: newEvaluator[float64](floatArith{}, g), prec: 53}
	}
	a := bigArith{prec: prec}
	g := bigGlobals(a)
	for _, opt := range opts {
		applyBig(g, a, opt)
	}
	return &Session{eng: newEvaluator[*big.Float](a, g), prec: prec}
}

// Evaluate parses and evaluates one statement. Expressions produce a value.
// Definitions persist in the session until Clear. Parse failures return a
// *ParseError.
func (s *Session) Evaluate(src string) (Result, error) {
	st, err := Parse(src)
	if err != nil {
		return Result{}, err
	}
	return s.eng.exec(st)
}

// Exec evaluates an already parsed statement.
func (s *Session) Exec(st Statement) (Result, error) {
	return s.eng.exec(st)
}

// Clear discards all definitions made in the session. Variables and functions
// set by options remain.
func (s *Session) Clear() {
	s.eng.reset()
}

// Definitions returns the session's definitions as statements sorted by name.
// Evaluating them in a new session with the same options recreates them.
func (s *Session) Definitions() []string {
	return s.eng.defs()
}

// Prec returns the precision in bits to which the session computes.
func (s *Session) Prec() uint {
	return s.prec
}

// Evaluate is a shortcut to evaluate one statement in a new session.
func Evaluate(src string, opts ...Option) (Result, error) {
	return NewSession(opts...).Evaluate(src)
}

// evaluator walks the AST using one number representation.
type evaluator[N any] struct {
	ar    arith[N]
	stack *CallStack[N]
}

func newEvaluator[N any](ar arith[N], global *Frame[N]) *evaluator[N] {
	return &evaluator[N]{ar: ar, stack: NewCallStack(global)}
}

func (e *evaluator[N]) reset() {
	e.stack.Reset()
}

func (e *evaluator[N]) exec(s Statement) (Result, error) {
	switch s := s.(type) {
	case Def:
		return e.evalDef(s)
	case ExprPM:
		v, err := e.evalExprPM(s)
		if err != nil {
			return Result{}, err
		}
		f, x := e.ar.result(v)
		return Result{Value: f, Exact: x}, nil
	default:
		return Result{}, fmt.Errorf("%w: statement %T", ErrUnknownNode, s)
	}
}

func (e *evaluator[N]) defs() []string {
	vars := e.stack.frames[1].Vars
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	r := make([]string, 0, len(names))
	for _, k := range names {
		switch v := vars[k].(type) {
		case Number[N]:
			r = append(r, k+" = "+e.ar.source(v.V))
		case UserFunc:
			r = append(r, v.Def.String())
		}
	}
	return r
}

// evalDef binds a definition in the innermost frame. Variables are evaluated
// immediately; functions are stored unevaluated.
func (e *evaluator[N]) evalDef(d Def) (Result, error) {
	switch d := d.(type) {
	case *Defvar:
		v, err := e.evalExprPM(d.Expr)
		if err != nil {
			return Result{}, err
		}
		e.stack.Top().Vars[d.Name.Name] = Number[N]{V: v}
		f, x := e.ar.result(v)
		r := Result{Value: f, Exact: x, Def: d}
		r.Msg = "定義しました: " + d.Name.Name + " = " + e.ar.source(v)
		return r, nil
	case *Defun:
		e.stack.Top().Vars[d.Name.Name] = UserFunc{Def: d}
		return Result{Def: d, Msg: "定義しました: " + d.String()}, nil
	default:
		return Result{}, fmt.Errorf("%w: definition %T", ErrUnknownNode, d)
	}
}

// evalExprPM folds an additive chain left to right.
func (e *evaluator[N]) evalExprPM(x ExprPM) (N, error) {
	var acc N
	var op func(x, y N) (N, error)
	for {
		var (
			l    ExprMD
			rest ExprPM
			next func(x, y N) (N, error)
		)
		switch t := x.(type) {
		case MDExprPM:
			l = t.Expr
		case PlusExprPM:
			l, rest, next = t.Left, t.Rest, e.ar.add
		case MinusExprPM:
			l, rest, next = t.Left, t.Rest, e.ar.sub
		default:
			var zero N
			return zero, fmt.Errorf("%w: %T", ErrUnknownNode, x)
		}
		v, err := e.evalExprMD(l)
		if err != nil {
			return v, err
		}
		if op != nil {
			v, err = op(acc, v)
			if err != nil {
				return v, err
			}
		}
		acc = v
		if rest == nil {
			return acc, nil
		}
		op, x = next, rest
	}
}

// evalExprMD folds a multiplicative chain left to right.
func (e *evaluator[N]) evalExprMD(x ExprMD) (N, error) {
	var acc N
	var op func(x, y N) (N, error)
	for {
		var (
			t    Term
			rest ExprMD
			next func(x, y N) (N, error)
		)
		switch m := x.(type) {
		case TermExprMD:
			t = m.Term
		case MultExprMD:
			t, rest, next = m.Term, m.Rest, e.ar.mul
		case DivExprMD:
			t, rest, next = m.Term, m.Rest, e.ar.quo
		case ModExprMD:
			t, rest, next = m.Term, m.Rest, e.ar.rem
		default:
			var zero N
			return zero, fmt.Errorf("%w: %T", ErrUnknownNode, x)
		}
		v, err := e.evalTerm(t)
		if err != nil {
			return v, err
		}
		if op != nil {
			v, err = op(acc, v)
			if err != nil {
				return v, err
			}
		}
		acc = v
		if rest == nil {
			return acc, nil
		}
		op, x = next, rest
	}
}

func (e *evaluator[N]) evalTerm(t Term) (N, error) {
	switch t := t.(type) {
	case FactTerm:
		return e.evalFact(t.Fact)
	case PowTerm:
		b, err := e.evalFact(t.Base)
		if err != nil {
			return b, err
		}
		x, err := e.evalTerm(t.Exp)
		if err != nil {
			return x, err
		}
		return e.ar.pow(b, x)
	default:
		var zero N
		return zero, fmt.Errorf("%w: %T", ErrUnknownNode, t)
	}
}

func (e *evaluator[N]) evalFact(f Fact) (N, error) {
	switch f := f.(type) {
	case FuncFact:
		return e.evalFunCall(f.Call)
	case VarFact:
		return e.evalVar(f.Var)
	case NumFact:
		return e.ar.num(f.Num.Text)
	case ExprFact:
		return e.evalExprPM(f.Expr)
	case NegFact:
		v, err := e.evalFact(f.Fact)
		if err != nil {
			return v, err
		}
		return e.ar.neg(v), nil
	default:
		var zero N
		return zero, fmt.Errorf("%w: %T", ErrUnknownNode, f)
	}
}

func (e *evaluator[N]) evalVar(v Var) (N, error) {
	var zero N
	b, ok := e.stack.FindVar(v.Name)
	if !ok {
		return zero, &NameError{Name: v.Name}
	}
	n, ok := b.(Number[N])
	if !ok {
		return zero, &NotNumberError{Name: v.Name}
	}
	return n.V, nil
}

// evalFunCall calls a user or native function. A function that is already
// executing somewhere on the stack cannot be called again.
func (e *evaluator[N]) evalFunCall(c FunCall) (N, error) {
	var zero N
	name := c.Name.Name
	b, ok := e.stack.FindVar(name)
	if !ok {
		return zero, &NameError{Name: name}
	}
	if e.stack.FindCallee(name) {
		return zero, &RecursionError{Func: name}
	}
	switch f := b.(type) {
	case UserFunc:
		return e.callUser(name, f.Def, c.Args)
	case *NativeFunc[N]:
		if len(c.Args) != f.Arity {
			return zero, &CallError{Func: name, Want: f.Arity, Len: len(c.Args)}
		}
		args := make([]N, len(c.Args))
		for i, a := range c.Args {
			v, err := e.evalExprPM(a)
			if err != nil {
				return v, err
			}
			args[i] = v
		}
		return f.Call(args)
	default:
		return zero, &NotFuncError{Name: name}
	}
}

// callUser binds the arguments, evaluated in the caller's scope, in a new
// frame and evaluates the body there.
func (e *evaluator[N]) callUser(name string, d *Defun, args []ExprPM) (N, error) {
	var zero N
	if len(args) != len(d.Params) {
		return zero, &CallError{Func: name, Want: len(d.Params), Len: len(args)}
	}
	f := NewFrame[N](name)
	for i, a := range args {
		p := d.Params[i].Name
		if _, ok := f.Vars[p]; ok {
			return zero, &DuplicateParamError{Func: name, Param: p}
		}
		v, err := e.evalExprPM(a)
		if err != nil {
			return v, err
		}
		f.Vars[p] = Number[N]{V: v}
	}
	e.stack.Push(f)
	defer e.stack.Pop()
	return e.evalExprPM(d.Body)
}

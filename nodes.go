package calc

import (
	"strings"
)

// Statement is a parsed input line: either an ExprPM or a Def.
type Statement interface {
	statement()
	String() string
}

// Num is a numeric literal. The text is converted when evaluated.
type Num struct {
	Text string
}

// Var is a variable or function name.
type Var struct {
	Name string
}

// FunCall is a call of a named function with one or more arguments.
type FunCall struct {
	Name Var
	Args []ExprPM
}

// Def is a variable or function definition.
type Def interface {
	Statement
	def()
}

// Defvar is a variable definition, name = expr.
type Defvar struct {
	Name Var
	Expr ExprPM
}

// Defun is a function definition, name(params) = body.
type Defun struct {
	Name   Var
	Params []Var
	Body   ExprPM
}

// Fact is the unary level of the grammar: a call, a variable, a number, a
// parenthesized expression, or a negation.
type Fact interface {
	fact()
	fmt(*strings.Builder)
}

type (
	FuncFact struct{ Call FunCall }
	VarFact  struct{ Var Var }
	NumFact  struct{ Num Num }
	ExprFact struct{ Expr ExprPM }
	NegFact  struct{ Fact Fact }
)

// Term is the exponentiation level. PowTerm is right-associative: its
// exponent is itself a Term.
type Term interface {
	term()
	fmt(*strings.Builder)
}

type (
	FactTerm struct{ Fact Fact }
	PowTerm  struct {
		Base Fact
		Exp  Term
	}
)

// ExprMD is the multiplicative level. The operator of a non-terminal node
// stands between Term and the first operand of Rest, so a chain reads left to
// right even though Rest nests to the right.
type ExprMD interface {
	exprMD()
	fmt(*strings.Builder)
}

type (
	TermExprMD struct{ Term Term }
	MultExprMD struct {
		Term Term
		Rest ExprMD
	}
	DivExprMD struct {
		Term Term
		Rest ExprMD
	}
	ModExprMD struct {
		Term Term
		Rest ExprMD
	}
)

// ExprPM is the additive level and the top expression type. Like ExprMD, each
// operator stands between Left and the first operand of Rest.
type ExprPM interface {
	Statement
	exprPM()
	fmt(*strings.Builder)
}

type (
	MDExprPM   struct{ Expr ExprMD }
	PlusExprPM struct {
		Left ExprMD
		Rest ExprPM
	}
	MinusExprPM struct {
		Left ExprMD
		Rest ExprPM
	}
)

func (FuncFact) fact() {}
func (VarFact) fact()  {}
func (NumFact) fact()  {}
func (ExprFact) fact() {}
func (NegFact) fact()  {}

func (FactTerm) term() {}
func (PowTerm) term()  {}

func (TermExprMD) exprMD() {}
func (MultExprMD) exprMD() {}
func (DivExprMD) exprMD()  {}
func (ModExprMD) exprMD()  {}

func (MDExprPM) exprPM()    {}
func (PlusExprPM) exprPM()  {}
func (MinusExprPM) exprPM() {}

func (MDExprPM) statement()    {}
func (PlusExprPM) statement()  {}
func (MinusExprPM) statement() {}
func (*Defvar) statement()     {}
func (*Defun) statement()      {}

func (*Defvar) def() {}
func (*Defun) def()  {}

// String methods render canonical source text which parses back to the same
// tree.

func (f FuncFact) fmt(b *strings.Builder) { f.Call.fmt(b) }
func (f VarFact) fmt(b *strings.Builder)  { b.WriteString(f.Var.Name) }
func (f NumFact) fmt(b *strings.Builder)  { b.WriteString(f.Num.Text) }

func (f ExprFact) fmt(b *strings.Builder) {
	b.WriteByte('(')
	f.Expr.fmt(b)
	b.WriteByte(')')
}

func (f NegFact) fmt(b *strings.Builder) {
	b.WriteByte('-')
	f.Fact.fmt(b)
}

func (t FactTerm) fmt(b *strings.Builder) { t.Fact.fmt(b) }

func (t PowTerm) fmt(b *strings.Builder) {
	t.Base.fmt(b)
	b.WriteString(" ^ ")
	t.Exp.fmt(b)
}

func (e TermExprMD) fmt(b *strings.Builder) { e.Term.fmt(b) }
func (e MultExprMD) fmt(b *strings.Builder) { fmtop(b, e.Term, " * ", e.Rest) }
func (e DivExprMD) fmt(b *strings.Builder)  { fmtop(b, e.Term, " / ", e.Rest) }
func (e ModExprMD) fmt(b *strings.Builder)  { fmtop(b, e.Term, " % ", e.Rest) }

func (e MDExprPM) fmt(b *strings.Builder)    { e.Expr.fmt(b) }
func (e PlusExprPM) fmt(b *strings.Builder)  { fmtop(b, e.Left, " + ", e.Rest) }
func (e MinusExprPM) fmt(b *strings.Builder) { fmtop(b, e.Left, " - ", e.Rest) }

func fmtop(b *strings.Builder, l interface{ fmt(*strings.Builder) }, op string, r interface{ fmt(*strings.Builder) }) {
	l.fmt(b)
	b.WriteString(op)
	r.fmt(b)
}

func (c FunCall) fmt(b *strings.Builder) {
	b.WriteString(c.Name.Name)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b)
	}
	b.WriteByte(')')
}

func (n Num) String() string     { return n.Text }
func (v Var) String() string     { return v.Name }
func (c FunCall) String() string { return str(c) }

func (f FuncFact) String() string { return str(f) }
func (f VarFact) String() string  { return str(f) }
func (f NumFact) String() string  { return str(f) }
func (f ExprFact) String() string { return str(f) }
func (f NegFact) String() string  { return str(f) }

func (t FactTerm) String() string { return str(t) }
func (t PowTerm) String() string  { return str(t) }

func (e TermExprMD) String() string { return str(e) }
func (e MultExprMD) String() string { return str(e) }
func (e DivExprMD) String() string  { return str(e) }
func (e ModExprMD) String() string  { return str(e) }

func (e MDExprPM) String() string    { return str(e) }
func (e PlusExprPM) String() string  { return str(e) }
func (e MinusExprPM) String() string { return str(e) }

func (d *Defvar) String() string {
	var b strings.Builder
	b.WriteString(d.Name.Name)
	b.WriteString(" = ")
	d.Expr.fmt(&b)
	return b.String()
}

func (d *Defun) String() string {
	var b strings.Builder
	d.signature(&b)
	b.WriteString(" = ")
	d.Body.fmt(&b)
	return b.String()
}

// signature writes name(params).
func (d *Defun) signature(b *strings.Builder) {
	b.WriteString(d.Name.Name)
	b.WriteByte('(')
	for i, p := range d.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
	}
	b.WriteByte(')')
}

func str(n interface{ fmt(*strings.Builder) }) string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

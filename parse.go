package calc

import (
	"strconv"

	"github.com/zephyrtronium/calc/parsec"
)

// stmt   = spaces (def | exprpm) spaces EOF
// def    = varname '(' varname { ',' varname } ')' '=' exprpm | varname '=' exprpm
// exprpm = exprmd [ ('+' | '-') exprpm ]
// exprmd = term [ ('*' | '/' | '%') exprmd ]
// term   = fact [ '^' term ]
// fact   = funcall | varname | num | '-' fact | '(' exprpm ')'
// funcall = varname '(' exprpm { ',' exprpm } ')'
// num    = digit { digit } [ '.' digit { digit } ]
// varname = (alpha | '_') { alpha | digit | '_' }
//
// Spaces and tabs may appear around operators, commas, and inside parentheses.
// Each optional extension is rolled back as a unit, so "2 ^" parses as 2 with
// " ^" left over for EOF to reject.

// Parse parses a single statement. The whole input must match. A returned
// error is a *ParseError.
func Parse(src string) (Statement, error) {
	p := StmtRule().OnFailure(func(err *parsec.Error) *parsec.Error {
		return &parsec.Error{Msg: strconv.Quote(src) + ": " + err.Msg, Pos: err.Pos}
	})
	r := p.Parse(parsec.NewCharStream(src))
	if !r.OK() {
		return nil, &ParseError{Input: src, Msg: r.Err.Msg, Position: r.Err.Pos}
	}
	return r.Value, nil
}

// StmtRule parses a definition or an expression spanning the entire stream.
func StmtRule() parsec.Parser[rune, Statement] {
	def := parsec.Map(DefRule(), func(d Def) Statement { return d })
	expr := func() parsec.Parser[rune, Statement] {
		return parsec.Map(ExprPMRule(), func(e ExprPM) Statement { return e })
	}
	body := spaced(func() parsec.Parser[rune, Statement] {
		return def.Rollback().Or(expr)
	})
	return parsec.FlatMap(body, func(s Statement) parsec.Parser[rune, Statement] {
		end := spaced(parsec.EOF[rune])
		return parsec.Map(end, func(struct{}) Statement { return s })
	})
}

// DefRule parses a function or variable definition.
func DefRule() parsec.Parser[rune, Def] {
	defun := parsec.FlatMap(Varname(), func(name Var) parsec.Parser[rune, Def] {
		open := parsec.Bind(parsec.Char('('), parsec.Spaces)
		params := parsec.Bind(open, func() parsec.Parser[rune, []Var] {
			return parsec.SepBy1(Varname(), comma)
		})
		return parsec.FlatMap(params, func(ps []Var) parsec.Parser[rune, Def] {
			return parsec.Bind(sym(')'), func() parsec.Parser[rune, Def] {
				return parsec.Bind(parsec.Char('='), func() parsec.Parser[rune, Def] {
					return spaced(func() parsec.Parser[rune, Def] {
						return parsec.Map(ExprPMRule(), func(body ExprPM) Def {
							return &Defun{Name: name, Params: ps, Body: body}
						})
					})
				})
			})
		})
	})
	defvar := func() parsec.Parser[rune, Def] {
		return parsec.FlatMap(Varname(), func(name Var) parsec.Parser[rune, Def] {
			return parsec.Bind(sym('='), func() parsec.Parser[rune, Def] {
				return parsec.Map(ExprPMRule(), func(e ExprPM) Def {
					return &Defvar{Name: name, Expr: e}
				})
			})
		})
	}
	return defun.Rollback().Or(defvar)
}

// ExprPMRule parses an additive expression.
func ExprPMRule() parsec.Parser[rune, ExprPM] {
	return parsec.FlatMap(ExprMDRule(), func(l ExprMD) parsec.Parser[rune, ExprPM] {
		ext := parsec.FlatMap(op("+-"), func(o rune) parsec.Parser[rune, ExprPM] {
			return parsec.Map(ExprPMRule(), func(r ExprPM) ExprPM {
				if o == '+' {
					return PlusExprPM{Left: l, Rest: r}
				}
				return MinusExprPM{Left: l, Rest: r}
			})
		})
		return ext.Rollback().Or(func() parsec.Parser[rune, ExprPM] {
			return parsec.Success[rune, ExprPM](MDExprPM{Expr: l})
		})
	})
}

// ExprMDRule parses a multiplicative expression.
func ExprMDRule() parsec.Parser[rune, ExprMD] {
	return parsec.FlatMap(TermRule(), func(t Term) parsec.Parser[rune, ExprMD] {
		ext := parsec.FlatMap(op("*/%"), func(o rune) parsec.Parser[rune, ExprMD] {
			return parsec.Map(ExprMDRule(), func(r ExprMD) ExprMD {
				switch o {
				case '*':
					return MultExprMD{Term: t, Rest: r}
				case '/':
					return DivExprMD{Term: t, Rest: r}
				default:
					return ModExprMD{Term: t, Rest: r}
				}
			})
		})
		return ext.Rollback().Or(func() parsec.Parser[rune, ExprMD] {
			return parsec.Success[rune, ExprMD](TermExprMD{Term: t})
		})
	})
}

// TermRule parses a power. The exponent recurses directly into TermRule, so
// 2^3^2 is 2^(3^2).
func TermRule() parsec.Parser[rune, Term] {
	return parsec.FlatMap(FactRule(), func(base Fact) parsec.Parser[rune, Term] {
		pow := parsec.Map(parsec.Bind(sym('^'), TermRule), func(exp Term) Term {
			return PowTerm{Base: base, Exp: exp}
		})
		return pow.Rollback().Or(func() parsec.Parser[rune, Term] {
			return parsec.Success[rune, Term](FactTerm{Fact: base})
		})
	})
}

// FactRule parses a function call, variable, number, negation, or
// parenthesized expression, in that order.
func FactRule() parsec.Parser[rune, Fact] {
	call := parsec.Map(FunCallRule(), func(c FunCall) Fact { return FuncFact{Call: c} })
	vr := func() parsec.Parser[rune, Fact] {
		return parsec.Map(Varname(), func(v Var) Fact { return VarFact{Var: v} })
	}
	num := func() parsec.Parser[rune, Fact] {
		return parsec.Map(NumRule(), func(n Num) Fact { return NumFact{Num: n} })
	}
	neg := func() parsec.Parser[rune, Fact] {
		return parsec.Bind(parsec.Char('-').Rollback(), func() parsec.Parser[rune, Fact] {
			return parsec.Map(spaced(FactRule), func(f Fact) Fact { return NegFact{Fact: f} })
		})
	}
	paren := func() parsec.Parser[rune, Fact] {
		return parsec.Bind(parsec.Char('('), func() parsec.Parser[rune, Fact] {
			return parsec.FlatMap(spaced(ExprPMRule), func(e ExprPM) parsec.Parser[rune, Fact] {
				return parsec.Map(sym(')'), func(rune) Fact { return ExprFact{Expr: e} })
			})
		})
	}
	return call.Rollback().
		Or(func() parsec.Parser[rune, Fact] { return vr().Rollback() }).
		Or(func() parsec.Parser[rune, Fact] { return num().Rollback() }).
		Or(neg).
		Or(paren)
}

// FunCallRule parses a call with at least one argument. No space may separate
// the name from the open parenthesis.
func FunCallRule() parsec.Parser[rune, FunCall] {
	return parsec.FlatMap(Varname(), func(name Var) parsec.Parser[rune, FunCall] {
		open := parsec.Bind(parsec.Char('('), parsec.Spaces)
		return parsec.Bind(open, func() parsec.Parser[rune, FunCall] {
			return parsec.FlatMap(parsec.SepBy1(ExprPMRule(), comma), func(args []ExprPM) parsec.Parser[rune, FunCall] {
				return parsec.Map(sym(')'), func(rune) FunCall {
					return FunCall{Name: name, Args: args}
				})
			})
		})
	})
}

// Varname parses an identifier: a letter or underscore followed by letters,
// digits, and underscores.
func Varname() parsec.Parser[rune, Var] {
	first := parsec.Alphabet().Rollback().Or(underscore)
	rest := parsec.ManyStr(parsec.AlphaNum().Rollback().Or(underscore))
	return parsec.FlatMap(first, func(c rune) parsec.Parser[rune, Var] {
		return parsec.Map(rest, func(s string) Var { return Var{Name: string(c) + s} })
	})
}

// NumRule parses an integer with an optional fractional part. A dot without
// digits after it is left unconsumed.
func NumRule() parsec.Parser[rune, Num] {
	return parsec.FlatMap(Integer(), func(i Num) parsec.Parser[rune, Num] {
		frac := parsec.Bind(parsec.Char('.'), Integer)
		return parsec.Map(frac, func(f Num) Num {
			return Num{Text: i.Text + "." + f.Text}
		}).Rollback().Or(func() parsec.Parser[rune, Num] {
			return parsec.Success[rune](i)
		})
	})
}

// Integer parses one or more digits.
func Integer() parsec.Parser[rune, Num] {
	return parsec.Map(parsec.ManyStr1(parsec.Digit()), func(s string) Num { return Num{Text: s} })
}

func underscore() parsec.Parser[rune, rune] {
	return parsec.Char('_')
}

// spaced skips spaces before running the parser p makes.
func spaced[T any](p func() parsec.Parser[rune, T]) parsec.Parser[rune, T] {
	return parsec.Bind(parsec.Spaces(), p)
}

// sym parses c with optional surrounding spaces.
func sym(c rune) parsec.Parser[rune, rune] {
	return op(string(c))
}

// op parses one of the operator characters in set with optional surrounding
// spaces.
func op(set string) parsec.Parser[rune, rune] {
	return spaced(func() parsec.Parser[rune, rune] {
		return parsec.FlatMap(parsec.OneOf(set), func(o rune) parsec.Parser[rune, rune] {
			return parsec.Map(parsec.Spaces(), func(string) rune { return o })
		})
	})
}

func comma() parsec.Parser[rune, rune] {
	return sym(',')
}

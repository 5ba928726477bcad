package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/zephyrtronium/calc"
)

// printer writes results and errors.
type printer struct {
	out, errs io.Writer
	verb      string
	echo      bool

	value, def, fail, echoc *color.Color
}

func newPrinter(out, errs io.Writer, verb string, echo bool) *printer {
	return &printer{
		out:   out,
		errs:  errs,
		verb:  verb + "\n",
		echo:  echo,
		value: color.New(color.FgCyan),
		def:   color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		echoc: color.New(color.Faint),
	}
}

// run evaluates src and prints the outcome, reporting whether it succeeded.
func (p *printer) run(s *calc.Session, src string) bool {
	st, err := calc.Parse(src)
	if err != nil {
		p.error(err)
		return false
	}
	if p.echo {
		p.echoc.Fprintf(p.out, "%v : ", st)
	}
	r, err := s.Exec(st)
	if err != nil {
		p.error(err)
		return false
	}
	p.result(r)
	return true
}

func (p *printer) result(r calc.Result) {
	switch {
	case r.Def != nil:
		p.def.Fprintln(p.out, r.Msg)
	case r.Exact != nil:
		p.value.Fprint(p.out, fmt.Sprintf(p.verb, r.Exact))
	default:
		p.value.Fprint(p.out, fmt.Sprintf(p.verb, r.Value))
	}
}

func (p *printer) error(err error) {
	p.fail.Fprintln(p.errs, err)
}

// info prints a message about the REPL itself.
func (p *printer) info(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

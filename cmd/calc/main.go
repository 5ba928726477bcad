package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, cfgname, colormode, history string
		with                                      [][2]string
		echo                                      bool
		prec                                      int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one statement per line (- for stdin)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", 0, "precision of calculations in bits (53 or less for float64)")
	flag.BoolVar(&echo, "echo", false, "print each statement in canonical form before its result")
	flag.StringVar(&cfgname, "config", "", "config file (default ~/.calc.yaml)")
	flag.StringVar(&colormode, "color", "auto", "color output: auto, always, or never")
	flag.StringVar(&history, "history", "", "REPL history file, or - for none (default ~/.calc_history)")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	var cfg *config.Config
	var err error
	if cfgname != "" {
		cfg, err = config.LoadConfig(cfgname)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		log.Fatal(err)
	}
	// Flags override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fmt":
			cfg.Format = verb
		case "p":
			cfg.Prec = uint(prec)
		case "color":
			cfg.Color = colormode
		case "history":
			cfg.History = history
		}
	})
	switch cfg.Color {
	case config.ColorAuto, config.ColorAlways, config.ColorNever: // ok
	default:
		log.Fatalf("unknown color mode %q", cfg.Color)
	}
	color.NoColor = !useColor(cfg.Color, os.Stdout)

	opts, err := given(cfg.Options(), with)
	if err != nil {
		log.Fatal(err)
	}
	s := calc.NewSession(opts...)
	for _, src := range cfg.Prelude {
		if _, err := s.Evaluate(src); err != nil {
			log.Fatalf("prelude: %v", err)
		}
	}

	out := newPrinter(os.Stdout, os.Stderr, cfg.Format, echo)
	if flag.NArg() > 0 {
		ok := true
		for _, arg := range flag.Args() {
			ok = out.run(s, arg) && ok
		}
		if !ok {
			os.Exit(1)
		}
		return
	}

	in, err := infile(inname)
	if err != nil {
		log.Fatal(err)
	}
	if in == nil {
		os.Exit(repl(s, out, cfg.History))
	}
	defer in.Close()
	if !batch(s, out, in) {
		os.Exit(1)
	}
}

// given evaluates -given definitions and adds them to opts. Values keep the
// session's precision.
func given(opts []calc.Option, with [][2]string) ([]calc.Option, error) {
	for _, d := range with {
		nm, vl := d[0], d[1]
		if !config.IsName(nm) {
			return nil, fmt.Errorf("%q is not a valid variable name", nm)
		}
		r, err := calc.Evaluate(vl, opts...)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", nm, err)
		}
		if r.Def != nil {
			return nil, fmt.Errorf("setting %s: %q is not an expression", nm, vl)
		}
		if r.Exact != nil {
			opts = append(opts, calc.SetExactVar(nm, r.Exact))
		} else {
			opts = append(opts, calc.SetVar(nm, r.Value))
		}
	}
	return opts, nil
}

// infile opens the batch input. It returns nil for an interactive session.
func infile(inname string) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", !isTerminal(os.Stdin):
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}

// batch evaluates each non-blank line of in. It reports whether every line
// succeeded.
func batch(s *calc.Session, out *printer, in io.Reader) bool {
	ok := true
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ok = out.run(s, line) && ok
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
	return ok
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// useColor decides whether to color output to f. Automatic mode follows the
// NO_COLOR convention: https://no-color.org/
func useColor(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(f)
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/calc"
)

const (
	prompt = "calc> "
	banner = "calc: type an expression or definition, or :help"
)

// Input rejections.
var (
	errEmpty    = errors.New("式が入力されていません。")
	errNonASCII = errors.New("全角文字は使用できません。")
)

// repl runs an interactive session and returns the exit status.
func repl(s *calc.Session, out *printer, history string) int {
	fmt.Fprintln(out.out, banner)
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if history != "" && history != "-" {
		if f, err := os.Open(history); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(history); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	sh := shell{s: s, out: out}
	for {
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out.out)
			return 0
		case err != nil:
			out.error(err)
			return 1
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if sh.handle(line) {
			return 0
		}
	}
}

// shell interprets REPL lines.
type shell struct {
	s   *calc.Session
	out *printer
}

// handle evaluates one line of input or runs a command. It returns true when
// the user asks to quit.
func (sh *shell) handle(line string) bool {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, ":") {
		return sh.command(line)
	}
	if err := checkInput(line); err != nil {
		sh.out.error(err)
		return false
	}
	sh.out.run(sh.s, line)
	return false
}

// checkInput rejects lines the calculator cannot possibly accept before they
// reach the parser.
func checkInput(line string) error {
	if line == "" {
		return errEmpty
	}
	for _, r := range line {
		if r > unicode.MaxASCII {
			return errNonASCII
		}
	}
	return nil
}

func (sh *shell) command(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h", ":?":
		sh.out.info("%s", help)
	case ":clear":
		sh.s.Clear()
		sh.out.info("定義をすべて削除しました。")
	case ":defs":
		for _, d := range sh.s.Definitions() {
			sh.out.info("%s", d)
		}
	case ":save":
		if arg == "" {
			sh.out.error(errors.New(":save にはファイル名が必要です"))
			break
		}
		if err := save(sh.s, arg); err != nil {
			sh.out.error(err)
			break
		}
		sh.out.info("%s に保存しました。", arg)
	case ":load":
		if arg == "" {
			sh.out.error(errors.New(":load にはファイル名が必要です"))
			break
		}
		if err := load(sh.s, sh.out, arg); err != nil {
			sh.out.error(err)
		}
	default:
		sh.out.error(fmt.Errorf("不明なコマンドです: %s (:help で一覧を表示)", cmd))
	}
	return false
}

const help = `expressions:  2 + 3 * 4, (1 + 2) ^ 2, sin(PI / 2), 11 % 3
definitions:  x = 5, f(x, y) = x * y + 1
commands:
  :help         show this help
  :defs         list definitions
  :clear        remove all definitions
  :save FILE    write definitions to FILE
  :load FILE    evaluate each line of FILE
  :quit         exit`

// save writes the session's definitions to a file, one per line.
func save(s *calc.Session, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, d := range s.Definitions() {
		w.WriteString(d)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// load evaluates each non-blank line of a file in the session. Evaluation
// errors are reported with their line numbers and do not stop the load.
func load(s *calc.Session, out *printer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		r, err := s.Evaluate(line)
		if err != nil {
			out.error(fmt.Errorf("%s:%d: %w", name, n, err))
			continue
		}
		out.result(r)
	}
	return sc.Err()
}

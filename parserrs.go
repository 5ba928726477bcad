package calc

import (
	"strconv"

	"github.com/zephyrtronium/calc/parsec"
)

// ParseError is an error indicating input that does not match the grammar. It
// implements InputError.
type ParseError struct {
	// Input is the complete source text.
	Input string
	// Msg describes the failed match. It begins with the quoted input.
	Msg string
	// Position is where the last attempted match failed.
	Position parsec.Position
}

func (err *ParseError) Error() string {
	return errpos(err.Pos(), err.Msg)
}

// Pos returns the 1-based character offset of the failure.
func (err *ParseError) Pos() int {
	return err.Position.Offset + 1
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError. Evaluation errors carry no position.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based number of runes up
	// to and including the one where matching failed.
	Pos() int
}

var _ InputError = (*ParseError)(nil)

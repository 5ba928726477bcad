package parsec

import (
	"strconv"
	"strings"
)

// Position is a location in a character stream.
type Position struct {
	// Row and Col are the 1-based line and column.
	Row, Col int
	// Offset is the 0-based number of runes preceding the position.
	Offset int
	// Line is the full text of the line containing the position, without its
	// terminating newline.
	Line string
}

func (p Position) String() string {
	return strconv.Itoa(p.Row) + ":" + strconv.Itoa(p.Col)
}

// Stream is an immutable cursor over a sequence of symbols. Advancing returns a
// new cursor; earlier cursors remain valid.
type Stream[S any] interface {
	// Head returns the current symbol, or false at the end of the stream.
	Head() (S, bool)
	// Tail returns the stream advanced past the current symbol. At the end of
	// the stream, Tail returns the stream itself.
	Tail() Stream[S]
	// Position returns the location of the current symbol.
	Position() Position
}

// charStream is a Stream of runes from a string.
type charStream struct {
	*charSource
	off      int
	row, col int
}

// charSource is the text shared by every cursor over one string.
type charSource struct {
	src []rune
	// lines holds the text of each row, without line terminators.
	lines []string
}

// NewCharStream creates a stream over the runes of src.
func NewCharStream(src string) Stream[rune] {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &charStream{charSource: &charSource{src: []rune(src), lines: lines}, row: 1, col: 1}
}

func (s *charStream) Head() (rune, bool) {
	if s.off >= len(s.src) {
		return 0, false
	}
	return s.src[s.off], true
}

func (s *charStream) Tail() Stream[rune] {
	if s.off >= len(s.src) {
		return s
	}
	n := charStream{charSource: s.charSource, off: s.off + 1, row: s.row, col: s.col + 1}
	if s.src[s.off] == '\n' {
		n.row++
		n.col = 1
	}
	return &n
}

func (s *charStream) Position() Position {
	return Position{
		Row:    s.row,
		Col:    s.col,
		Offset: s.off,
		Line:   s.lines[s.row-1],
	}
}

// String returns the unconsumed remainder of the stream.
func (s *charStream) String() string {
	return string(s.src[s.off:])
}

package host

import (
	"errors"
	"fmt"
)

// Errors returned by host buffer operations.
var (
	ErrReadOnly   = errors.New("buffer is read-only")
	ErrOutOfRange = errors.New("offset out of range")
)

// Offset is a byte position in a buffer.
type Offset = int

// Point is a 0-indexed line and byte column.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// LineOf returns the line containing off.
func LineOf(r Reader, off Offset) int {
	return r.OffsetToPoint(off).Line
}

// Clamp limits off to [0, Len()].
func Clamp(r Reader, off Offset) Offset {
	if off < 0 {
		return 0
	}
	if n := r.Len(); off > n {
		return n
	}
	return off
}

// LineText returns the content of line without its terminator.
func LineText(r Reader, line int) string {
	s, err := r.TextRange(r.LineStart(line), r.LineEnd(line))
	if err != nil {
		return ""
	}
	return s
}

// NextLineStart returns the start of the line after line, or the buffer
// length for the last line. Deleting [LineStart(a), NextLineStart(b))
// removes lines a..b with their terminators.
func NextLineStart(r Reader, line int) Offset {
	if line+1 < r.LineCount() {
		return r.LineStart(line + 1)
	}
	return r.Len()
}

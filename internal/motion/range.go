package motion

import (
	"errors"
	"fmt"

	"github.com/dshills/evil/internal/host"
)

// ErrNoTarget is returned when a search or text object finds nothing.
var ErrNoTarget = errors.New("motion has no target")

// Range is a resolved motion. Start is where the motion began and End is
// its target, so End may precede Start.
type Range struct {
	Start host.Offset
	End   host.Offset

	// Inclusive means the character at the later end belongs to the range.
	Inclusive bool

	// Linewise means the range covers whole lines.
	Linewise bool
}

// String returns a debug representation of the range.
func (r Range) String() string {
	kind := "exclusive"
	switch {
	case r.Linewise:
		kind = "linewise"
	case r.Inclusive:
		kind = "inclusive"
	}
	return fmt.Sprintf("[%d,%d %s]", r.Start, r.End, kind)
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.Start == r.End && !r.Inclusive && !r.Linewise
}

// Span returns the ordered half-open byte span the range covers. A
// linewise range expands to whole lines including the terminator of the
// last one; an inclusive range takes in the grapheme at its later end.
func (r Range) Span(buf host.Reader) (start, end host.Offset) {
	start, end = host.Clamp(buf, r.Start), host.Clamp(buf, r.End)
	if start > end {
		start, end = end, start
	}

	if r.Linewise {
		first := host.LineOf(buf, start)
		last := host.LineOf(buf, end)
		return buf.LineStart(first), host.NextLineStart(buf, last)
	}

	if r.Inclusive {
		end = host.NextGrapheme(buf, end)
	}
	return start, end
}

// Lines returns the first and last line the range touches.
func (r Range) Lines(buf host.Reader) (first, last int) {
	start, end := r.Span(buf)
	first = host.LineOf(buf, start)
	last = first
	if end > start {
		last = host.LineOf(buf, end-1)
	}
	return first, last
}

package motion

import (
	"fmt"
	"math"

	"github.com/rivo/uniseg"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input/vim"
)

const (
	noGoal  = -1
	goalEOL = math.MaxInt
)

// Request describes one motion to resolve.
type Request struct {
	Motion vim.Motion

	// Count is the effective count; values below 1 mean 1.
	Count int

	// CountExplicit is set when the user typed a count. gg and G use it
	// as a line number.
	CountExplicit bool

	// Char is the argument of f, F, t and T.
	Char rune

	// Operator is the operator the motion feeds, or OpNone for a cursor
	// move. Moves land on a character; operator targets may sit on a line
	// end.
	Operator vim.Operator

	// DeleteToWordEnd makes dw stop at the end of the word under the
	// cursor, the way cw always does.
	DeleteToWordEnd bool
}

// Resolver resolves motions for one view.
type Resolver struct {
	find    Find
	hasFind bool

	// goal is the grapheme column vertical motions aim for.
	goal int
}

// NewResolver creates a resolver with no search history.
func NewResolver() *Resolver {
	return &Resolver{goal: noGoal}
}

// LastFind returns the last f, F, t or T search.
func (r *Resolver) LastFind() (Find, bool) {
	return r.find, r.hasFind
}

// ResetGoal forgets the column vertical motions aim for. Call it after the
// cursor moves by anything other than a motion.
func (r *Resolver) ResetGoal() {
	r.goal = noGoal
}

// Resolve applies req starting at from. Motions that run out of text clamp
// at the boundary. ErrNoTarget is returned only by searches that find
// nothing.
func (r *Resolver) Resolve(buf host.Reader, from host.Offset, req Request) (Range, error) {
	from = host.Clamp(buf, from)
	m := req.Motion
	count := max(req.Count, 1)
	if m.CountPolicy() == vim.CountIgnored {
		count = 1
	}
	pending := req.Operator != vim.OpNone
	line := host.LineOf(buf, from)

	rng := Range{
		Start:     from,
		Inclusive: m.Inclusive(),
		Linewise:  m.Linewise(),
	}
	target := from
	goal := noGoal

	switch m {
	case vim.MotionLeft:
		target = repeatStep(target, count, func(off host.Offset) host.Offset {
			return host.PrevGrapheme(buf, off)
		})

	case vim.MotionRight:
		target = repeatStep(target, count, func(off host.Offset) host.Offset {
			return host.NextGrapheme(buf, off)
		})

	case vim.MotionUp, vim.MotionDown:
		delta := count
		if m == vim.MotionUp {
			delta = -count
		}
		goal = r.goal
		if goal == noGoal {
			goal = graphemeColumn(buf, from)
		}
		target = columnOffset(buf, clampLine(buf, line+delta), goal)

	case vim.MotionWordForward, vim.MotionBigWordForward:
		big := m == vim.MotionBigWordForward
		if pending && r.stopsAtWordEnd(req) && classAt(buf, from, big) != blank {
			target = wordEnd(buf, target, big, true)
			target = repeatStep(target, count-1, func(off host.Offset) host.Offset {
				return wordEnd(buf, off, big, false)
			})
			rng.Inclusive = true
			break
		}
		for i := 0; i < count; i++ {
			stepStart := target
			if target = wordForward(buf, target, big); target == stepStart {
				break
			}
			if pending && i == count-1 {
				// The last word moved over never drags in the next line.
				if end := buf.LineEnd(host.LineOf(buf, stepStart)); target > end && end > stepStart {
					target = end
				}
			}
		}

	case vim.MotionWordEnd, vim.MotionBigWordEnd:
		big := m == vim.MotionBigWordEnd
		target = repeatStep(target, count, func(off host.Offset) host.Offset {
			return wordEnd(buf, off, big, false)
		})

	case vim.MotionWordBackward, vim.MotionBigWordBackward:
		big := m == vim.MotionBigWordBackward
		target = repeatStep(target, count, func(off host.Offset) host.Offset {
			return wordBackward(buf, off, big)
		})

	case vim.MotionLineStart:
		target = buf.LineStart(line)

	case vim.MotionFirstNonBlank:
		target = firstNonBlank(buf, line)

	case vim.MotionLineEnd:
		target = host.LastGrapheme(buf, clampLine(buf, line+count-1))
		goal = goalEOL

	case vim.MotionNextLineStart:
		target = firstNonBlank(buf, clampLine(buf, line+count))

	case vim.MotionPrevLineStart:
		target = firstNonBlank(buf, clampLine(buf, line-count))

	case vim.MotionDocumentStart, vim.MotionDocumentEnd:
		dest := 0
		if m == vim.MotionDocumentEnd {
			dest = lastLine(buf)
		}
		if req.CountExplicit {
			dest = clampLine(buf, count-1)
		}
		target = firstNonBlank(buf, dest)

	case vim.MotionFindForward, vim.MotionFindBackward, vim.MotionTillForward, vim.MotionTillBackward:
		r.find = Find{Motion: m, Char: req.Char}
		r.hasFind = true
		var err error
		if target, err = findChar(buf, from, m, req.Char, count, false); err != nil {
			return rng, err
		}

	case vim.MotionRepeatFind, vim.MotionRepeatFindReverse:
		if !r.hasFind {
			return rng, ErrNoTarget
		}
		fm := r.find.Motion
		if m == vim.MotionRepeatFindReverse {
			fm = fm.Reverse()
		}
		rng.Inclusive = fm.Inclusive()
		var err error
		if target, err = findChar(buf, from, fm, r.find.Char, count, true); err != nil {
			return rng, err
		}

	case vim.MotionParagraphForward:
		target = paragraphForward(buf, line, count)

	case vim.MotionParagraphBackward:
		target = paragraphBackward(buf, line, count)

	case vim.MotionMatchPair:
		var err error
		if target, err = matchPair(buf, from); err != nil {
			return rng, err
		}

	case vim.MotionLine:
		target = buf.LineStart(clampLine(buf, line+count-1))
		rng.Start = buf.LineStart(line)

	default:
		return rng, fmt.Errorf("resolve %s: %w", m, ErrNoTarget)
	}

	if !pending {
		r.goal = goal
		rng.End = NormalPosition(buf, target)
		return rng, nil
	}

	rng.End = target
	return adjustExclusive(buf, rng), nil
}

// repeatStep applies step count times, stopping early once it no longer
// moves.
func repeatStep(off host.Offset, count int, step func(host.Offset) host.Offset) host.Offset {
	for range count {
		next := step(off)
		if next == off {
			break
		}
		off = next
	}
	return off
}

// stopsAtWordEnd reports whether w under this operator acts like e.
func (r *Resolver) stopsAtWordEnd(req Request) bool {
	switch req.Operator {
	case vim.OpChange:
		return true
	case vim.OpDelete:
		return req.DeleteToWordEnd
	}
	return false
}

// adjustExclusive applies the exclusive-motion rule: a forward exclusive
// motion ending at the start of a later line ends at the previous line end
// instead, and becomes linewise when it started at or before the first
// non-blank of its line.
func adjustExclusive(buf host.Reader, rng Range) Range {
	if rng.Inclusive || rng.Linewise || rng.End <= rng.Start {
		return rng
	}
	startLine := host.LineOf(buf, rng.Start)
	endLine := host.LineOf(buf, rng.End)
	if endLine == startLine || rng.End != buf.LineStart(endLine) {
		return rng
	}

	rng.End = buf.LineEnd(endLine - 1)
	if rng.Start <= firstNonBlank(buf, startLine) {
		rng.Linewise = true
	}
	return rng
}

func paragraphForward(buf host.Reader, line, count int) host.Offset {
	last := lastLine(buf)
	for i := 0; i < count && line < last; i++ {
		for line < last && emptyLine(buf, line) {
			line++
		}
		for line < last && !emptyLine(buf, line) {
			line++
		}
	}
	if line == last && !emptyLine(buf, line) {
		return buf.LineEnd(line)
	}
	return buf.LineStart(line)
}

func paragraphBackward(buf host.Reader, line, count int) host.Offset {
	for i := 0; i < count && line > 0; i++ {
		for line > 0 && emptyLine(buf, line) {
			line--
		}
		for line > 0 && !emptyLine(buf, line) {
			line--
		}
	}
	return buf.LineStart(line)
}

// graphemeColumn counts the grapheme clusters between the line start and
// off.
func graphemeColumn(buf host.Reader, off host.Offset) int {
	start := buf.LineStart(host.LineOf(buf, off))
	s, err := buf.TextRange(start, off)
	if err != nil {
		return 0
	}
	return uniseg.GraphemeClusterCount(s)
}

// columnOffset steps goal grapheme clusters into line, stopping at its end.
func columnOffset(buf host.Reader, line, goal int) host.Offset {
	off, end := buf.LineStart(line), buf.LineEnd(line)
	for i := 0; i < goal && off < end; i++ {
		off = host.NextGrapheme(buf, off)
	}
	return off
}

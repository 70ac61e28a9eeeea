package motion

import (
	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input/vim"
)

// Find is a remembered character search.
type Find struct {
	Motion vim.Motion
	Char   rune
}

// findChar searches the current line for the count-th occurrence of ch.
// Repeating a till search skips a match directly next to the cursor so
// that ; makes progress.
func findChar(buf host.Reader, from host.Offset, m vim.Motion, ch rune, count int, repeat bool) (host.Offset, error) {
	line := host.LineOf(buf, from)
	start, end := buf.LineStart(line), buf.LineEnd(line)

	switch m {
	case vim.MotionFindForward, vim.MotionTillForward:
		off := next(buf, from)
		if m == vim.MotionTillForward && repeat && off < end {
			if r, _ := buf.RuneAt(off); r == ch {
				off = next(buf, off)
			}
		}
		found := -1
		for i := 0; i < count; i++ {
			found = -1
			for off < end {
				r, size := buf.RuneAt(off)
				if size == 0 {
					break
				}
				off += size
				if r == ch {
					found = off - size
					break
				}
			}
			if found < 0 {
				return from, ErrNoTarget
			}
		}
		if m == vim.MotionTillForward {
			return host.PrevGrapheme(buf, found), nil
		}
		return found, nil

	case vim.MotionFindBackward, vim.MotionTillBackward:
		off := from
		if m == vim.MotionTillBackward && repeat && off > start {
			if r, _ := buf.RuneAt(prev(buf, off)); r == ch {
				off = prev(buf, off)
			}
		}
		found := -1
		for i := 0; i < count; i++ {
			found = -1
			for off > start {
				off = prev(buf, off)
				if r, _ := buf.RuneAt(off); r == ch {
					found = off
					break
				}
			}
			if found < 0 {
				return from, ErrNoTarget
			}
		}
		if m == vim.MotionTillBackward {
			return host.NextGrapheme(buf, found), nil
		}
		return found, nil
	}
	return from, ErrNoTarget
}

// pairFor returns the partner of a bracket and whether the search for it
// runs forward.
func pairFor(r rune) (match rune, forward, ok bool) {
	switch r {
	case '(':
		return ')', true, true
	case ')':
		return '(', false, true
	case '[':
		return ']', true, true
	case ']':
		return '[', false, true
	case '{':
		return '}', true, true
	case '}':
		return '{', false, true
	}
	return 0, false, false
}

// matchPair finds the first bracket at or after the cursor on its line and
// returns the position of its partner.
func matchPair(buf host.Reader, from host.Offset) (host.Offset, error) {
	end := buf.LineEnd(host.LineOf(buf, from))
	for off := from; off < end; {
		r, size := buf.RuneAt(off)
		if size == 0 {
			break
		}
		if _, _, ok := pairFor(r); ok {
			return matchBracket(buf, off, r)
		}
		off += size
	}
	return from, ErrNoTarget
}

// matchBracket returns the partner of the bracket at off, honouring
// nesting across lines.
func matchBracket(buf host.Reader, off host.Offset, bracket rune) (host.Offset, error) {
	match, forward, ok := pairFor(bracket)
	if !ok {
		return off, ErrNoTarget
	}

	depth := 1
	if forward {
		n := buf.Len()
		for pos := next(buf, off); pos < n; pos = next(buf, pos) {
			switch r, _ := buf.RuneAt(pos); r {
			case bracket:
				depth++
			case match:
				depth--
				if depth == 0 {
					return pos, nil
				}
			}
		}
		return off, ErrNoTarget
	}

	for pos := off; pos > 0; {
		pos = prev(buf, pos)
		switch r, _ := buf.RuneAt(pos); r {
		case bracket:
			depth++
		case match:
			depth--
			if depth == 0 {
				return pos, nil
			}
		}
	}
	return off, ErrNoTarget
}

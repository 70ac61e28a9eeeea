package motion

import "github.com/dshills/evil/internal/host"

// wordForward returns the start of the next word. An empty line counts as
// a word. At the last word it returns the buffer length.
func wordForward(buf host.Reader, off host.Offset, big bool) host.Offset {
	n := buf.Len()
	if off >= n {
		return n
	}
	start := off

	if c := classAt(buf, off, big); c != blank {
		for off < n && classAt(buf, off, big) == c {
			off = next(buf, off)
		}
	}
	for off < n && classAt(buf, off, big) == blank {
		if off != start && emptyLineAt(buf, off) {
			break
		}
		off = next(buf, off)
	}
	return off
}

// wordEnd returns the last character of the current or next word. With
// stop set, a cursor already on the last character of a word stays there
// instead of moving on to the next word.
func wordEnd(buf host.Reader, off host.Offset, big, stop bool) host.Offset {
	n := buf.Len()
	if n == 0 {
		return 0
	}
	c := classAt(buf, off, big)
	off = next(buf, off)
	if off >= n {
		return lastRune(buf)
	}

	if c != blank && classAt(buf, off, big) == c {
		return runEnd(buf, off, c, big)
	}
	if stop && c != blank {
		return prev(buf, off)
	}

	for classAt(buf, off, big) == blank {
		if stop && emptyLineAt(buf, off) {
			return off
		}
		off = next(buf, off)
		if off >= n {
			return lastRune(buf)
		}
	}
	return runEnd(buf, off, classAt(buf, off, big), big)
}

// runEnd returns the last character of the run of class c containing off.
func runEnd(buf host.Reader, off host.Offset, c host.CharClass, big bool) host.Offset {
	n := buf.Len()
	for {
		nx := next(buf, off)
		if nx >= n || classAt(buf, nx, big) != c {
			return off
		}
		off = nx
	}
}

// wordBackward returns the start of the current or previous word. An
// empty line counts as a word.
func wordBackward(buf host.Reader, off host.Offset, big bool) host.Offset {
	off = host.Clamp(buf, off)
	if off == 0 {
		return 0
	}

	off = prev(buf, off)
	for classAt(buf, off, big) == blank {
		if emptyLineAt(buf, off) || off == 0 {
			return off
		}
		off = prev(buf, off)
	}

	c := classAt(buf, off, big)
	for off > 0 {
		p := prev(buf, off)
		if classAt(buf, p, big) != c {
			break
		}
		off = p
	}
	return off
}

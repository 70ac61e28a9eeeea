package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/evil/internal/host"
)

// blank is the class of whitespace and line terminators; words never
// contain it.
const blank = host.ClassWhitespace

// classAt classifies the rune at off, folding punctuation into words for
// WORD motions. Line terminators and the end of the buffer are blank.
func classAt(buf host.Reader, off host.Offset, big bool) host.CharClass {
	r, size := buf.RuneAt(off)
	if size == 0 {
		return blank
	}
	c := buf.CharClass(r)
	if c == host.ClassEOL {
		return blank
	}
	if big {
		return host.BigWordClass(c)
	}
	return c
}

// next returns the offset of the rune after off, or Len at the end.
func next(buf host.Reader, off host.Offset) host.Offset {
	_, size := buf.RuneAt(off)
	if size == 0 {
		return buf.Len()
	}
	return off + size
}

// prev returns the offset of the rune before off, or 0 at the start.
func prev(buf host.Reader, off host.Offset) host.Offset {
	if off <= 0 {
		return 0
	}
	from := max(off-utf8.UTFMax, 0)
	s, err := buf.TextRange(from, off)
	if err != nil {
		return off - 1
	}
	_, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return off - 1
	}
	return off - size
}

// lastRune returns the offset of the final rune of the buffer.
func lastRune(buf host.Reader) host.Offset {
	return prev(buf, buf.Len())
}

// emptyLineAt reports whether off is the start of an empty line.
func emptyLineAt(buf host.Reader, off host.Offset) bool {
	line := host.LineOf(buf, off)
	return buf.LineStart(line) == off && buf.LineEnd(line) == off
}

// emptyLine reports whether line has no content.
func emptyLine(buf host.Reader, line int) bool {
	return buf.LineStart(line) == buf.LineEnd(line)
}

// firstNonBlank returns the first non-whitespace character of line. A
// line of only whitespace yields its last character.
func firstNonBlank(buf host.Reader, line int) host.Offset {
	start, end := buf.LineStart(line), buf.LineEnd(line)
	for off := start; off < end; {
		r, size := buf.RuneAt(off)
		if size == 0 {
			break
		}
		if !unicode.IsSpace(r) {
			return off
		}
		off += size
	}
	return host.LastGrapheme(buf, line)
}

// NormalPosition clamps off onto a character, the position Normal mode
// uses. The cursor rests on a line end only when the line is empty.
func NormalPosition(buf host.Reader, off host.Offset) host.Offset {
	off = host.Clamp(buf, off)
	line := host.LineOf(buf, off)
	if last := host.LastGrapheme(buf, line); off > last {
		return last
	}
	return off
}

// lastLine returns the index of the last line.
func lastLine(buf host.Reader) int {
	return max(buf.LineCount()-1, 0)
}

// clampLine limits line to the buffer.
func clampLine(buf host.Reader, line int) int {
	return min(max(line, 0), lastLine(buf))
}

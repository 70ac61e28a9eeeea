package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input/vim"
)

// TextObject resolves an inner or around text object at from. The result
// is a half-open span in Start and End. For brackets count selects the
// nesting level; for words, sentences and paragraphs it selects that many
// consecutive units.
func TextObject(buf host.Reader, from host.Offset, obj vim.TextObject, prefix vim.TextObjectPrefix, count int) (Range, error) {
	from = host.Clamp(buf, from)
	count = max(count, 1)
	around := prefix == vim.PrefixAround

	switch obj {
	case vim.ObjWord, vim.ObjBigWord:
		return wordObject(buf, from, obj == vim.ObjBigWord, around, count)
	case vim.ObjSentence:
		return sentenceObject(buf, from, around, count)
	case vim.ObjParagraph:
		return paragraphObject(buf, from, around, count), nil
	}

	open, close, ok := obj.Delimiters()
	if !ok {
		return Range{Start: from, End: from}, ErrNoTarget
	}
	if obj.IsQuote() {
		return quoteObject(buf, from, open, around)
	}
	return bracketObject(buf, from, open, close, around, count)
}

// wordObject selects the run of one character class under the cursor.
// Around also takes the trailing whitespace, or the leading whitespace
// when there is none after the word.
func wordObject(buf host.Reader, from host.Offset, big, around bool, count int) (Range, error) {
	line := host.LineOf(buf, from)
	ls, le := buf.LineStart(line), buf.LineEnd(line)
	if ls == le {
		return Range{Start: from, End: from}, ErrNoTarget
	}
	if from >= le {
		from = host.LastGrapheme(buf, line)
	}

	class := func(off host.Offset) host.CharClass { return classAt(buf, off, big) }
	skip := func(off host.Offset, c host.CharClass) host.Offset {
		for off < le && class(off) == c {
			off = next(buf, off)
		}
		return off
	}

	c := class(from)
	start := from
	for start > ls {
		p := prev(buf, start)
		if class(p) != c {
			break
		}
		start = p
	}
	end := skip(from, c)

	if around {
		if c == blank {
			if end < le {
				end = skip(end, class(end))
			}
		} else if trailing := skip(end, blank); trailing > end {
			end = trailing
		} else {
			for start > ls && class(prev(buf, start)) == blank {
				start = prev(buf, start)
			}
		}
	}

	for i := 1; i < count && end < le; i++ {
		end = skip(end, class(end))
		if around && end < le && class(end) == blank {
			end = skip(end, blank)
		}
	}
	return Range{Start: start, End: end}, nil
}

// sentenceObject selects text between sentence terminators (. ! ?) that
// are followed by whitespace. Empty lines also end a sentence.
func sentenceObject(buf host.Reader, from host.Offset, around bool, count int) (Range, error) {
	text, err := buf.TextRange(0, buf.Len())
	if err != nil {
		return Range{Start: from, End: from}, err
	}
	n := len(text)
	if n == 0 {
		return Range{}, ErrNoTarget
	}

	start := min(from, n)
	for start > 0 {
		if sentenceEndsBefore(text, start) {
			break
		}
		start--
	}
	for start < n && unicode.IsSpace(runeAt(text, start)) && start < from {
		start = nextIn(text, start)
	}

	end := from
	for i := 0; i < count && end < n; i++ {
		if i > 0 {
			for end < n && unicode.IsSpace(runeAt(text, end)) {
				end = nextIn(text, end)
			}
		}
		end = nextIn(text, end)
		for end < n && !sentenceEndsBefore(text, end) {
			end = nextIn(text, end)
		}
	}

	if around {
		for end < n && unicode.IsSpace(runeAt(text, end)) && text[end] != '\n' {
			end = nextIn(text, end)
		}
	}
	return Range{Start: start, End: end}, nil
}

// sentenceEndsBefore reports whether a sentence boundary lies just before
// off: a terminator followed by whitespace or the end of the text, or a
// blank line.
func sentenceEndsBefore(text string, off int) bool {
	if off <= 0 || off > len(text) {
		return false
	}
	if text[off-1] == '\n' && off < len(text) && text[off] == '\n' {
		return true
	}
	switch text[off-1] {
	case '.', '!', '?':
		return off == len(text) || unicode.IsSpace(runeAt(text, off))
	}
	return false
}

// paragraphObject selects a block of non-empty lines, or of empty lines
// when the cursor is on one. Around adds the following block of the other
// kind, or the preceding one at the end of the buffer.
func paragraphObject(buf host.Reader, from host.Offset, around bool, count int) Range {
	line := host.LineOf(buf, from)
	last := lastLine(buf)
	kind := emptyLine(buf, line)

	first, final := line, line
	for first > 0 && emptyLine(buf, first-1) == kind {
		first--
	}
	extend := func() {
		k := emptyLine(buf, final+1)
		final++
		for final < last && emptyLine(buf, final+1) == k {
			final++
		}
	}
	for final < last && emptyLine(buf, final+1) == kind {
		final++
	}
	for i := 1; i < count && final < last; i++ {
		extend()
	}

	if around {
		if final < last {
			extend()
		} else if first > 0 {
			k := emptyLine(buf, first-1)
			first--
			for first > 0 && emptyLine(buf, first-1) == k {
				first--
			}
		}
	}
	return Range{Start: buf.LineStart(first), End: buf.LineStart(final), Linewise: true}
}

// quoteObject selects a quoted string on the cursor line. Quotes pair up
// from the start of the line; escaped quotes are skipped. When the cursor
// is not inside a pair the next pair on the line is used.
func quoteObject(buf host.Reader, from host.Offset, quote rune, around bool) (Range, error) {
	line := host.LineOf(buf, from)
	ls, le := buf.LineStart(line), buf.LineEnd(line)
	size := utf8.RuneLen(quote)

	var quotes []host.Offset
	escaped := false
	for off := ls; off < le; {
		r, sz := buf.RuneAt(off)
		if sz == 0 {
			break
		}
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == quote:
			quotes = append(quotes, off)
		}
		off += sz
	}

	open, close := -1, -1
	for i := 0; i+1 < len(quotes); i += 2 {
		if from <= quotes[i+1] {
			open, close = quotes[i], quotes[i+1]
			break
		}
	}
	if open < 0 {
		return Range{Start: from, End: from}, ErrNoTarget
	}

	if !around {
		return Range{Start: open + size, End: close}, nil
	}

	start, end := open, close+size
	trailing := end
	for trailing < le {
		r, sz := buf.RuneAt(trailing)
		if sz == 0 || !unicode.IsSpace(r) {
			break
		}
		trailing += sz
	}
	if trailing > end {
		return Range{Start: start, End: trailing}, nil
	}
	for start > ls {
		p := prev(buf, start)
		if r, _ := buf.RuneAt(p); !unicode.IsSpace(r) {
			break
		}
		start = p
	}
	return Range{Start: start, End: end}, nil
}

// bracketObject selects the count-th enclosing bracket pair. A cursor on
// either bracket of a pair is inside it. Inner content of a block whose
// brackets sit on their own lines covers just the lines between them.
func bracketObject(buf host.Reader, from host.Offset, open, close rune, around bool, count int) (Range, error) {
	text, err := buf.TextRange(0, buf.Len())
	if err != nil {
		return Range{Start: from, End: from}, err
	}
	ob, cb := byte(open), byte(close)

	scan := from
	if from < len(text) && text[from] == ob {
		scan = from + 1
	}

	o := -1
	for level := 0; level < count; level++ {
		depth := 0
		found := -1
		for i := scan - 1; i >= 0; i-- {
			switch text[i] {
			case cb:
				depth++
			case ob:
				if depth == 0 {
					found = i
				} else {
					depth--
				}
			}
			if found >= 0 {
				break
			}
		}
		if found < 0 {
			return Range{Start: from, End: from}, ErrNoTarget
		}
		o = found
		scan = found
	}

	c := -1
	depth := 0
	for i := o + 1; i < len(text) && c < 0; i++ {
		switch text[i] {
		case ob:
			depth++
		case cb:
			if depth == 0 {
				c = i
			} else {
				depth--
			}
		}
	}
	if c < 0 {
		return Range{Start: from, End: from}, ErrNoTarget
	}

	if around {
		return Range{Start: o, End: c + 1}, nil
	}

	start, end := o+1, c
	openLine := host.LineOf(buf, o)
	closeLine := host.LineOf(buf, c)
	if closeLine > openLine {
		if start == buf.LineEnd(openLine) {
			start = buf.LineStart(openLine + 1)
		}
		if onlyBlanks(text[buf.LineStart(closeLine):c]) {
			end = buf.LineStart(closeLine)
		}
		if end < start {
			end = start
		}
	}
	return Range{Start: start, End: end}, nil
}

func onlyBlanks(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func runeAt(text string, off int) rune {
	if off >= len(text) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(text[off:])
	return r
}

func nextIn(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[off:])
	return off + size
}

package operator

import (
	"strings"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/motion"
)

// indent adds one indent unit to every non-empty line of rng. Lines are
// edited bottom-up so earlier offsets stay valid.
func (e *Executor) indent(v host.View, rng motion.Range) (Outcome, error) {
	buf := v.Buffer()
	first, last := rng.Lines(buf)

	changed := false
	for line := last; line >= first; line-- {
		if buf.LineStart(line) == buf.LineEnd(line) {
			continue
		}
		if err := buf.Insert(buf.LineStart(line), e.settings.IndentUnit); err != nil {
			return Outcome{Changed: changed}, err
		}
		changed = true
	}
	return Outcome{Cursor: firstNonBlank(buf, first), Mode: mode.Normal, Changed: changed}, nil
}

// outdent removes one indent unit from every line of rng.
func (e *Executor) outdent(v host.View, rng motion.Range) (Outcome, error) {
	buf := v.Buffer()
	first, last := rng.Lines(buf)
	width := indentWidth(e.settings.IndentUnit)

	changed := false
	for line := last; line >= first; line-- {
		start := buf.LineStart(line)
		text, err := buf.TextRange(start, buf.LineEnd(line))
		if err != nil {
			return Outcome{Changed: changed}, err
		}
		ws := leadingWhitespace(text)
		n := len(ws) - len(removeOneIndent(ws, width))
		if n == 0 {
			continue
		}
		if err := buf.Delete(start, start+n); err != nil {
			return Outcome{Changed: changed}, err
		}
		changed = true
	}
	return Outcome{Cursor: firstNonBlank(buf, first), Mode: mode.Normal, Changed: changed}, nil
}

// indentWidth is the number of spaces one unit stands for. A tab unit
// outdents by a tab or by up to eight spaces.
func indentWidth(unit string) int {
	if strings.Contains(unit, "\t") || unit == "" {
		return 8
	}
	return len(unit)
}

// leadingWhitespace returns the leading blanks of s.
func leadingWhitespace(s string) string {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return s[:i]
		}
	}
	return s
}

// removeOneIndent removes one level of indentation from a whitespace
// prefix: a leading tab, or up to width spaces.
func removeOneIndent(ws string, width int) string {
	if ws == "" {
		return ws
	}
	if ws[0] == '\t' {
		return ws[1:]
	}

	spaces := 0
	for i, r := range ws {
		if r == '\t' {
			return ws[i+1:]
		}
		spaces++
		if spaces >= width {
			return ws[i+1:]
		}
	}
	return ""
}

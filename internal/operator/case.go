package operator

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/input/vim"
	"github.com/dshills/evil/internal/motion"
)

// transformCase rewrites [start, end) with the case mapping of op. The
// buffer is only touched when the text actually changes.
func (e *Executor) transformCase(v host.View, start, end host.Offset, op vim.Operator) (Outcome, error) {
	buf := v.Buffer()
	text, err := buf.TextRange(start, end)
	if err != nil {
		return Outcome{}, err
	}

	out := mapCase(text, op)
	if out != text {
		if err := buf.Replace(start, end, out); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{Cursor: motion.NormalPosition(buf, start), Mode: mode.Normal, Changed: out != text}, nil
}

// mapCase applies the case mapping of op to s.
func mapCase(s string, op vim.Operator) string {
	switch op {
	case vim.OpLowercase:
		return cases.Lower(language.Und).String(s)
	case vim.OpUppercase:
		return cases.Upper(language.Und).String(s)
	case vim.OpToggleCase:
		return toggleCase(s)
	}
	return s
}

// toggleCase swaps the case of every letter.
func toggleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

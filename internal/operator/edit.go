package operator

import (
	"fmt"
	"strings"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/motion"
)

// run wraps one edit command in a transaction and moves the cursor to the
// resulting position on success.
func (e *Executor) run(v host.View, name string, fn func() (Outcome, error)) (Outcome, error) {
	undo := v.Undo()
	undo.BeginTransaction(name)
	defer undo.EndTransaction()

	out, err := fn()
	if err != nil {
		return Outcome{Cursor: v.Cursor().Position(), Mode: mode.Normal}, fmt.Errorf("%s: %w", name, err)
	}
	v.Cursor().SetPosition(out.Cursor)
	return out, nil
}

// Paste inserts count copies of register after the cursor (p) or before
// it (P). Linewise text goes below or above the cursor line.
func (e *Executor) Paste(v host.View, register rune, count int, before bool) (Outcome, error) {
	reg, ok := e.lookup(v, register)
	if !ok {
		return Outcome{Cursor: v.Cursor().Position(), Mode: mode.Normal}, ErrEmptyRegister
	}
	name := "pasteAfter"
	if before {
		name = "pasteBefore"
	}
	return e.run(v, name, func() (Outcome, error) {
		return e.paste(v.Buffer(), v.Cursor().Position(), reg, count, before)
	})
}

// PasteOver replaces rng with count copies of register, as p does in
// Visual mode. The replaced text goes to the unnamed register afterwards.
func (e *Executor) PasteOver(v host.View, rng motion.Range, register rune, count int) (Outcome, error) {
	reg, ok := e.lookup(v, register)
	if !ok {
		return Outcome{Cursor: v.Cursor().Position(), Mode: mode.Normal}, ErrEmptyRegister
	}
	return e.run(v, "pasteOver", func() (Outcome, error) {
		buf := v.Buffer()
		start, end := rng.Span(buf)
		old, err := buf.TextRange(start, end)
		if err != nil {
			return Outcome{}, err
		}

		var out Outcome
		if rng.Linewise {
			delStart := start
			if end == buf.Len() && start > 0 && !endsWithNewline(old) {
				delStart = buf.LineEnd(host.LineOf(buf, start-1))
			}
			if err := buf.Delete(delStart, end); err != nil {
				return Outcome{}, err
			}
			line := host.LineOf(buf, host.Clamp(buf, delStart))
			if delStart < start {
				out, err = e.paste(buf, buf.LineStart(line), reg, count, false)
			} else {
				out, err = e.paste(buf, buf.LineStart(line), reg, count, true)
			}
		} else {
			if err := buf.Delete(start, end); err != nil {
				return Outcome{}, err
			}
			if reg.Linewise {
				reg.Text = "\n" + reg.Text
			}
			out, err = e.pasteAt(buf, start, reg, count)
		}
		if err != nil {
			return Outcome{}, err
		}
		e.store(v, 0, host.Register{Text: lineText(old, rng.Linewise), Linewise: rng.Linewise}, false)
		return out, nil
	})
}

func (e *Executor) lookup(v host.View, register rune) (host.Register, bool) {
	regs := v.Registers()
	if regs == nil {
		return host.Register{}, false
	}
	reg, ok := regs.Get(registerName(register))
	if !ok || reg.Text == "" {
		return host.Register{}, false
	}
	return reg, true
}

func (e *Executor) paste(buf host.Buffer, cursor host.Offset, reg host.Register, count int, before bool) (Outcome, error) {
	count = max(count, 1)
	line := host.LineOf(buf, cursor)

	if !reg.Linewise {
		at := cursor
		if !before {
			at = host.NextGrapheme(buf, cursor)
		}
		return e.pasteAt(buf, at, reg, count)
	}

	text, err := repeat(lineText(reg.Text, true), count)
	if err != nil {
		return Outcome{}, err
	}
	at := buf.LineStart(line)
	if !before {
		at = host.NextLineStart(buf, line)
		if at == buf.Len() && !lineTerminated(buf, line) {
			text = "\n" + strings.TrimSuffix(text, "\n")
		}
	}
	if err := buf.Insert(at, text); err != nil {
		return Outcome{}, err
	}

	first := line
	if !before {
		first = line + 1
	}
	return Outcome{Cursor: firstNonBlank(buf, first), Mode: mode.Normal, Changed: true}, nil
}

// pasteAt inserts charwise text at off. The cursor ends on the last pasted
// character, or at the start for multi-line text.
func (e *Executor) pasteAt(buf host.Buffer, off host.Offset, reg host.Register, count int) (Outcome, error) {
	text, err := repeat(reg.Text, max(count, 1))
	if err != nil {
		return Outcome{}, err
	}
	if err := buf.Insert(off, text); err != nil {
		return Outcome{}, err
	}
	cursor := off
	if !strings.ContainsAny(text, "\r\n") {
		cursor = host.PrevGrapheme(buf, off+len(text))
	}
	return Outcome{Cursor: cursor, Mode: mode.Normal, Changed: true}, nil
}

// repeat returns count copies of text, refusing results longer than
// MaxInsertLen.
func repeat(text string, count int) (string, error) {
	if len(text) > 0 && count > MaxInsertLen/len(text) {
		return "", fmt.Errorf("%w: %d x %d bytes", ErrTooLong, count, len(text))
	}
	return strings.Repeat(text, count), nil
}

// lineTerminated reports whether line ends with a line break.
func lineTerminated(buf host.Reader, line int) bool {
	return buf.LineEnd(line) < host.NextLineStart(buf, line)
}

// ReplaceChar replaces count characters under and after the cursor with
// ch. It fails with motion.ErrNoTarget when the line is too short.
func (e *Executor) ReplaceChar(v host.View, ch rune, count int) (Outcome, error) {
	buf := v.Buffer()
	start := v.Cursor().Position()
	count = max(count, 1)

	end := start
	for range count {
		next := host.NextGrapheme(buf, end)
		if next == end {
			return Outcome{Cursor: start, Mode: mode.Normal}, motion.ErrNoTarget
		}
		end = next
	}

	return e.run(v, "replaceChar", func() (Outcome, error) {
		text := strings.Repeat(string(ch), count)
		if err := buf.Replace(start, end, text); err != nil {
			return Outcome{}, err
		}
		return Outcome{Cursor: start + len(text) - len(string(ch)), Mode: mode.Normal, Changed: true}, nil
	})
}

// Overwrite replaces the character under the cursor with ch and moves
// past it, appending at the end of the line. It is Replace mode typing.
func (e *Executor) Overwrite(v host.View, ch rune) (Outcome, error) {
	buf := v.Buffer()
	start := v.Cursor().Position()
	end := host.NextGrapheme(buf, start)

	return e.run(v, "overwrite", func() (Outcome, error) {
		s := string(ch)
		if err := buf.Replace(start, end, s); err != nil {
			return Outcome{}, err
		}
		return Outcome{Cursor: start + len(s), Mode: mode.Replace, Changed: true}, nil
	})
}

// Join joins count lines starting at the cursor line, at least two. Leading
// blanks of each joined line collapse to one space, which is omitted when
// the current line ends in a blank or the next line is empty or starts
// with ')'.
func (e *Executor) Join(v host.View, count int) (Outcome, error) {
	buf := v.Buffer()
	line := host.LineOf(buf, v.Cursor().Position())
	if line >= buf.LineCount()-1 {
		return Outcome{Cursor: v.Cursor().Position(), Mode: mode.Normal}, motion.ErrNoTarget
	}
	joins := min(max(count-1, 1), buf.LineCount()-1-line)

	return e.run(v, "joinLines", func() (Outcome, error) {
		cursor := buf.LineEnd(line)
		for range joins {
			end := buf.LineEnd(line)
			nextStart := buf.LineStart(line + 1)
			next := host.LineText(buf, line+1)
			ws := leadingWhitespace(next)
			rest := next[len(ws):]

			sep := " "
			cur := host.LineText(buf, line)
			if cur == "" || rest == "" || strings.HasPrefix(rest, ")") || strings.HasSuffix(cur, " ") || strings.HasSuffix(cur, "\t") {
				sep = ""
			}
			if err := buf.Replace(end, nextStart+len(ws), sep); err != nil {
				return Outcome{}, err
			}
			cursor = end
		}
		return Outcome{Cursor: motion.NormalPosition(buf, cursor), Mode: mode.Normal, Changed: true}, nil
	})
}

// OpenLine opens an empty line below (o) or above (O) the cursor line and
// enters Insert on it.
func (e *Executor) OpenLine(v host.View, below bool) (Outcome, error) {
	buf := v.Buffer()
	line := host.LineOf(buf, v.Cursor().Position())
	eol := e.settings.LineEnding.Sequence()

	name := "openAbove"
	if below {
		name = "openBelow"
	}
	return e.run(v, name, func() (Outcome, error) {
		if below {
			at := buf.LineEnd(line)
			if err := buf.Insert(at, eol); err != nil {
				return Outcome{}, err
			}
			return Outcome{Cursor: at + len(eol), Mode: mode.Insert, Changed: true}, nil
		}
		at := buf.LineStart(line)
		if err := buf.Insert(at, eol); err != nil {
			return Outcome{}, err
		}
		return Outcome{Cursor: at, Mode: mode.Insert, Changed: true}, nil
	})
}

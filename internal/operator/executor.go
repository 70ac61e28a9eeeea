package operator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/input/vim"
	"github.com/dshills/evil/internal/motion"
)

// ErrEmptyRegister is returned when pasting from a register with no text.
var ErrEmptyRegister = errors.New("register is empty")

// ErrTooLong is returned when a counted paste would insert more than
// MaxInsertLen bytes.
var ErrTooLong = errors.New("resulting text too long")

// MaxInsertLen caps the text a single paste inserts.
const MaxInsertLen = 64 << 20

// Settings are the per-buffer values edits depend on.
type Settings struct {
	// IndentUnit is one level of indentation, e.g. "\t" or "    ".
	IndentUnit string

	// LineEnding is used for lines opened with o and O.
	LineEnding host.LineEnding
}

// DefaultSettings returns tab indentation and LF line endings.
func DefaultSettings() Settings {
	return Settings{IndentUnit: "\t", LineEnding: host.LineEndingLF}
}

// Outcome describes the state after a command.
type Outcome struct {
	// Cursor is where the cursor was placed.
	Cursor host.Offset

	// Mode is the mode the view should be in.
	Mode mode.Mode

	// Changed is set when the buffer was modified.
	Changed bool
}

// Executor applies operators to resolved ranges.
type Executor struct {
	settings Settings
}

// New creates an executor.
func New(settings Settings) *Executor {
	if settings.IndentUnit == "" {
		settings.IndentUnit = "\t"
	}
	return &Executor{settings: settings}
}

// Settings returns the executor settings.
func (e *Executor) Settings() Settings {
	return e.settings
}

// Apply runs op over rng in v. The cursor ends at the start of the
// affected text; Change reports Insert mode, everything else Normal.
func (e *Executor) Apply(v host.View, op vim.Operator, rng motion.Range, register rune) (Outcome, error) {
	buf := v.Buffer()
	start, end := rng.Span(buf)

	undo := v.Undo()
	undo.BeginTransaction(op.String())
	defer undo.EndTransaction()

	var (
		out Outcome
		err error
	)
	switch op {
	case vim.OpDelete:
		out, err = e.delete(v, start, end, rng.Linewise, register)
	case vim.OpChange:
		out, err = e.change(v, start, end, rng.Linewise, register)
	case vim.OpYank:
		out, err = e.yank(v, start, end, rng.Linewise, register)
	case vim.OpIndentRight:
		out, err = e.indent(v, rng)
	case vim.OpIndentLeft:
		out, err = e.outdent(v, rng)
	case vim.OpLowercase, vim.OpUppercase, vim.OpToggleCase:
		out, err = e.transformCase(v, start, end, op)
	default:
		return Outcome{Cursor: v.Cursor().Position(), Mode: mode.Normal}, fmt.Errorf("apply %s: unknown operator", op)
	}

	if err != nil {
		return Outcome{Cursor: v.Cursor().Position(), Mode: mode.Normal}, fmt.Errorf("%s: %w", op, err)
	}
	v.Cursor().SetPosition(out.Cursor)
	return out, nil
}

// delete removes [start, end) and stores it. A linewise delete of the last
// line also takes the line break before it.
func (e *Executor) delete(v host.View, start, end host.Offset, linewise bool, register rune) (Outcome, error) {
	buf := v.Buffer()
	text, err := buf.TextRange(start, end)
	if err != nil {
		return Outcome{}, err
	}
	if start == end {
		return Outcome{Cursor: motion.NormalPosition(buf, start), Mode: mode.Normal}, nil
	}

	delStart := start
	if linewise && end == buf.Len() && start > 0 && !endsWithNewline(text) {
		delStart = buf.LineEnd(host.LineOf(buf, start-1))
	}
	if err := buf.Delete(delStart, end); err != nil {
		return Outcome{}, err
	}
	e.store(v, register, host.Register{Text: lineText(text, linewise), Linewise: linewise}, false)

	cursor := motion.NormalPosition(buf, start)
	if linewise {
		cursor = firstNonBlank(buf, host.LineOf(buf, host.Clamp(buf, delStart)))
	}
	return Outcome{Cursor: cursor, Mode: mode.Normal, Changed: true}, nil
}

// change removes [start, end) and enters Insert. A linewise change keeps
// one empty line to type into.
func (e *Executor) change(v host.View, start, end host.Offset, linewise bool, register rune) (Outcome, error) {
	buf := v.Buffer()
	text, err := buf.TextRange(start, end)
	if err != nil {
		return Outcome{}, err
	}

	delEnd := end
	if linewise {
		delEnd = buf.LineEnd(host.LineOf(buf, max(end-1, start)))
	}
	if delEnd > start {
		if err := buf.Delete(start, delEnd); err != nil {
			return Outcome{}, err
		}
	}
	e.store(v, register, host.Register{Text: lineText(text, linewise), Linewise: linewise}, false)

	return Outcome{Cursor: start, Mode: mode.Insert, Changed: delEnd > start}, nil
}

// yank stores [start, end) without touching the buffer.
func (e *Executor) yank(v host.View, start, end host.Offset, linewise bool, register rune) (Outcome, error) {
	buf := v.Buffer()
	text, err := buf.TextRange(start, end)
	if err != nil {
		return Outcome{}, err
	}
	e.store(v, register, host.Register{Text: lineText(text, linewise), Linewise: linewise}, true)

	if n, ok := v.(host.Notifier); ok && register != '_' {
		n.Notify(host.LevelInfo, fmt.Sprintf("Yanked 1 selection(s) to register %c", registerName(register)))
	}

	cursor := motion.NormalPosition(buf, start)
	if linewise {
		if cur := v.Cursor().Position(); host.LineOf(buf, cur) == host.LineOf(buf, start) {
			cursor = cur
		}
	}
	return Outcome{Cursor: cursor, Mode: mode.Normal}, nil
}

// store writes reg to the named register, or through the history of the
// store when no register was named.
func (e *Executor) store(v host.View, name rune, reg host.Register, yank bool) {
	if name == '_' {
		return
	}
	regs := v.Registers()
	if regs == nil {
		return
	}

	if name != 0 && name != '"' {
		regs.Set(name, reg)
		if full, ok := regs.Get(name); ok {
			regs.Set('"', full)
		}
		return
	}

	hist, ok := regs.(host.RegisterHistory)
	switch {
	case !ok:
		regs.Set('"', reg)
	case yank:
		hist.SetYank(reg)
	default:
		hist.SetDelete(reg, !reg.Linewise && !strings.Contains(reg.Text, "\n"))
	}
}

func registerName(r rune) rune {
	if r == 0 {
		return '"'
	}
	return r
}

// lineText makes linewise register text end with a line break.
func lineText(text string, linewise bool) string {
	if linewise && !endsWithNewline(text) {
		return text + "\n"
	}
	return text
}

func endsWithNewline(s string) bool {
	return strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r")
}

// firstNonBlank returns the first non-blank of line, in Normal position.
func firstNonBlank(buf host.Reader, line int) host.Offset {
	start, end := buf.LineStart(line), buf.LineEnd(line)
	text, err := buf.TextRange(start, end)
	if err != nil {
		return start
	}
	ws := leadingWhitespace(text)
	return motion.NormalPosition(buf, start+len(ws))
}

package operator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/host/memhost"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/input/vim"
	"github.com/dshills/evil/internal/motion"
	"github.com/dshills/evil/internal/operator"
)

func newView(text string, cursor int, opts ...memhost.Option) *memhost.View {
	v := memhost.NewView(memhost.NewBuffer(text, opts...), nil)
	v.SetPosition(cursor)
	return v
}

func register(t *testing.T, v *memhost.View, name rune) host.Register {
	t.Helper()
	reg, ok := v.Registers().Get(name)
	require.True(t, ok, "register %c is empty", name)
	return reg
}

func lines(start, end int) motion.Range {
	return motion.Range{Start: start, End: end, Linewise: true}
}

func chars(start, end int) motion.Range {
	return motion.Range{Start: start, End: end}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		op         vim.Operator
		rng        motion.Range
		want       string
		wantCursor int
		wantMode   mode.Mode
		wantReg    host.Register
	}{
		{"dw", "hello world", 0, vim.OpDelete, chars(0, 6), "world", 0, mode.Normal, host.Register{Text: "hello "}},
		{"dd", "a\nb\nc", 2, vim.OpDelete, lines(2, 2), "a\nc", 2, mode.Normal, host.Register{Text: "b\n", Linewise: true}},
		{"2dd", "a\nb\nc", 0, vim.OpDelete, lines(0, 2), "c", 0, mode.Normal, host.Register{Text: "a\nb\n", Linewise: true}},
		{"dd on the last line", "a\nb", 2, vim.OpDelete, lines(2, 2), "a", 0, mode.Normal, host.Register{Text: "b\n", Linewise: true}},
		{"dd lands on the first non-blank", "a\n  b", 0, vim.OpDelete, lines(0, 0), "  b", 2, mode.Normal, host.Register{Text: "a\n", Linewise: true}},
		{"d$ clamps the cursor", "abc", 1, vim.OpDelete, chars(1, 3), "a", 0, mode.Normal, host.Register{Text: "bc"}},
		{"cw", "foo bar", 0, vim.OpChange, chars(0, 3), " bar", 0, mode.Insert, host.Register{Text: "foo"}},
		{"cc keeps an empty line", "  foo\nbar", 0, vim.OpChange, lines(0, 0), "\nbar", 0, mode.Insert, host.Register{Text: "  foo\n", Linewise: true}},
		{"inclusive de", "foo bar", 0, vim.OpDelete, motion.Range{Start: 0, End: 2, Inclusive: true}, " bar", 0, mode.Normal, host.Register{Text: "foo"}},
		{"backward db", "foo bar", 4, vim.OpDelete, chars(4, 0), "bar", 0, mode.Normal, host.Register{Text: "foo "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(tt.text, tt.cursor)
			out, err := operator.New(operator.DefaultSettings()).Apply(v, tt.op, tt.rng, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.want, v.Text())
			assert.Equal(t, tt.wantCursor, v.Position())
			assert.Equal(t, tt.wantCursor, out.Cursor)
			assert.Equal(t, tt.wantMode, out.Mode)
			assert.True(t, out.Changed)
			assert.Equal(t, tt.wantReg, register(t, v, '"'))
			assert.Equal(t, 1, v.MemBuffer().History().Transactions())
			assert.Equal(t, 1, v.MemBuffer().History().UndoCount())
		})
	}
}

func TestApplyIsOneUndoStep(t *testing.T) {
	v := newView("a\nb\nc\nd", 0)
	_, err := operator.New(operator.DefaultSettings()).Apply(v, vim.OpDelete, lines(0, 4), 0)
	require.NoError(t, err)
	assert.Equal(t, "d", v.Text())

	_, ok, err := v.MemBuffer().History().Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a\nb\nc\nd", v.Text())
}

func TestYank(t *testing.T) {
	v := newView("foo bar", 4)
	out, err := operator.New(operator.DefaultSettings()).Apply(v, vim.OpYank, chars(4, 0), 0)
	require.NoError(t, err)

	assert.Equal(t, "foo bar", v.Text())
	assert.False(t, out.Changed)
	assert.Equal(t, 0, v.Position())
	assert.Equal(t, mode.Normal, out.Mode)
	assert.Equal(t, "foo ", register(t, v, '0').Text)
	assert.Equal(t, "foo ", register(t, v, '"').Text)
	assert.Equal(t, 1, v.MemBuffer().History().Transactions())
	assert.Zero(t, v.MemBuffer().History().UndoCount())

	msg, ok := v.LastMessage()
	require.True(t, ok)
	assert.Equal(t, host.LevelInfo, msg.Level)
	assert.Equal(t, `Yanked 1 selection(s) to register "`, msg.Text)
}

func TestYankLineKeepsCursor(t *testing.T) {
	v := newView("abc\ndef", 2)
	_, err := operator.New(operator.DefaultSettings()).Apply(v, vim.OpYank, lines(2, 2), 'a')
	require.NoError(t, err)

	assert.Equal(t, 2, v.Position())
	assert.Equal(t, host.Register{Text: "abc\n", Linewise: true}, register(t, v, 'a'))

	msg, ok := v.LastMessage()
	require.True(t, ok)
	assert.Equal(t, "Yanked 1 selection(s) to register a", msg.Text)
}

func TestRegisters(t *testing.T) {
	exec := operator.New(operator.DefaultSettings())

	t.Run("named register also fills unnamed", func(t *testing.T) {
		v := newView("one two three", 0)
		_, err := exec.Apply(v, vim.OpDelete, chars(0, 4), 'a')
		require.NoError(t, err)
		_, err = exec.Apply(v, vim.OpDelete, chars(0, 4), 'A')
		require.NoError(t, err)

		assert.Equal(t, "one two ", register(t, v, 'a').Text)
		assert.Equal(t, "one two ", register(t, v, '"').Text)
	})

	t.Run("black hole keeps registers", func(t *testing.T) {
		v := newView("one two", 0)
		_, err := exec.Apply(v, vim.OpDelete, chars(0, 4), '_')
		require.NoError(t, err)

		assert.Equal(t, "two", v.Text())
		_, ok := v.Registers().Get('"')
		assert.False(t, ok)
		_, ok = v.LastMessage()
		assert.False(t, ok)
	})

	t.Run("line deletes rotate numbered registers", func(t *testing.T) {
		v := newView("a\nb\nc", 0)
		for range 2 {
			_, err := exec.Apply(v, vim.OpDelete, lines(0, 0), 0)
			require.NoError(t, err)
		}
		assert.Equal(t, "b\n", register(t, v, '1').Text)
		assert.Equal(t, "a\n", register(t, v, '2').Text)
	})

	t.Run("small deletes fill the minus register", func(t *testing.T) {
		v := newView("ab", 0)
		_, err := exec.Apply(v, vim.OpDelete, chars(0, 1), 0)
		require.NoError(t, err)
		assert.Equal(t, "a", register(t, v, '-').Text)
		_, ok := v.Registers().Get('1')
		assert.False(t, ok)
	})
}

func TestApplyReadOnly(t *testing.T) {
	for _, op := range []vim.Operator{vim.OpDelete, vim.OpChange, vim.OpIndentRight, vim.OpUppercase} {
		t.Run(op.String(), func(t *testing.T) {
			v := newView("abc", 0, memhost.WithReadOnly())
			out, err := operator.New(operator.DefaultSettings()).Apply(v, op, chars(0, 2), 0)

			require.ErrorIs(t, err, host.ErrReadOnly)
			assert.Equal(t, mode.Normal, out.Mode)
			assert.Equal(t, "abc", v.Text())
			assert.Equal(t, 1, v.MemBuffer().History().Transactions())
			assert.False(t, v.MemBuffer().History().InTransaction())
		})
	}
}

func TestIndent(t *testing.T) {
	t.Run("indent skips empty lines", func(t *testing.T) {
		v := newView("a\n\nb", 0)
		out, err := operator.New(operator.DefaultSettings()).Apply(v, vim.OpIndentRight, lines(0, 3), 0)
		require.NoError(t, err)

		assert.Equal(t, "\ta\n\n\tb", v.Text())
		assert.Equal(t, 1, out.Cursor)
		assert.Equal(t, 1, v.MemBuffer().History().UndoCount())
	})

	t.Run("indent with spaces", func(t *testing.T) {
		v := newView("x", 0)
		_, err := operator.New(operator.Settings{IndentUnit: "  "}).Apply(v, vim.OpIndentRight, lines(0, 0), 0)
		require.NoError(t, err)
		assert.Equal(t, "  x", v.Text())
	})

	t.Run("outdent removes one level", func(t *testing.T) {
		v := newView("      x\n\ty\nz", 0)
		out, err := operator.New(operator.Settings{IndentUnit: "    "}).Apply(v, vim.OpIndentLeft, lines(0, 10), 0)
		require.NoError(t, err)

		assert.Equal(t, "  x\ny\nz", v.Text())
		assert.Equal(t, 2, out.Cursor)
		assert.True(t, out.Changed)
	})

	t.Run("outdent of flush lines changes nothing", func(t *testing.T) {
		v := newView("x\ny", 0)
		out, err := operator.New(operator.DefaultSettings()).Apply(v, vim.OpIndentLeft, lines(0, 2), 0)
		require.NoError(t, err)
		assert.False(t, out.Changed)
		assert.Zero(t, v.MemBuffer().History().UndoCount())
	})
}

func TestCase(t *testing.T) {
	tests := []struct {
		op   vim.Operator
		rng  motion.Range
		want string
	}{
		{vim.OpUppercase, chars(0, 5), "HELLO World"},
		{vim.OpLowercase, chars(0, 11), "hello world"},
		{vim.OpToggleCase, chars(0, 11), "hELLO wORLD"},
		{vim.OpUppercase, lines(3, 3), "HELLO WORLD"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			v := newView("Hello World", 3)
			out, err := operator.New(operator.DefaultSettings()).Apply(v, tt.op, tt.rng, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.want, v.Text())
			assert.Equal(t, 0, out.Cursor)
			assert.Equal(t, mode.Normal, out.Mode)
			_, ok := v.Registers().Get('"')
			assert.False(t, ok, "case operators do not write registers")
		})
	}

	t.Run("unicode", func(t *testing.T) {
		v := newView("straße", 0)
		_, err := operator.New(operator.DefaultSettings()).Apply(v, vim.OpUppercase, chars(0, 7), 0)
		require.NoError(t, err)
		assert.Equal(t, "STRASSE", v.Text())
	})
}

func TestPaste(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		reg        host.Register
		count      int
		before     bool
		want       string
		wantCursor int
	}{
		{"p", "ab", 0, host.Register{Text: "xy"}, 1, false, "axyb", 2},
		{"P", "ab", 0, host.Register{Text: "xy"}, 1, true, "xyab", 1},
		{"2p", "ab", 0, host.Register{Text: "xy"}, 2, false, "axyxyb", 4},
		{"p on an empty line", "\nz", 0, host.Register{Text: "xy"}, 1, false, "xy\nz", 1},
		{"p multi-line text", "ab", 0, host.Register{Text: "x\ny"}, 1, false, "ax\nyb", 1},
		{"linewise p", "a\nb", 0, host.Register{Text: "x\n", Linewise: true}, 1, false, "a\nx\nb", 2},
		{"linewise p on the last line", "a\nb", 2, host.Register{Text: "x\n", Linewise: true}, 1, false, "a\nb\nx", 4},
		{"linewise P", "a\nb", 2, host.Register{Text: "x\n", Linewise: true}, 1, true, "a\nx\nb", 2},
		{"linewise 2p", "a", 0, host.Register{Text: "  x\n", Linewise: true}, 2, false, "a\n  x\n  x", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(tt.text, tt.cursor)
			v.Registers().Set('"', tt.reg)

			out, err := operator.New(operator.DefaultSettings()).Paste(v, 0, tt.count, tt.before)
			require.NoError(t, err)

			assert.Equal(t, tt.want, v.Text())
			assert.Equal(t, tt.wantCursor, v.Position())
			assert.Equal(t, mode.Normal, out.Mode)
			assert.Equal(t, 1, v.MemBuffer().History().UndoCount())
		})
	}
}

func TestPasteEmptyRegister(t *testing.T) {
	v := newView("ab", 0)
	_, err := operator.New(operator.DefaultSettings()).Paste(v, 'q', 1, false)

	assert.ErrorIs(t, err, operator.ErrEmptyRegister)
	assert.Equal(t, "ab", v.Text())
	assert.Zero(t, v.MemBuffer().History().Transactions())
}

func TestPasteOver(t *testing.T) {
	t.Run("charwise", func(t *testing.T) {
		v := newView("foo bar", 0)
		v.Registers().Set('"', host.Register{Text: "X"})

		_, err := operator.New(operator.DefaultSettings()).PasteOver(v, chars(0, 3), 0, 1)
		require.NoError(t, err)
		assert.Equal(t, "X bar", v.Text())
		assert.Equal(t, "foo", register(t, v, '"').Text)
		assert.Equal(t, 1, v.MemBuffer().History().UndoCount())
	})

	t.Run("linewise", func(t *testing.T) {
		v := newView("a\nb\nc", 2)
		v.Registers().Set('"', host.Register{Text: "x\n", Linewise: true})

		_, err := operator.New(operator.DefaultSettings()).PasteOver(v, lines(2, 2), 0, 1)
		require.NoError(t, err)
		assert.Equal(t, "a\nx\nc", v.Text())
		assert.Equal(t, host.Register{Text: "b\n", Linewise: true}, register(t, v, '"'))
	})

	t.Run("linewise last line", func(t *testing.T) {
		v := newView("a\nb", 2)
		v.Registers().Set('"', host.Register{Text: "x\n", Linewise: true})

		_, err := operator.New(operator.DefaultSettings()).PasteOver(v, lines(2, 2), 0, 1)
		require.NoError(t, err)
		assert.Equal(t, "a\nx", v.Text())
		assert.Equal(t, 2, v.Position())
	})
}

func TestReplaceChar(t *testing.T) {
	exec := operator.New(operator.DefaultSettings())

	v := newView("abc", 0)
	out, err := exec.ReplaceChar(v, 'x', 2)
	require.NoError(t, err)
	assert.Equal(t, "xxc", v.Text())
	assert.Equal(t, 1, out.Cursor)
	assert.Equal(t, 1, v.MemBuffer().History().UndoCount())

	_, err = exec.ReplaceChar(v, 'y', 4)
	assert.ErrorIs(t, err, motion.ErrNoTarget)
	assert.Equal(t, "xxc", v.Text())

	empty := newView("\nx", 0)
	_, err = exec.ReplaceChar(empty, 'y', 1)
	assert.ErrorIs(t, err, motion.ErrNoTarget)
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		count      int
		want       string
		wantCursor int
	}{
		{"J", "a\n   b\nc", 0, 1, "a b\nc", 1},
		{"2J joins two lines", "a\nb\nc", 0, 2, "a b\nc", 1},
		{"3J", "a\n   b\nc", 0, 3, "a b c", 3},
		{"count past the end", "a\nb", 0, 9, "a b", 1},
		{"no space before )", "f(\n  )", 0, 1, "f()", 2},
		{"no space after a blank", "a \nb", 0, 1, "a b", 2},
		{"empty next line", "a\n\nb", 0, 1, "a\nb", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(tt.text, tt.cursor)
			out, err := operator.New(operator.DefaultSettings()).Join(v, tt.count)
			require.NoError(t, err)

			assert.Equal(t, tt.want, v.Text())
			assert.Equal(t, tt.wantCursor, out.Cursor)
			assert.Equal(t, 1, v.MemBuffer().History().UndoCount())
		})
	}

	t.Run("last line", func(t *testing.T) {
		v := newView("a\nb", 2)
		_, err := operator.New(operator.DefaultSettings()).Join(v, 1)
		assert.ErrorIs(t, err, motion.ErrNoTarget)
	})
}

func TestOpenLine(t *testing.T) {
	exec := operator.New(operator.DefaultSettings())

	v := newView("ab\ncd", 1)
	out, err := exec.OpenLine(v, true)
	require.NoError(t, err)
	assert.Equal(t, "ab\n\ncd", v.Text())
	assert.Equal(t, 3, v.Position())
	assert.Equal(t, mode.Insert, out.Mode)

	v = newView("ab\ncd", 4)
	_, err = exec.OpenLine(v, false)
	require.NoError(t, err)
	assert.Equal(t, "ab\n\ncd", v.Text())
	assert.Equal(t, 3, v.Position())

	crlf := operator.New(operator.Settings{LineEnding: host.LineEndingCRLF})
	v = newView("ab", 0)
	_, err = crlf.OpenLine(v, true)
	require.NoError(t, err)
	assert.Equal(t, "ab\r\n", v.Text())
	assert.Equal(t, 4, v.Position())
	assert.Equal(t, "\t", crlf.Settings().IndentUnit)
}

func TestOverwrite(t *testing.T) {
	exec := operator.New(operator.DefaultSettings())
	v := newView("ab", 0)

	out, err := exec.Overwrite(v, 'x')
	require.NoError(t, err)
	assert.Equal(t, "xb", v.Text())
	assert.Equal(t, mode.Replace, out.Mode)

	v.SetPosition(2)
	_, err = exec.Overwrite(v, 'y')
	require.NoError(t, err)
	assert.Equal(t, "xby", v.Text())
	assert.Equal(t, 3, v.Position())
	assert.Equal(t, 2, v.MemBuffer().History().UndoCount())
}

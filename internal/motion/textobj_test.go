package motion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/evil/internal/host/memhost"
	"github.com/dshills/evil/internal/input/vim"
	"github.com/dshills/evil/internal/motion"
)

func TestTextObjects(t *testing.T) {
	const code = "foo (bar, (baz)) qux"
	const quoted = `say "hi there" and "bye"`

	tests := []struct {
		name   string
		text   string
		from   int
		obj    vim.TextObject
		prefix vim.TextObjectPrefix
		count  int
		want   string
	}{
		{"iw", code, 1, vim.ObjWord, vim.PrefixInner, 1, "foo"},
		{"aw takes trailing blank", code, 1, vim.ObjWord, vim.PrefixAround, 1, "foo "},
		{"aw at line end takes leading blank", code, 18, vim.ObjWord, vim.PrefixAround, 1, " qux"},
		{"iw on punctuation", code, 4, vim.ObjWord, vim.PrefixInner, 1, "("},
		{"iW", code, 6, vim.ObjBigWord, vim.PrefixInner, 1, "(bar,"},
		{"3iw", code, 0, vim.ObjWord, vim.PrefixInner, 3, "foo ("},

		{"i(", code, 12, vim.ObjParen, vim.PrefixInner, 1, "baz"},
		{"a(", code, 12, vim.ObjParen, vim.PrefixAround, 1, "(baz)"},
		{"2i( selects the outer pair", code, 12, vim.ObjParen, vim.PrefixInner, 2, "bar, (baz)"},
		{"i( on the open paren", code, 4, vim.ObjParen, vim.PrefixInner, 1, "bar, (baz)"},
		{"i( on the close paren", code, 15, vim.ObjParen, vim.PrefixInner, 1, "bar, (baz)"},

		{`i"`, quoted, 6, vim.ObjDoubleQuote, vim.PrefixInner, 1, "hi there"},
		{`a"`, quoted, 6, vim.ObjDoubleQuote, vim.PrefixAround, 1, `"hi there" `},
		{`i" before any quote`, quoted, 0, vim.ObjDoubleQuote, vim.PrefixInner, 1, "hi there"},
		{`i" between pairs`, quoted, 16, vim.ObjDoubleQuote, vim.PrefixInner, 1, "bye"},
		{`a" at line end`, quoted, 20, vim.ObjDoubleQuote, vim.PrefixAround, 1, ` "bye"`},
		{`i" skips escapes`, `"a\"b"`, 1, vim.ObjDoubleQuote, vim.PrefixInner, 1, `a\"b`},

		{"is", "One. Two. Three.", 5, vim.ObjSentence, vim.PrefixInner, 1, "Two."},
		{"as", "One. Two. Three.", 5, vim.ObjSentence, vim.PrefixAround, 1, "Two. "},

		{"i{ on a block", "f {\n\tx\n}", 5, vim.ObjBrace, vim.PrefixInner, 1, "\tx\n"},
		{"a{ on a block", "f {\n\tx\n}", 5, vim.ObjBrace, vim.PrefixAround, 1, "{\n\tx\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := memhost.NewBuffer(tt.text)
			rng, err := motion.TextObject(buf, tt.from, tt.obj, tt.prefix, tt.count)
			require.NoError(t, err)

			start, end := rng.Span(buf)
			got, err := buf.TextRange(start, end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParagraphObject(t *testing.T) {
	buf := memhost.NewBuffer("a\nb\n\nc")

	tests := []struct {
		name   string
		from   int
		prefix vim.TextObjectPrefix
		want   string
	}{
		{"ip", 0, vim.PrefixInner, "a\nb\n"},
		{"ap takes the blank line after", 0, vim.PrefixAround, "a\nb\n\n"},
		{"ap on the last paragraph takes the blank line before", 5, vim.PrefixAround, "\nc"},
		{"ip on a blank line", 4, vim.PrefixInner, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := motion.TextObject(buf, tt.from, vim.ObjParagraph, tt.prefix, 1)
			require.NoError(t, err)
			assert.True(t, rng.Linewise)

			start, end := rng.Span(buf)
			got, err := buf.TextRange(start, end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextObjectNoTarget(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		from  int
		obj   vim.TextObject
		count int
	}{
		{"no enclosing paren", "foo (bar)", 0, vim.ObjParen, 1},
		{"nesting too shallow", "((x))", 2, vim.ObjParen, 3},
		{"unbalanced", "(abc", 2, vim.ObjParen, 1},
		{"no quotes", "plain", 2, vim.ObjDoubleQuote, 1},
		{"lone quote", `it's`, 0, vim.ObjSingleQuote, 1},
		{"word on empty line", "\n", 0, vim.ObjWord, 1},
		{"no object", "x", 0, vim.ObjNone, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := motion.TextObject(memhost.NewBuffer(tt.text), tt.from, tt.obj, vim.PrefixInner, tt.count)
			assert.ErrorIs(t, err, motion.ErrNoTarget)
		})
	}
}

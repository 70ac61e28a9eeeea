package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/host/memhost"
)

func TestDefaultCharClass(t *testing.T) {
	tests := map[rune]host.CharClass{
		'a':  host.ClassWord,
		'Z':  host.ClassWord,
		'7':  host.ClassWord,
		'_':  host.ClassWord,
		'é':  host.ClassWord,
		' ':  host.ClassWhitespace,
		'\t': host.ClassWhitespace,
		'\n': host.ClassEOL,
		'.':  host.ClassPunctuation,
		'(':  host.ClassPunctuation,
	}
	for r, want := range tests {
		assert.Equal(t, want, host.DefaultCharClass(r), "rune %q", r)
	}

	assert.Equal(t, host.ClassWord, host.BigWordClass(host.ClassPunctuation))
	assert.Equal(t, host.ClassWhitespace, host.BigWordClass(host.ClassWhitespace))
}

func TestLineEnding(t *testing.T) {
	for _, name := range []string{"lf", "crlf", "cr"} {
		le, err := host.ParseLineEnding(name)
		require.NoError(t, err)
		assert.Equal(t, name, le.String())
	}

	le, err := host.ParseLineEnding("dos")
	require.NoError(t, err)
	assert.Equal(t, "\r\n", le.Sequence())

	_, err = host.ParseLineEnding("amiga")
	assert.Error(t, err)

	assert.Equal(t, host.LineEndingCRLF, host.DetectLineEnding("a\r\nb\r\nc\n"))
	assert.Equal(t, host.LineEndingCR, host.DetectLineEnding("a\rb\r"))
	assert.Equal(t, host.LineEndingLF, host.DetectLineEnding("no newline"))
}

func TestGraphemeStepping(t *testing.T) {
	// "a" + flag (two regional indicators) + "b" on the first line.
	buf := memhost.NewBuffer("a\U0001F1FA\U0001F1F8b\nx")

	assert.Equal(t, 1, host.NextGrapheme(buf, 0))
	assert.Equal(t, 9, host.NextGrapheme(buf, 1), "a flag is one cluster")
	assert.Equal(t, 10, host.NextGrapheme(buf, 9))
	assert.Equal(t, 10, host.NextGrapheme(buf, 10), "never crosses the line end")

	assert.Equal(t, 1, host.PrevGrapheme(buf, 9))
	assert.Equal(t, 0, host.PrevGrapheme(buf, 0))
	assert.Equal(t, 11, host.PrevGrapheme(buf, 11), "never crosses the line start")

	assert.Equal(t, 9, host.LastGrapheme(buf, 0))
	assert.Equal(t, 11, host.LastGrapheme(buf, 1))
}

func TestHelpers(t *testing.T) {
	buf := memhost.NewBuffer("ab\ncd\n")

	assert.Equal(t, 3, buf.LineCount())
	assert.Equal(t, 1, host.LineOf(buf, 4))
	assert.Equal(t, 0, host.Clamp(buf, -1))
	assert.Equal(t, 6, host.Clamp(buf, 60))
	assert.Equal(t, "cd", host.LineText(buf, 1))
	assert.Equal(t, 3, host.NextLineStart(buf, 0))
	assert.Equal(t, 6, host.NextLineStart(buf, 2))
	assert.Equal(t, -1, host.Point{Line: 0, Column: 9}.Compare(host.Point{Line: 1}))
}

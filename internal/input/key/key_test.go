package key

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotation(t *testing.T) {
	tests := []struct {
		input string
		want  []Event
	}{
		{"dw", []Event{NewRuneEvent('d', ModNone), NewRuneEvent('w', ModNone)}},
		{"<Esc>", []Event{NewSpecialEvent(KeyEscape, ModNone)}},
		{"i<CR>", []Event{NewRuneEvent('i', ModNone), NewSpecialEvent(KeyEnter, ModNone)}},
		{"<C-r>", []Event{NewRuneEvent('r', ModCtrl)}},
		{"<C-R>", []Event{NewRuneEvent('r', ModCtrl)}},
		{"<lt><Space>", []Event{NewRuneEvent('<', ModNone), NewRuneEvent(' ', ModNone)}},
		{"<C-S-Left>", []Event{NewSpecialEvent(KeyLeft, ModCtrl|ModShift)}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNotation(tt.input)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.True(t, got[i].Equals(tt.want[i]), "event %d = %#v, want %#v", i, got[i], tt.want[i])
			}
		})
	}
}

func TestParseNotationErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyNotation},
		{"d<Esc", ErrUnmatchedBracket},
		{"<Nope>", ErrUnknownKey},
		{"<X-a>", ErrUnknownKey},
	}

	for _, tt := range tests {
		_, err := ParseNotation(tt.input)
		assert.ErrorIs(t, err, tt.want, "ParseNotation(%q)", tt.input)
	}
}

func TestFormatNotationRoundTrip(t *testing.T) {
	for _, s := range []string{"d2w", "ci(<Esc>", "<C-r>", "f<lt>", "i<Space><BS><CR>"} {
		assert.Equal(t, s, FormatNotation(MustParseNotation(s)))
	}
}

func TestEventPredicates(t *testing.T) {
	assert.True(t, NewSpecialEvent(KeyEscape, ModNone).IsEscape())
	assert.True(t, NewRuneEvent('[', ModCtrl).IsEscape(), "<C-[> is an escape")
	assert.True(t, NewRuneEvent('c', ModCtrl).IsEscape(), "<C-c> is an escape")
	assert.False(t, NewRuneEvent('A', ModShift).IsModified(), "Shift on a character is not a modifier")
	assert.True(t, NewRuneEvent('r', ModCtrl).IsCtrl('r'))
	assert.True(t, NewRuneEvent('r', ModNone).IsChar())
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), NewRuneEvent('w', ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), NewSpecialEvent(KeyEscape, ModNone)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), NewSpecialEvent(KeyEnter, ModNone)},
		{"ctrl-r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), NewRuneEvent('r', ModCtrl)},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), NewSpecialEvent(KeyLeft, ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTcell(tt.ev)
			assert.True(t, got.Equals(tt.want), "FromTcell() = %#v, want %#v", got, tt.want)
		})
	}
}

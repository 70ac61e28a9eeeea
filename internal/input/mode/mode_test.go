package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/evil/internal/input/vim"
)

func opToken(op vim.Operator) vim.Token {
	return vim.Token{Kind: vim.TokenOperator, Operator: op}
}

func switchToken(s vim.ModeSwitch) vim.Token {
	return vim.Token{Kind: vim.TokenModeSwitch, Switch: s}
}

var (
	cancel = vim.Token{Kind: vim.TokenCancel}
	motion = vim.Token{Kind: vim.TokenMotion, Motion: vim.MotionWordForward}
)

func TestModeStrings(t *testing.T) {
	tests := []struct {
		mode   Mode
		name   string
		cursor CursorStyle
	}{
		{Normal, ModeNormal, CursorBlock},
		{Insert, ModeInsert, CursorBar},
		{Visual, ModeVisual, CursorBlock},
		{VisualLine, ModeVisualLine, CursorBlock},
		{Replace, ModeReplace, CursorUnderline},
		{OperatorPending, ModeOperatorPending, CursorUnderline},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.mode.String())
		assert.Equal(t, tt.cursor, tt.mode.CursorStyle(), tt.name)
	}
}

func TestParse(t *testing.T) {
	m, err := Parse("insert")
	require.NoError(t, err)
	assert.Equal(t, Insert, m)

	_, err = Parse("visual")
	assert.Error(t, err, "visual is not an initial mode")
}

func TestPostMode(t *testing.T) {
	assert.Equal(t, Insert, PostMode(vim.OpChange))
	for _, op := range []vim.Operator{vim.OpDelete, vim.OpYank, vim.OpIndentRight, vim.OpToggleCase} {
		assert.Equal(t, Normal, PostMode(op), "%v", op)
	}
}

func TestMachineModeSwitches(t *testing.T) {
	tests := []struct {
		name  string
		from  Mode
		token vim.Token
		want  Mode
	}{
		{"i", Normal, switchToken(vim.SwitchInsert), Insert},
		{"a", Normal, switchToken(vim.SwitchAppend), Insert},
		{"A", Normal, switchToken(vim.SwitchAppendLineEnd), Insert},
		{"v", Normal, switchToken(vim.SwitchVisual), Visual},
		{"V", Normal, switchToken(vim.SwitchVisualLine), VisualLine},
		{"R", Normal, switchToken(vim.SwitchReplace), Replace},
		{"v in visual", Visual, switchToken(vim.SwitchVisual), Normal},
		{"V in visual", Visual, switchToken(vim.SwitchVisualLine), VisualLine},
		{"v in visual line", VisualLine, switchToken(vim.SwitchVisual), Visual},
		{"V in visual line", VisualLine, switchToken(vim.SwitchVisualLine), Normal},
		{"motion keeps visual", Visual, motion, Visual},
		{"motion keeps normal", Normal, motion, Normal},
		{"escape from insert", Insert, cancel, Normal},
		{"escape from visual", Visual, cancel, Normal},
		{"escape from replace", Replace, cancel, Normal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(Normal)
			m.Set(tt.from)
			tr := m.Apply(tt.token)
			assert.Equal(t, tt.want, m.Current())
			assert.Equal(t, tt.from, tr.From)
			assert.Equal(t, tt.want, tr.To)
		})
	}
}

func TestMachineOperatorPending(t *testing.T) {
	m := NewMachine(Normal)

	m.Apply(opToken(vim.OpDelete))
	require.Equal(t, OperatorPending, m.Current())
	require.Equal(t, vim.OpDelete, m.Operator())

	tr := m.Apply(opToken(vim.OpDelete))
	assert.False(t, tr.Reprocess)
	assert.Equal(t, Normal, m.Current(), "dd completes in normal")

	m.Apply(opToken(vim.OpChange))
	m.Apply(motion)
	assert.Equal(t, Insert, m.Current(), "cw enters insert")
}

func TestMachineMismatchedOperatorReprocesses(t *testing.T) {
	m := NewMachine(Normal)
	m.Apply(opToken(vim.OpDelete))

	tr := m.Apply(opToken(vim.OpYank))
	assert.True(t, tr.Reprocess)
	assert.Equal(t, Normal, m.Current())
	assert.Equal(t, vim.OpNone, m.Operator())
}

func TestMachineCancelDiscardsOperator(t *testing.T) {
	m := NewMachine(Normal)
	m.Apply(opToken(vim.OpChange))

	tr := m.Apply(cancel)
	assert.Equal(t, Normal, m.Current())
	assert.Equal(t, vim.OpNone, m.Operator())
	assert.False(t, tr.AdjustCursor, "cancelling an operator leaves the cursor")
}

func TestMachineAdjustCursorLeavingInsert(t *testing.T) {
	for _, from := range []Mode{Insert, Replace} {
		m := NewMachine(Normal)
		m.Set(from)
		assert.True(t, m.Apply(cancel).AdjustCursor, "leaving %v", from)
	}
}

func TestMachineVisualOperator(t *testing.T) {
	m := NewMachine(Normal)
	m.Apply(switchToken(vim.SwitchVisual))

	m.Apply(opToken(vim.OpChange))
	assert.Equal(t, Insert, m.Current(), "visual c enters insert")
}

func TestMachineFailAndComplete(t *testing.T) {
	m := NewMachine(Normal)
	m.Apply(opToken(vim.OpChange))
	m.Apply(motion)
	m.Fail()
	assert.Equal(t, Normal, m.Current())

	m.Complete(vim.OpChange)
	assert.Equal(t, Insert, m.Current())
}

func TestMachineSetRejectsOperatorPending(t *testing.T) {
	m := NewMachine(Normal)
	m.Set(OperatorPending)
	assert.Equal(t, Normal, m.Current())
}

func TestMachineOnChange(t *testing.T) {
	m := NewMachine(Normal)

	var changes []Mode
	m.OnChange(func(from, to Mode) {
		changes = append(changes, to)
	})

	m.Apply(switchToken(vim.SwitchInsert))
	m.Apply(cancel)
	m.Apply(cancel)

	assert.Equal(t, []Mode{Insert, Normal}, changes)
}

func TestNewMachineInitial(t *testing.T) {
	assert.Equal(t, Insert, NewMachine(Insert).Current())
	assert.Equal(t, Normal, NewMachine(OperatorPending).Current(), "operator-pending is not an initial mode")
}

package evil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/host/memhost"
	"github.com/dshills/evil/internal/input/macro"
	"github.com/dshills/evil/internal/input/mode"
)

func TestMacroRecordAndPlay(t *testing.T) {
	e, _ := newEngine(t)
	v := newView("one\ntwo\nthree", 0)

	run(e, v, "qaxj")
	assert.Equal(t, 'a', e.Recording(v))
	run(e, v, "q")
	assert.Zero(t, e.Recording(v))

	reg, ok := v.Registers().Get('a')
	require.True(t, ok)
	assert.Equal(t, "xj", reg.Text)
	assert.Equal(t, "ne\ntwo\nthree", v.Text())

	run(e, v, "@a")
	assert.Equal(t, "ne\nwo\nthree", v.Text())

	run(e, v, "@@")
	assert.Equal(t, "ne\nwo\nhree", v.Text())
}

func TestMacroReplaysInsertedText(t *testing.T) {
	e, _ := newEngine(t)
	v := newView("x\ny\nz", 0)

	run(e, v, "qaI- <Esc>jq")
	reg, _ := v.Registers().Get('a')
	assert.Equal(t, "I-<Space><Esc>j", reg.Text)

	res := run(e, v, "2@a")
	assert.Equal(t, "- x\n- y\n- z", v.Text())
	assert.Equal(t, mode.Normal, res.Mode)
}

func TestMacroQInsertModeIsText(t *testing.T) {
	e, _ := newEngine(t)
	v := newView("", 0)

	run(e, v, "qbiq<Esc>q")
	assert.Equal(t, "q", v.Text())
	assert.Zero(t, e.Recording(v))

	reg, _ := v.Registers().Get('b')
	assert.Equal(t, "iq<Esc>", reg.Text)
}

func TestMacroStopsOnFailure(t *testing.T) {
	e, _ := newEngine(t)
	v := newView("a,b,c", 0)

	run(e, v, "qaf,xq")
	assert.Equal(t, "ab,c", v.Text())

	res := run(e, v, "5@a")
	assert.NoError(t, res.Err)
	assert.Equal(t, "abc", v.Text())
	_, ok := v.LastMessage()
	assert.False(t, ok)
}

func TestMacroEmptyRegister(t *testing.T) {
	e, _ := newEngine(t)
	v := newView("abc", 0)

	res := run(e, v, "@z")
	assert.ErrorIs(t, res.Err, macro.ErrEmptyRegister)

	res = run(e, v, "@@")
	assert.ErrorIs(t, res.Err, macro.ErrEmptyRegister)

	_, ok := v.LastMessage()
	assert.False(t, ok)
	assert.Equal(t, "abc", v.Text())
}

func TestMacroInvalidRegisterIsReported(t *testing.T) {
	e, _ := newEngine(t)
	v := newView("abc", 0)

	res := run(e, v, "q!")
	assert.ErrorIs(t, res.Err, macro.ErrInvalidRegister)
	assert.Zero(t, e.Recording(v))
	msg, ok := v.LastMessage()
	require.True(t, ok)
	assert.Equal(t, host.LevelError, msg.Level)
}

func TestMacroRecursionTerminates(t *testing.T) {
	e, _ := newEngine(t)
	v := newView(strings.Repeat("a", 200), 0)
	v.Registers().Set('a', host.Register{Text: "x@a"})

	run(e, v, "@a")
	assert.Len(t, v.Text(), 200-macro.DefaultMaxDepth)
	msg, ok := v.LastMessage()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "too deep")
}

func TestGateToggleDiscardsRecording(t *testing.T) {
	e, store := newEngine(t)
	v := newView("abc", 0)

	run(e, v, "qa")
	require.Equal(t, 'a', e.Recording(v))

	require.NoError(t, store.SetEvil(false))
	require.NoError(t, store.SetEvil(true))
	run(e, v, "x")
	assert.Zero(t, e.Recording(v))
	_, ok := v.Registers().Get('a')
	assert.False(t, ok)
}

// detachedView is a view whose host keeps no registers once detached.
type detachedView struct {
	*memhost.View
	detached bool
}

func (v *detachedView) Registers() host.Registers {
	if v.detached {
		return nil
	}
	return v.View.Registers()
}

func TestMacroWithoutRegisters(t *testing.T) {
	e, _ := newEngine(t)
	v := &detachedView{View: newView("abc", 0), detached: true}

	res := run(e, v, "qa")
	assert.ErrorIs(t, res.Err, ErrNoRegisters)
	assert.Zero(t, e.Recording(v))
	msg, ok := v.LastMessage()
	require.True(t, ok)
	assert.Equal(t, host.LevelError, msg.Level)

	res = run(e, v, "x")
	require.NoError(t, res.Err)
	assert.Equal(t, "bc", v.Text())

	res = run(e, v, "@a")
	assert.ErrorIs(t, res.Err, ErrNoRegisters)
	assert.Equal(t, mode.Normal, res.Mode)
	assert.Equal(t, "bc", v.Text())
}

func TestMacroRegistersGoneBeforeStop(t *testing.T) {
	e, _ := newEngine(t)
	v := &detachedView{View: newView("abc", 0)}

	run(e, v, "qax")
	require.Equal(t, 'a', e.Recording(v))

	v.detached = true
	res := run(e, v, "q")
	assert.ErrorIs(t, res.Err, ErrNoRegisters)
	assert.Equal(t, Handled, res.Status)
	assert.Zero(t, e.Recording(v))
	msg, ok := v.LastMessage()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "no registers")
}

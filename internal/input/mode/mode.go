package mode

import (
	"fmt"

	"github.com/dshills/evil/internal/input/vim"
)

// Mode is the active editing mode of a view.
type Mode uint8

const (
	Normal Mode = iota
	Insert
	Visual
	VisualLine
	Replace
	OperatorPending
)

// Standard mode names.
const (
	ModeNormal          = "normal"
	ModeInsert          = "insert"
	ModeVisual          = "visual"
	ModeVisualLine      = "visual-line"
	ModeReplace         = "replace"
	ModeOperatorPending = "operator-pending"
)

var modeNames = [...]string{
	Normal:          ModeNormal,
	Insert:          ModeInsert,
	Visual:          ModeVisual,
	VisualLine:      ModeVisualLine,
	Replace:         ModeReplace,
	OperatorPending: ModeOperatorPending,
}

// String returns the mode identifier.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// DisplayName returns a human-readable name for the status line.
func (m Mode) DisplayName() string {
	switch m {
	case Insert:
		return "-- INSERT --"
	case Visual:
		return "-- VISUAL --"
	case VisualLine:
		return "-- VISUAL LINE --"
	case Replace:
		return "-- REPLACE --"
	case OperatorPending:
		return "-- (op) --"
	default:
		return "NORMAL"
	}
}

// IsVisual reports whether the mode has an active selection.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine
}

// IsTextEntry reports whether typed characters become buffer text.
func (m Mode) IsTextEntry() bool {
	return m == Insert || m == Replace
}

// CursorStyle returns the cursor style for this mode.
func (m Mode) CursorStyle() CursorStyle {
	switch m {
	case Insert:
		return CursorBar
	case Replace, OperatorPending:
		return CursorUnderline
	default:
		return CursorBlock
	}
}

// Parse returns the mode named s. Only modes a view may start in are
// accepted: normal and insert.
func Parse(s string) (Mode, error) {
	switch s {
	case ModeNormal:
		return Normal, nil
	case ModeInsert:
		return Insert, nil
	default:
		return Normal, fmt.Errorf("unknown initial mode: %q", s)
	}
}

// PostMode returns the mode a view is left in after op executes.
func PostMode(op vim.Operator) Mode {
	if op.EntersInsert() {
		return Insert
	}
	return Normal
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline

	// CursorHidden hides the cursor.
	CursorHidden
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	case CursorHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

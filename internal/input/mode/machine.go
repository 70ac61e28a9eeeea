package mode

import "github.com/dshills/evil/internal/input/vim"

// Transition describes the effect of one token on the machine.
type Transition struct {
	From Mode
	To   Mode

	// AdjustCursor asks the caller to move the cursor one column left,
	// clamped to the line start (leaving Insert or Replace).
	AdjustCursor bool

	// Reprocess asks the caller to feed the token again from Normal mode.
	Reprocess bool
}

// Changed reports whether the mode changed.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// ChangeCallback is called when the mode changes.
type ChangeCallback func(from, to Mode)

// Machine tracks the mode of one view.
type Machine struct {
	current  Mode
	previous Mode

	// operator is the pending operator while in OperatorPending.
	operator vim.Operator

	callbacks []ChangeCallback
}

// NewMachine creates a machine in the given initial mode. Modes other than
// Normal and Insert fall back to Normal.
func NewMachine(initial Mode) *Machine {
	if initial != Insert {
		initial = Normal
	}
	return &Machine{current: initial, previous: initial}
}

// Current returns the active mode.
func (m *Machine) Current() Mode {
	return m.current
}

// Previous returns the mode before the last change.
func (m *Machine) Previous() Mode {
	return m.previous
}

// Operator returns the pending operator, or vim.OpNone.
func (m *Machine) Operator() vim.Operator {
	if m.current != OperatorPending {
		return vim.OpNone
	}
	return m.operator
}

// OnChange registers a callback invoked after every mode change.
func (m *Machine) OnChange(cb ChangeCallback) {
	if cb != nil {
		m.callbacks = append(m.callbacks, cb)
	}
}

// Apply applies the transition table to a classified token. Tokens that
// do not affect the mode leave it unchanged.
func (m *Machine) Apply(tok vim.Token) Transition {
	from := m.current

	switch tok.Kind {
	case vim.TokenCancel:
		return m.set(Normal)

	case vim.TokenModeSwitch:
		return m.applySwitch(tok.Switch)

	case vim.TokenOperator:
		switch from {
		case Normal:
			m.operator = tok.Operator
			return m.set(OperatorPending)
		case OperatorPending:
			if tok.Operator == m.operator {
				return m.set(PostMode(m.operator))
			}
			tr := m.set(Normal)
			tr.Reprocess = true
			return tr
		case Visual, VisualLine:
			return m.set(PostMode(tok.Operator))
		}

	case vim.TokenMotion, vim.TokenTextObject:
		if from == OperatorPending {
			return m.set(PostMode(m.operator))
		}
	}

	return Transition{From: from, To: from}
}

func (m *Machine) applySwitch(s vim.ModeSwitch) Transition {
	from := m.current

	switch from {
	case Normal:
		switch s {
		case vim.SwitchInsert, vim.SwitchAppend, vim.SwitchInsertLineStart, vim.SwitchAppendLineEnd:
			return m.set(Insert)
		case vim.SwitchVisual:
			return m.set(Visual)
		case vim.SwitchVisualLine:
			return m.set(VisualLine)
		case vim.SwitchReplace:
			return m.set(Replace)
		}
	case Visual:
		switch s {
		case vim.SwitchVisual:
			return m.set(Normal)
		case vim.SwitchVisualLine:
			return m.set(VisualLine)
		}
	case VisualLine:
		switch s {
		case vim.SwitchVisual:
			return m.set(Visual)
		case vim.SwitchVisualLine:
			return m.set(Normal)
		}
	}

	return Transition{From: from, To: from}
}

// Complete finishes a command carrying op, moving to the operator's post
// mode. Used for shorthands (x, C, S, ...) that never enter OperatorPending.
func (m *Machine) Complete(op vim.Operator) Transition {
	return m.set(PostMode(op))
}

// Fail returns the machine to Normal after a command had no effect or a
// host mutation failed.
func (m *Machine) Fail() Transition {
	return m.set(Normal)
}

// Set forces a mode. OperatorPending cannot be entered this way.
func (m *Machine) Set(to Mode) Transition {
	if to == OperatorPending {
		return Transition{From: m.current, To: m.current}
	}
	return m.set(to)
}

// Reset returns to Normal without notifying callbacks.
func (m *Machine) Reset() {
	m.previous = m.current
	m.current = Normal
	m.operator = vim.OpNone
}

func (m *Machine) set(to Mode) Transition {
	from := m.current
	tr := Transition{
		From:         from,
		To:           to,
		AdjustCursor: from.IsTextEntry() && to == Normal,
	}

	if to != OperatorPending {
		m.operator = vim.OpNone
	}
	if from == to {
		return tr
	}

	m.previous = from
	m.current = to
	for _, cb := range m.callbacks {
		cb(from, to)
	}
	return tr
}

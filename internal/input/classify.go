package input

import (
	"github.com/dshills/evil/internal/input/key"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/input/vim"
)

// Await is what the composer expects from the next key, independent of
// the mode.
type Await uint8

const (
	AwaitNone Await = iota
	AwaitRegister
	AwaitChar
	AwaitG
	AwaitObject
)

// String returns the await state name.
func (a Await) String() string {
	switch a {
	case AwaitRegister:
		return "register"
	case AwaitChar:
		return "char"
	case AwaitG:
		return "g"
	case AwaitObject:
		return "object"
	default:
		return "none"
	}
}

// ClassifyContext is the state a keystroke is classified against.
type ClassifyContext struct {
	Mode  mode.Mode
	Await Await

	// Operator is the pending operator in OperatorPending mode. It lets the
	// last key of a g-operator double it (guu, g~~).
	Operator vim.Operator

	// Counting is set once a count digit has been typed, making 0 a digit.
	Counting bool
}

var specialMotions = map[key.Key]vim.Motion{
	key.KeyLeft:      vim.MotionLeft,
	key.KeyRight:     vim.MotionRight,
	key.KeyUp:        vim.MotionUp,
	key.KeyDown:      vim.MotionDown,
	key.KeyHome:      vim.MotionLineStart,
	key.KeyEnd:       vim.MotionLineEnd,
	key.KeyEnter:     vim.MotionNextLineStart,
	key.KeyBackspace: vim.MotionLeft,
}

// Classify maps a key event to a semantic token. It has no side effects.
//
// The same key classifies differently by context: 'i' is a mode switch in
// Normal mode, a literal in Insert mode, and a text object prefix right
// after an operator or in Visual mode.
func Classify(ev key.Event, ctx ClassifyContext) vim.Token {
	if ev.IsEscape() {
		return vim.Token{Kind: vim.TokenCancel}
	}

	if ctx.Await != AwaitNone {
		return classifyAwait(ev, ctx)
	}

	switch ctx.Mode {
	case mode.Insert, mode.Replace:
		if ev.IsRune() && !ev.IsModified() {
			return vim.Token{Kind: vim.TokenLiteral, Rune: ev.Rune}
		}
		return unrecognized
	}

	if ev.IsCtrl('r') && ctx.Mode == mode.Normal {
		return vim.Token{Kind: vim.TokenCommand, Command: vim.CmdRedo}
	}
	if ev.IsModified() {
		return unrecognized
	}
	if !ev.IsRune() {
		if m, ok := specialMotions[ev.Key]; ok {
			return vim.Token{Kind: vim.TokenMotion, Motion: m}
		}
		return unrecognized
	}

	r := ev.Rune

	if vim.IsCountStart(r) || (r == '0' && ctx.Counting) {
		return vim.Token{Kind: vim.TokenDigit, Rune: r}
	}
	if r == 'g' {
		return vim.Token{Kind: vim.TokenPrefix, Rune: r}
	}

	switch ctx.Mode {
	case mode.OperatorPending:
		return classifyOperatorPending(r, ctx.Operator)
	case mode.Visual, mode.VisualLine:
		return classifyVisual(r)
	default:
		return classifyNormal(r)
	}
}

var unrecognized = vim.Token{Kind: vim.TokenUnrecognized}

func classifyAwait(ev key.Event, ctx ClassifyContext) vim.Token {
	var r rune
	switch {
	case ev.IsRune() && !ev.IsModified():
		r = ev.Rune
	case ev.Key == key.KeyTab && ev.Modifiers == key.ModNone:
		r = '\t'
	default:
		return unrecognized
	}

	switch ctx.Await {
	case AwaitRegister:
		if vim.IsValidRegister(r) {
			return vim.Token{Kind: vim.TokenRegister, Rune: r}
		}
	case AwaitChar:
		return vim.Token{Kind: vim.TokenCharArg, Rune: r}
	case AwaitG:
		if m, ok := vim.MotionFromG(r); ok {
			return vim.Token{Kind: vim.TokenMotion, Motion: m, Rune: r}
		}
		if op, ok := vim.OperatorFromG(r); ok {
			return vim.Token{Kind: vim.TokenOperator, Operator: op, Rune: r}
		}
	case AwaitObject:
		if obj, ok := vim.TextObjectFromKey(r); ok {
			return vim.Token{Kind: vim.TokenTextObject, Object: obj, Rune: r}
		}
	}
	return unrecognized
}

func classifyNormal(r rune) vim.Token {
	if s, ok := vim.ModeSwitchFromKey(r); ok {
		return vim.Token{Kind: vim.TokenModeSwitch, Switch: s, Rune: r}
	}
	if r == '"' {
		return vim.Token{Kind: vim.TokenRegisterPrefix, Rune: r}
	}
	if op, ok := vim.OperatorFromKey(r); ok {
		return vim.Token{Kind: vim.TokenOperator, Operator: op, Rune: r}
	}
	if m, ok := vim.MotionFromKey(r); ok {
		return vim.Token{Kind: vim.TokenMotion, Motion: m, Rune: r}
	}
	if c, ok := vim.CommandFromKey(r); ok {
		return vim.Token{Kind: vim.TokenCommand, Command: c, Rune: r}
	}
	return unrecognized
}

func classifyOperatorPending(r rune, pending vim.Operator) vim.Token {
	if prefix := vim.GetTextObjectPrefix(r); prefix != vim.PrefixNone {
		return vim.Token{Kind: vim.TokenTextObjectPrefix, Prefix: prefix, Rune: r}
	}
	if op, ok := vim.OperatorFromKey(r); ok {
		return vim.Token{Kind: vim.TokenOperator, Operator: op, Rune: r}
	}
	if pending.IsGPrefixed() && r == pending.DoubleKey() {
		return vim.Token{Kind: vim.TokenOperator, Operator: pending, Rune: r}
	}
	if m, ok := vim.MotionFromKey(r); ok {
		return vim.Token{Kind: vim.TokenMotion, Motion: m, Rune: r}
	}
	return unrecognized
}

var visualCaseOperators = map[rune]vim.Operator{
	'u': vim.OpLowercase,
	'U': vim.OpUppercase,
	'~': vim.OpToggleCase,
}

func classifyVisual(r rune) vim.Token {
	switch r {
	case 'v':
		return vim.Token{Kind: vim.TokenModeSwitch, Switch: vim.SwitchVisual, Rune: r}
	case 'V':
		return vim.Token{Kind: vim.TokenModeSwitch, Switch: vim.SwitchVisualLine, Rune: r}
	case 'o':
		return vim.Token{Kind: vim.TokenCommand, Command: vim.CmdSwapSelectionEnds, Rune: r}
	case '"':
		return vim.Token{Kind: vim.TokenRegisterPrefix, Rune: r}
	}
	if prefix := vim.GetTextObjectPrefix(r); prefix != vim.PrefixNone {
		return vim.Token{Kind: vim.TokenTextObjectPrefix, Prefix: prefix, Rune: r}
	}
	if op, ok := vim.OperatorFromKey(r); ok {
		return vim.Token{Kind: vim.TokenOperator, Operator: op, Rune: r}
	}
	if op, ok := visualCaseOperators[r]; ok {
		return vim.Token{Kind: vim.TokenOperator, Operator: op, Rune: r}
	}
	if m, ok := vim.MotionFromKey(r); ok {
		return vim.Token{Kind: vim.TokenMotion, Motion: m, Rune: r}
	}
	if c, ok := vim.CommandFromKey(r); ok {
		switch c {
		case vim.CmdDeleteChar, vim.CmdDeleteCharBefore, vim.CmdDeleteToEnd, vim.CmdChangeToEnd,
			vim.CmdSubstituteChar, vim.CmdSubstituteLine, vim.CmdYankLine, vim.CmdJoinLines,
			vim.CmdPasteAfter, vim.CmdPasteBefore:
			return vim.Token{Kind: vim.TokenCommand, Command: c, Rune: r}
		}
	}
	return unrecognized
}

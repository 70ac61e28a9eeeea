package input

import (
	"github.com/dshills/evil/internal/input/key"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/input/vim"
)

// PendingCommand accumulates a command across keystrokes.
type PendingCommand struct {
	// Count1 is the count typed before the operator.
	Count1 vim.CountState

	// Operator is the pending operator, if any.
	Operator vim.Operator

	// Count2 is the count typed after the operator.
	Count2 vim.CountState

	// Register is the register named with ", or 0.
	Register rune
}

// Empty reports whether nothing has been accumulated.
func (p PendingCommand) Empty() bool {
	return !p.Count1.Active && !p.Count2.Active && p.Operator == vim.OpNone && p.Register == 0
}

// EffectiveCount returns count1 x count2, absent counts counting as 1.
func (p PendingCommand) EffectiveCount() int {
	return vim.CombineCounts(p.Count1.Value, p.Count2.Value)
}

// HasCount reports whether either count was typed.
func (p PendingCommand) HasCount() bool {
	return p.Count1.Active || p.Count2.Active
}

// CommandKind identifies what a completed command does.
type CommandKind uint8

const (
	// KindMove moves the cursor (or extends a visual selection) by a motion.
	KindMove CommandKind = iota

	// KindOperate applies an operator to a motion, text object, whole
	// lines, or the visual selection.
	KindOperate

	// KindSelect sets the visual selection to a text object.
	KindSelect

	// KindModeSwitch enters a mode (i, a, I, A, v, V, R).
	KindModeSwitch

	// KindAction runs a standalone command (p, r, J, u, ...).
	KindAction

	// KindLiteral is a character typed in Insert or Replace mode.
	KindLiteral
)

// String returns the command kind name.
func (k CommandKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindOperate:
		return "operate"
	case KindSelect:
		return "select"
	case KindModeSwitch:
		return "modeSwitch"
	case KindAction:
		return "action"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Command is a completed, self-contained command.
type Command struct {
	Kind CommandKind

	// Count is the effective count (at least 1).
	Count int

	// CountExplicit is set when a count was typed (gg, G use it as a line).
	CountExplicit bool

	// Register is the register named with ", or 0 for the default.
	Register rune

	Operator vim.Operator
	Motion   vim.Motion
	Object   vim.TextObject
	Prefix   vim.TextObjectPrefix

	// Char is the argument of f, t, F, T and r, or the typed literal.
	Char rune

	// Linewise is set for doubled operators and linewise shorthands.
	Linewise bool

	// Visual is set when the operator applies to the visual selection.
	Visual bool

	Switch vim.ModeSwitch
	Action vim.Command

	// From is the mode the command was composed in.
	From mode.Mode

	// Keys is the notation of the keys that composed the command.
	Keys string
}

// Status is the outcome of feeding one key to the composer.
type Status uint8

const (
	// StatusPending means more keys are needed.
	StatusPending Status = iota

	// StatusComplete means Result.Command is ready to execute.
	StatusComplete

	// StatusCancelled means pending state was discarded (Escape).
	StatusCancelled

	// StatusPassthrough means the key is not part of the emulation.
	StatusPassthrough

	statusReprocess
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusCancelled:
		return "cancelled"
	case StatusPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Result is the outcome of Composer.Feed.
type Result struct {
	Status Status

	// Command is set when Status is StatusComplete.
	Command *Command

	// Transition is the mode change caused by the key.
	Transition mode.Transition

	// Reprocessed is set when the key ended a malformed sequence and was
	// processed again from a clean state.
	Reprocessed bool
}

// Composer accumulates keys into commands for one view.
type Composer struct {
	machine *mode.Machine
	pending PendingCommand

	await       Await
	charMotion  vim.Motion
	charCommand vim.Command
	objPrefix   vim.TextObjectPrefix

	keys []key.Event
}

// NewComposer creates a composer driving the given machine.
func NewComposer(machine *mode.Machine) *Composer {
	return &Composer{
		machine: machine,
		keys:    make([]key.Event, 0, 8),
	}
}

// Machine returns the mode machine the composer drives.
func (c *Composer) Machine() *mode.Machine {
	return c.machine
}

// Pending returns a copy of the pending command.
func (c *Composer) Pending() PendingCommand {
	return c.pending
}

// Await returns what the composer expects next.
func (c *Composer) Await() Await {
	return c.await
}

// IsPending reports whether a sequence is in progress.
func (c *Composer) IsPending() bool {
	return len(c.keys) > 0
}

// PendingDisplay returns the keys typed so far, for a status line.
func (c *Composer) PendingDisplay() string {
	return key.FormatNotation(c.keys)
}

// Context returns the classification context for the next key.
func (c *Composer) Context() ClassifyContext {
	ctx := ClassifyContext{
		Mode:     c.machine.Current(),
		Await:    c.await,
		Operator: c.machine.Operator(),
	}
	if ctx.Mode == mode.OperatorPending {
		ctx.Counting = c.pending.Count2.Active
	} else {
		ctx.Counting = c.pending.Count1.Active
	}
	return ctx
}

// Cancel discards any pending composition. An operator pending in the
// machine is abandoned and the machine returns to Normal.
func (c *Composer) Cancel() mode.Transition {
	var tr mode.Transition
	if c.machine.Current() == mode.OperatorPending {
		tr = c.machine.Fail()
	} else {
		cur := c.machine.Current()
		tr = mode.Transition{From: cur, To: cur}
	}
	c.reset()
	return tr
}

// Feed classifies one key and advances composition.
func (c *Composer) Feed(ev key.Event) Result {
	res := c.apply(ev, Classify(ev, c.Context()))
	if res.Status != statusReprocess {
		return res
	}

	from := res.Transition.From
	res = c.apply(ev, Classify(ev, c.Context()))
	if res.Status == statusReprocess {
		c.reset()
		res = Result{Status: StatusCancelled}
	}
	res.Reprocessed = true
	res.Transition.From = from
	return res
}

func (c *Composer) apply(ev key.Event, tok vim.Token) Result {
	c.keys = append(c.keys, ev)

	if tok.Kind == vim.TokenCancel {
		tr := c.machine.Apply(tok)
		c.reset()
		return Result{Status: StatusCancelled, Transition: tr}
	}

	if c.await != AwaitNone {
		return c.applyAwait(tok)
	}

	switch cur := c.machine.Current(); cur {
	case mode.Insert, mode.Replace:
		if tok.Kind == vim.TokenLiteral {
			return c.complete(Command{Kind: KindLiteral, Char: tok.Rune}, c.stay())
		}
		c.reset()
		return Result{Status: StatusPassthrough, Transition: c.stay()}
	case mode.OperatorPending:
		return c.applyOperatorPending(tok)
	default:
		return c.applyNormal(tok)
	}
}

func (c *Composer) applyNormal(tok vim.Token) Result {
	cur := c.machine.Current()
	visual := cur.IsVisual()

	switch tok.Kind {
	case vim.TokenDigit:
		c.pending.Count1.AccumulateDigit(tok.Rune)
		return c.wait()

	case vim.TokenRegisterPrefix:
		c.await = AwaitRegister
		return c.wait()

	case vim.TokenPrefix:
		c.await = AwaitG
		return c.wait()

	case vim.TokenTextObjectPrefix:
		if !visual {
			break
		}
		c.await = AwaitObject
		c.objPrefix = tok.Prefix
		return c.wait()

	case vim.TokenOperator:
		tr := c.machine.Apply(tok)
		if visual {
			return c.complete(Command{
				Kind:     KindOperate,
				Operator: tok.Operator,
				Visual:   true,
				Linewise: cur == mode.VisualLine,
			}, tr)
		}
		c.pending.Operator = tok.Operator
		return c.waitWith(tr)

	case vim.TokenMotion:
		if tok.Motion.NeedsChar() {
			c.await = AwaitChar
			c.charMotion = tok.Motion
			return c.wait()
		}
		return c.complete(Command{Kind: KindMove, Motion: tok.Motion}, c.stay())

	case vim.TokenModeSwitch:
		tr := c.machine.Apply(tok)
		return c.complete(Command{Kind: KindModeSwitch, Switch: tok.Switch}, tr)

	case vim.TokenCommand:
		return c.applyCommand(tok.Command, visual, cur == mode.VisualLine)
	}

	if c.pending.Empty() && len(c.keys) == 1 {
		c.reset()
		return Result{Status: StatusPassthrough, Transition: c.stay()}
	}
	return c.malformed()
}

var visualLinewiseCommands = map[vim.Command]bool{
	vim.CmdDeleteCharBefore: true,
	vim.CmdDeleteToEnd:      true,
	vim.CmdChangeToEnd:      true,
	vim.CmdSubstituteLine:   true,
	vim.CmdYankLine:         true,
}

func (c *Composer) applyCommand(cmd vim.Command, visual, visualLine bool) Result {
	if cmd.NeedsChar() {
		c.await = AwaitChar
		c.charCommand = cmd
		return c.wait()
	}

	if op, m, ok := cmd.Expand(); ok {
		tr := c.machine.Complete(op)
		if visual {
			return c.complete(Command{
				Kind:     KindOperate,
				Operator: op,
				Visual:   true,
				Linewise: visualLine || visualLinewiseCommands[cmd],
				Action:   cmd,
			}, tr)
		}
		return c.complete(Command{
			Kind:     KindOperate,
			Operator: op,
			Motion:   m,
			Linewise: m == vim.MotionLine,
			Action:   cmd,
		}, tr)
	}

	return c.complete(Command{Kind: KindAction, Action: cmd, Visual: visual}, c.stay())
}

func (c *Composer) applyOperatorPending(tok vim.Token) Result {
	op := c.machine.Operator()

	switch tok.Kind {
	case vim.TokenDigit:
		c.pending.Count2.AccumulateDigit(tok.Rune)
		return c.wait()

	case vim.TokenPrefix:
		c.await = AwaitG
		return c.wait()

	case vim.TokenTextObjectPrefix:
		c.await = AwaitObject
		c.objPrefix = tok.Prefix
		return c.wait()

	case vim.TokenOperator:
		tr := c.machine.Apply(tok)
		if tr.Reprocess {
			return c.malformedWith(tr)
		}
		return c.complete(Command{
			Kind:     KindOperate,
			Operator: op,
			Motion:   vim.MotionLine,
			Linewise: true,
		}, tr)

	case vim.TokenMotion:
		if tok.Motion.NeedsChar() {
			c.await = AwaitChar
			c.charMotion = tok.Motion
			return c.wait()
		}
		tr := c.machine.Apply(tok)
		return c.complete(Command{Kind: KindOperate, Operator: op, Motion: tok.Motion}, tr)
	}

	return c.malformed()
}

func (c *Composer) applyAwait(tok vim.Token) Result {
	await := c.await
	c.await = AwaitNone
	cur := c.machine.Current()

	switch await {
	case AwaitRegister:
		if tok.Kind != vim.TokenRegister {
			return c.malformed()
		}
		c.pending.Register = tok.Rune
		return c.wait()

	case AwaitChar:
		if tok.Kind != vim.TokenCharArg {
			return c.malformed()
		}
		if c.charCommand != vim.CmdNone {
			return c.complete(Command{Kind: KindAction, Action: c.charCommand, Char: tok.Rune}, c.stay())
		}
		m := c.charMotion
		if cur == mode.OperatorPending {
			op := c.machine.Operator()
			tr := c.machine.Apply(vim.Token{Kind: vim.TokenMotion, Motion: m})
			return c.complete(Command{Kind: KindOperate, Operator: op, Motion: m, Char: tok.Rune}, tr)
		}
		return c.complete(Command{Kind: KindMove, Motion: m, Char: tok.Rune}, c.stay())

	case AwaitG:
		if tok.Kind != vim.TokenMotion && tok.Kind != vim.TokenOperator {
			return c.malformed()
		}
		if cur == mode.OperatorPending {
			return c.applyOperatorPending(tok)
		}
		return c.applyNormal(tok)

	case AwaitObject:
		if tok.Kind != vim.TokenTextObject {
			return c.malformed()
		}
		if cur == mode.OperatorPending {
			op := c.machine.Operator()
			tr := c.machine.Apply(tok)
			return c.complete(Command{Kind: KindOperate, Operator: op, Object: tok.Object, Prefix: c.objPrefix}, tr)
		}
		return c.complete(Command{Kind: KindSelect, Object: tok.Object, Prefix: c.objPrefix}, c.stay())
	}

	return c.malformed()
}

func (c *Composer) complete(cmd Command, tr mode.Transition) Result {
	cmd.Count = c.pending.EffectiveCount()
	cmd.CountExplicit = c.pending.HasCount()
	cmd.Register = c.pending.Register
	cmd.From = tr.From
	cmd.Keys = key.FormatNotation(c.keys)
	c.reset()
	return Result{Status: StatusComplete, Command: &cmd, Transition: tr}
}

func (c *Composer) wait() Result {
	return c.waitWith(c.stay())
}

func (c *Composer) waitWith(tr mode.Transition) Result {
	return Result{Status: StatusPending, Transition: tr}
}

func (c *Composer) malformed() Result {
	var tr mode.Transition
	if c.machine.Current() == mode.OperatorPending {
		tr = c.machine.Fail()
	} else {
		tr = c.stay()
	}
	return c.malformedWith(tr)
}

func (c *Composer) malformedWith(tr mode.Transition) Result {
	c.reset()
	return Result{Status: statusReprocess, Transition: tr}
}

func (c *Composer) stay() mode.Transition {
	cur := c.machine.Current()
	return mode.Transition{From: cur, To: cur}
}

func (c *Composer) reset() {
	c.pending = PendingCommand{}
	c.await = AwaitNone
	c.charMotion = vim.MotionNone
	c.charCommand = vim.CmdNone
	c.objPrefix = vim.PrefixNone
	c.keys = c.keys[:0]
}

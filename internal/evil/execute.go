package evil

import (
	"fmt"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/input/vim"
	"github.com/dshills/evil/internal/motion"
	"github.com/dshills/evil/internal/operator"
)

// execute runs a completed command. The composer has already moved the
// machine to the mode the command leads to; execute corrects it when the
// executor reports otherwise.
func (e *Engine) execute(v host.View, vs *viewState, cmd *input.Command, tr mode.Transition) error {
	switch cmd.Kind {
	case input.KindMove:
		return e.move(v, vs, cmd)
	case input.KindOperate:
		if err := e.operate(v, vs, cmd); err != nil {
			return err
		}
		vs.remember(cmd)
		return nil
	case input.KindSelect:
		return e.selectObject(v, vs, cmd)
	case input.KindModeSwitch:
		e.switchMode(v, vs, cmd, tr)
		return nil
	case input.KindAction:
		return e.action(v, vs, cmd)
	case input.KindLiteral:
		out, err := vs.executor(v.Buffer()).Overwrite(v, cmd.Char)
		if err != nil {
			return err
		}
		vs.machine.Set(out.Mode)
		return nil
	}
	return fmt.Errorf("execute %s: unknown command kind", cmd.Kind)
}

func (e *Engine) move(v host.View, vs *viewState, cmd *input.Command) error {
	rng, err := vs.resolver.Resolve(v.Buffer(), v.Cursor().Position(), motion.Request{
		Motion:        cmd.Motion,
		Count:         cmd.Count,
		CountExplicit: cmd.CountExplicit,
		Char:          cmd.Char,
	})
	if err != nil {
		return err
	}
	v.Cursor().SetPosition(rng.End)
	return nil
}

// operate applies an operator to a motion, a text object or the visual
// selection.
func (e *Engine) operate(v host.View, vs *viewState, cmd *input.Command) error {
	buf := v.Buffer()
	cur := v.Cursor().Position()

	var (
		rng motion.Range
		err error
	)
	switch {
	case cmd.Visual:
		rng = motion.Range{Start: vs.anchor, End: cur, Inclusive: true, Linewise: cmd.Linewise}
	case cmd.Object != vim.ObjNone:
		rng, err = motion.TextObject(buf, cur, cmd.Object, cmd.Prefix, cmd.Count)
	default:
		rng, err = vs.resolver.Resolve(buf, cur, motion.Request{
			Motion:          cmd.Motion,
			Count:           cmd.Count,
			CountExplicit:   cmd.CountExplicit,
			Char:            cmd.Char,
			Operator:        cmd.Operator,
			DeleteToWordEnd: vs.deleteToWordEnd(),
		})
	}
	if err != nil {
		return err
	}

	out, err := vs.executor(buf).Apply(v, cmd.Operator, rng, cmd.Register)
	if err != nil {
		return err
	}
	vs.machine.Set(out.Mode)
	vs.resolver.ResetGoal()
	return nil
}

// selectObject sets the visual selection to a text object.
func (e *Engine) selectObject(v host.View, vs *viewState, cmd *input.Command) error {
	buf := v.Buffer()
	rng, err := motion.TextObject(buf, v.Cursor().Position(), cmd.Object, cmd.Prefix, cmd.Count)
	if err != nil {
		return err
	}
	start, end := rng.Span(buf)
	vs.anchor = start
	if end > start {
		end = host.PrevGrapheme(buf, end)
	}
	v.Cursor().SetPosition(end)
	if rng.Linewise && vs.machine.Current() == mode.Visual {
		vs.machine.Set(mode.VisualLine)
	}
	return nil
}

// switchMode places the cursor for a mode switch the machine has already
// made.
func (e *Engine) switchMode(v host.View, vs *viewState, cmd *input.Command, tr mode.Transition) {
	if !tr.Changed() {
		return
	}
	buf := v.Buffer()
	cur := v.Cursor().Position()
	line := host.LineOf(buf, cur)

	switch cmd.Switch {
	case vim.SwitchAppend:
		if cur < buf.LineEnd(line) {
			v.Cursor().SetPosition(host.NextGrapheme(buf, cur))
		}
	case vim.SwitchInsertLineStart:
		if rng, err := vs.resolver.Resolve(buf, cur, motion.Request{Motion: vim.MotionFirstNonBlank}); err == nil {
			v.Cursor().SetPosition(rng.End)
		}
	case vim.SwitchAppendLineEnd:
		v.Cursor().SetPosition(buf.LineEnd(line))
	case vim.SwitchVisual, vim.SwitchVisualLine:
		if tr.From == mode.Normal {
			vs.anchor = cur
		}
	}
}

func (e *Engine) action(v host.View, vs *viewState, cmd *input.Command) error {
	if vs.machine.Current().IsVisual() {
		return e.visualAction(v, vs, cmd)
	}

	exec := vs.executor(v.Buffer())
	var (
		out operator.Outcome
		err error
	)
	switch cmd.Action {
	case vim.CmdPasteAfter, vim.CmdPasteBefore:
		out, err = exec.Paste(v, cmd.Register, cmd.Count, cmd.Action == vim.CmdPasteBefore)
	case vim.CmdReplaceChar:
		out, err = exec.ReplaceChar(v, cmd.Char, cmd.Count)
	case vim.CmdJoinLines:
		out, err = exec.Join(v, cmd.Count)
	case vim.CmdOpenBelow, vim.CmdOpenAbove:
		out, err = exec.OpenLine(v, cmd.Action == vim.CmdOpenBelow)
	case vim.CmdUndo:
		return e.undo(v, cmd.Count, false)
	case vim.CmdRedo:
		return e.undo(v, cmd.Count, true)
	case vim.CmdRepeat:
		return e.repeat(v, vs, cmd)
	case vim.CmdRecordMacro:
		return e.startRecording(v, vs, cmd.Char)
	case vim.CmdPlayMacro:
		return e.playMacro(v, vs, cmd)
	default:
		return fmt.Errorf("%s: not available in %s mode", cmd.Action, vs.machine.Current())
	}
	if err != nil {
		return err
	}

	vs.machine.Set(out.Mode)
	vs.resolver.ResetGoal()
	vs.remember(cmd)
	return nil
}

// visualAction runs a command that works on the visual selection.
func (e *Engine) visualAction(v host.View, vs *viewState, cmd *input.Command) error {
	buf := v.Buffer()
	cur := v.Cursor().Position()
	linewise := vs.machine.Current() == mode.VisualLine

	switch cmd.Action {
	case vim.CmdSwapSelectionEnds:
		vs.anchor, cur = cur, vs.anchor
		v.Cursor().SetPosition(cur)
		return nil

	case vim.CmdPasteAfter, vim.CmdPasteBefore:
		rng := motion.Range{Start: vs.anchor, End: cur, Inclusive: true, Linewise: linewise}
		vs.machine.Set(mode.Normal)
		out, err := vs.executor(buf).PasteOver(v, rng, cmd.Register, cmd.Count)
		if err != nil {
			return err
		}
		vs.machine.Set(out.Mode)
		return nil

	case vim.CmdJoinLines:
		first, last := host.LineOf(buf, min(vs.anchor, cur)), host.LineOf(buf, max(vs.anchor, cur))
		vs.machine.Set(mode.Normal)
		v.Cursor().SetPosition(buf.LineStart(first))
		out, err := vs.executor(buf).Join(v, last-first+1)
		if err != nil {
			return err
		}
		vs.machine.Set(out.Mode)
		return nil
	}

	vs.machine.Set(mode.Normal)
	return e.action(v, vs, cmd)
}

// undo walks the host's history count steps.
func (e *Engine) undo(v host.View, count int, redo bool) error {
	hist, ok := v.Undo().(host.History)
	if !ok {
		return fmt.Errorf("undo: %w", ErrNoHistory)
	}

	steps := 0
	for range max(count, 1) {
		var (
			off  host.Offset
			done bool
			err  error
		)
		if redo {
			off, done, err = hist.Redo()
		} else {
			off, done, err = hist.Undo()
		}
		if err != nil {
			return err
		}
		if !done {
			break
		}
		v.Cursor().SetPosition(motion.NormalPosition(v.Buffer(), off))
		steps++
	}

	if steps == 0 {
		msg := "Already at oldest change"
		if redo {
			msg = "Already at newest change"
		}
		if n, ok := v.(host.Notifier); ok {
			n.Notify(host.LevelInfo, msg)
		}
	}
	return nil
}

// repeat replays the last change. A count given to `.` replaces the
// original count.
func (e *Engine) repeat(v host.View, vs *viewState, cmd *input.Command) error {
	if vs.last == nil {
		return motion.ErrNoTarget
	}
	replay := *vs.last
	if cmd.CountExplicit {
		replay.Count = cmd.Count
		replay.CountExplicit = true
	}

	if replay.Kind != input.KindOperate {
		return e.action(v, vs, &replay)
	}
	if err := e.operate(v, vs, &replay); err != nil {
		return err
	}
	vs.remember(&replay)
	return nil
}

// remember records cmd for `.` when it changes the buffer.
func (vs *viewState) remember(cmd *input.Command) {
	if cmd.Visual || cmd.Action == vim.CmdRepeat {
		return
	}
	switch cmd.Kind {
	case input.KindOperate:
		if !cmd.Operator.ChangesText() {
			return
		}
	case input.KindAction:
		switch cmd.Action {
		case vim.CmdPasteAfter, vim.CmdPasteBefore, vim.CmdReplaceChar, vim.CmdJoinLines, vim.CmdOpenBelow, vim.CmdOpenAbove:
		default:
			return
		}
	default:
		return
	}
	c := *cmd
	vs.last = &c
}

// syncSelection shows the visual selection for the current mode and
// clears it after leaving Visual.
func (e *Engine) syncSelection(v host.View, vs *viewState, before mode.Mode) {
	cur := vs.machine.Current()
	if !cur.IsVisual() {
		if before.IsVisual() {
			v.Cursor().ClearSelection()
		}
		return
	}

	buf := v.Buffer()
	pos := v.Cursor().Position()
	start, end := min(vs.anchor, pos), max(vs.anchor, pos)
	if cur == mode.VisualLine {
		v.Cursor().SetSelection(buf.LineStart(host.LineOf(buf, start)), host.NextLineStart(buf, host.LineOf(buf, end)))
		return
	}
	v.Cursor().SetSelection(start, host.NextGrapheme(buf, end))
}

// commandName names cmd for statistics.
func commandName(cmd *input.Command) string {
	switch cmd.Kind {
	case input.KindMove:
		return "move." + cmd.Motion.String()
	case input.KindOperate:
		if cmd.Action != vim.CmdNone {
			return cmd.Action.String()
		}
		return cmd.Operator.String()
	case input.KindSelect:
		return "select." + cmd.Object.String()
	case input.KindModeSwitch:
		return cmd.Switch.String()
	case input.KindAction:
		return cmd.Action.String()
	default:
		return cmd.Kind.String()
	}
}

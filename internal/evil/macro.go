package evil

import (
	"fmt"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input"
	"github.com/dshills/evil/internal/input/key"
	"github.com/dshills/evil/internal/input/macro"
	"github.com/dshills/evil/internal/input/mode"
)

// isStopRecording reports whether ev is the `q` that ends a recording: an
// unmodified q typed with no command pending outside text entry.
func isStopRecording(vs *viewState, ev key.Event) bool {
	if !ev.IsRune() || ev.IsModified() || ev.Rune != 'q' {
		return false
	}
	cur := vs.machine.Current()
	return !vs.composer.IsPending() && !cur.IsTextEntry() && cur != mode.OperatorPending
}

func (e *Engine) startRecording(v host.View, vs *viewState, reg rune) error {
	if v.Registers() == nil {
		return fmt.Errorf("q%c: %w", reg, ErrNoRegisters)
	}
	if err := vs.recorder.Start(reg); err != nil {
		return err
	}
	e.logger.Debug("macro recording started", "view", v.ID(), "register", string(reg))
	return nil
}

// stopRecording stores the recorded keys in the register as key notation.
func (e *Engine) stopRecording(v host.View, vs *viewState) error {
	reg, events := vs.recorder.Stop()
	if reg == 0 {
		return nil
	}
	regs := v.Registers()
	if regs == nil {
		return fmt.Errorf("q%c: %w", reg, ErrNoRegisters)
	}
	regs.Set(reg, host.Register{Text: macro.Encode(events)})
	e.logger.Debug("macro recorded", "view", v.ID(), "register", string(reg), "keys", len(events))
	return nil
}

// playMacro replays a register count times. A failing command stops the
// playback; it has already been reported by the nested dispatch.
func (e *Engine) playMacro(v host.View, vs *viewState, cmd *input.Command) error {
	reg, err := vs.player.Resolve(cmd.Char)
	if err != nil {
		return err
	}
	regs := v.Registers()
	if regs == nil {
		return fmt.Errorf("@%c: %w", reg, ErrNoRegisters)
	}
	content, ok := regs.Get(reg)
	if !ok {
		return fmt.Errorf("@%c: %w", reg, macro.ErrEmptyRegister)
	}
	events, err := macro.Decode(content.Text)
	if err != nil {
		return fmt.Errorf("@%c: %w", reg, err)
	}

	native, _ := v.(host.NativeHandler)
	var aborted error
	err = vs.player.Play(reg, events, cmd.Count, func(ev key.Event) error {
		res := e.dispatch(v, vs, ev)
		if res.Status == PassThrough && native != nil {
			native.HandleNative(ev)
		}
		if res.Err != nil {
			aborted = res.Err
		}
		return res.Err
	})
	if aborted != nil {
		e.logger.Debug("macro aborted", "view", v.ID(), "register", string(reg), "error", aborted)
		return nil
	}
	return err
}

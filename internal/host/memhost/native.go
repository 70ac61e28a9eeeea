package memhost

import (
	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input/key"
)

// HandleNative applies the host's own binding for ev: a modeless editor
// where characters insert at the cursor. It reports whether ev had a
// binding. Mutation errors (a read-only buffer) are reported as a message.
func (v *View) HandleNative(ev key.Event) bool {
	off := v.Position()

	if ev.IsRune() && !ev.IsModified() {
		v.insert(off, string(ev.Rune))
		return true
	}
	if ev.IsModified() {
		return false
	}

	switch ev.Key {
	case key.KeyEnter:
		v.insert(off, v.buf.LineEnding().Sequence())
	case key.KeyTab:
		v.insert(off, "\t")
	case key.KeyBackspace:
		prev := v.prevPosition(off)
		if prev < off {
			if v.report(v.buf.Delete(prev, off)) {
				v.SetPosition(prev)
			}
		}
	case key.KeyDelete:
		if next := v.nextPosition(off); next > off {
			v.report(v.buf.Delete(off, next))
		}
	case key.KeyLeft:
		v.SetPosition(v.prevPosition(off))
	case key.KeyRight:
		v.SetPosition(v.nextPosition(off))
	case key.KeyUp:
		v.moveLine(-1)
	case key.KeyDown:
		v.moveLine(1)
	case key.KeyHome:
		v.SetPosition(v.buf.LineStart(host.LineOf(v.buf, off)))
	case key.KeyEnd:
		v.SetPosition(v.buf.LineEnd(host.LineOf(v.buf, off)))
	default:
		return false
	}
	return true
}

func (v *View) insert(off host.Offset, text string) {
	if v.report(v.buf.Insert(off, text)) {
		v.SetPosition(off + len(text))
	}
}

func (v *View) report(err error) bool {
	if err != nil {
		v.Notify(host.LevelError, err.Error())
		return false
	}
	return true
}

// prevPosition steps one grapheme left, joining lines at their start.
func (v *View) prevPosition(off host.Offset) host.Offset {
	line := host.LineOf(v.buf, off)
	if off > v.buf.LineStart(line) {
		return host.PrevGrapheme(v.buf, off)
	}
	if line == 0 {
		return off
	}
	return v.buf.LineEnd(line - 1)
}

// nextPosition steps one grapheme right, joining lines at their end.
func (v *View) nextPosition(off host.Offset) host.Offset {
	line := host.LineOf(v.buf, off)
	if off < v.buf.LineEnd(line) {
		return host.NextGrapheme(v.buf, off)
	}
	if line+1 >= v.buf.LineCount() {
		return off
	}
	return v.buf.LineStart(line + 1)
}

func (v *View) moveLine(delta int) {
	p := v.Point()
	p.Line += delta
	if p.Line < 0 || p.Line >= v.buf.LineCount() {
		return
	}
	v.SetPosition(v.buf.PointToOffset(p))
}

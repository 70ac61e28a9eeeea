package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/evil/internal/config"
	"github.com/dshills/evil/internal/config/notify"
	"github.com/dshills/evil/internal/evil"
	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/host/memhost"
	"github.com/dshills/evil/internal/input/key"
	"github.com/dshills/evil/internal/input/mode"
)

// tui edits one view in the terminal.
type tui struct {
	screen tcell.Screen
	eng    *evil.Engine
	store  *config.Store
	view   *memhost.View
	path   string
	logger *slog.Logger

	top    int
	status string
}

func runTUI(eng *evil.Engine, store *config.Store, view *memhost.View, path string, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnablePaste()

	if err := store.Watch(); err != nil {
		logger.Warn("config watch unavailable", "error", err)
	}

	// Config changes arrive on the watcher goroutine; wake the event loop
	// so the status line reflects them.
	sub := store.Subscribe(func(notify.Change) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer sub.Unsubscribe()

	t := &tui{screen: screen, eng: eng, store: store, view: view, path: path, logger: logger}
	t.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !t.handleKey(ev) {
				return nil
			}
		}
		t.draw()
	}
}

// handleKey processes one key. It reports false when the user quits.
func (t *tui) handleKey(ev *tcell.EventKey) bool {
	t.status = ""
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return false
	case tcell.KeyCtrlT:
		enabled, err := t.store.ToggleEvil()
		if err != nil {
			t.status = err.Error()
		} else if enabled {
			t.status = "modal editing on"
		} else {
			t.status = "modal editing off"
		}
		return true
	case tcell.KeyCtrlS:
		t.save()
		return true
	}

	k := key.FromTcell(ev)
	res := t.eng.HandleKey(t.view, k)
	if res.Status == evil.PassThrough {
		t.view.HandleNative(k)
	}
	if res.Err != nil {
		t.logger.Debug("command failed", "key", k.String(), "error", res.Err)
	}
	return true
}

func (t *tui) save() {
	if t.path == "" {
		t.status = "no file name"
		return
	}
	text := t.view.Text()
	if err := os.WriteFile(t.path, []byte(text), 0o644); err != nil {
		t.status = err.Error()
		return
	}
	res := t.eng.LoadBuffer(t.view)
	t.status = fmt.Sprintf("%q written, %d bytes", t.path, len(text))
	if len(res.Diagnostics) > 0 {
		t.status += fmt.Sprintf(" (modeline: %v)", res.Diagnostics[0])
	}
}

func (t *tui) draw() {
	t.screen.Clear()
	width, height := t.screen.Size()
	rows := height - 1
	if rows < 1 {
		return
	}

	buf := t.view.Buffer()
	cur := t.view.Point()
	if cur.Line < t.top {
		t.top = cur.Line
	} else if cur.Line >= t.top+rows {
		t.top = cur.Line - rows + 1
	}

	selStart, selEnd, hasSel := t.view.Selection()
	normal := tcell.StyleDefault
	selected := normal.Reverse(true)

	cursorX := 0
	for row := 0; row < rows; row++ {
		line := t.top + row
		if line >= buf.LineCount() {
			t.screen.SetContent(0, row, '~', nil, normal.Foreground(tcell.ColorBlue))
			continue
		}
		start := buf.LineStart(line)
		text, err := buf.TextRange(start, buf.LineEnd(line))
		if err != nil {
			continue
		}

		x := 0
		off := start
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			if line == cur.Line && off == t.view.Position() {
				cursorX = x
			}
			runes := g.Runes()
			w := max(g.Width(), 1)
			style := normal
			if hasSel && off >= selStart && off < selEnd {
				style = selected
			}
			if runes[0] == '\t' {
				w = 4 - x%4
				for i := range w {
					t.screen.SetContent(x+i, row, ' ', nil, style)
				}
			} else if x < width {
				t.screen.SetContent(x, row, runes[0], runes[1:], style)
			}
			x += w
			off += host.Offset(len(string(runes)))
		}
		if line == cur.Line && t.view.Position() >= off {
			cursorX = x
		}
	}

	t.drawStatus(width, height-1)

	m := t.eng.Mode(t.view)
	if !t.eng.Enabled() {
		m = mode.Insert
	}
	t.screen.SetCursorStyle(cursorStyle(m.CursorStyle()))
	t.screen.ShowCursor(cursorX, cur.Line-t.top)
	t.screen.Show()
}

func (t *tui) drawStatus(width, row int) {
	style := tcell.StyleDefault.Reverse(true)
	for x := range width {
		t.screen.SetContent(x, row, ' ', nil, style)
	}

	var left string
	if t.eng.Enabled() {
		left = t.eng.Mode(t.view).DisplayName()
	} else {
		left = "(modal off)"
	}
	if pending := t.eng.Pending(t.view); pending != "" {
		left += " " + pending
	}
	if reg := t.eng.Recording(t.view); reg != 0 {
		left += " recording @" + string(reg)
	}
	msg := t.status
	if msg == "" {
		if last, ok := t.view.LastMessage(); ok {
			msg = last.Text
		}
	}
	if msg != "" {
		left += "  " + msg
	}

	p := t.view.Point()
	right := fmt.Sprintf("%s %d:%d", displayPath(t.path), p.Line+1, p.Column+1)

	drawString(t.screen, 0, row, left, style)
	if w := uniseg.StringWidth(right); w < width {
		drawString(t.screen, width-w, row, right, style)
	}
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	g := uniseg.NewGraphemes(strings.ReplaceAll(text, "\n", " "))
	for g.Next() {
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += max(g.Width(), 1)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "[No Name]"
	}
	return path
}

func cursorStyle(c mode.CursorStyle) tcell.CursorStyle {
	switch c {
	case mode.CursorBar:
		return tcell.CursorStyleSteadyBar
	case mode.CursorUnderline:
		return tcell.CursorStyleSteadyUnderline
	default:
		return tcell.CursorStyleSteadyBlock
	}
}

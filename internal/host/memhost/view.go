package memhost

import (
	"github.com/google/uuid"

	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/register"
)

// Message is a notification shown to the user.
type Message struct {
	Level host.Level
	Text  string
}

// View is an in-memory editing view. It is not safe for concurrent use,
// matching the single input path of a real view.
type View struct {
	id   uuid.UUID
	buf  *Buffer
	regs host.Registers

	cursor int

	selStart int
	selEnd   int
	hasSel   bool

	messages []Message
}

// NewView creates a view onto buf. A nil regs gets a private register
// store.
func NewView(buf *Buffer, regs host.Registers) *View {
	if regs == nil {
		regs = register.NewStore()
	}
	return &View{
		id:   uuid.New(),
		buf:  buf,
		regs: regs,
	}
}

// ID returns the view identifier.
func (v *View) ID() uuid.UUID {
	return v.id
}

// BufferID returns the identifier of the shown buffer.
func (v *View) BufferID() uuid.UUID {
	return v.buf.ID()
}

// Buffer returns the shown buffer.
func (v *View) Buffer() host.Buffer {
	return v.buf
}

// Show switches the view to buf. The cursor moves to the start of buf and
// the selection is cleared.
func (v *View) Show(buf *Buffer) {
	v.buf = buf
	v.cursor = 0
	v.ClearSelection()
}

// MemBuffer returns the concrete buffer.
func (v *View) MemBuffer() *Buffer {
	return v.buf
}

// Cursor returns the view itself, which implements host.Cursor.
func (v *View) Cursor() host.Cursor {
	return v
}

// Registers returns the register store.
func (v *View) Registers() host.Registers {
	return v.regs
}

// Undo returns the buffer's history.
func (v *View) Undo() host.Undo {
	return v.buf.history
}

// Language returns the buffer's filetype.
func (v *View) Language() string {
	return v.buf.Language()
}

// Position returns the cursor offset.
func (v *View) Position() host.Offset {
	return host.Clamp(v.buf, v.cursor)
}

// SetPosition moves the cursor, clamped to the buffer.
func (v *View) SetPosition(off host.Offset) {
	v.cursor = host.Clamp(v.buf, off)
}

// SetSelection shows a selection covering [start, end).
func (v *View) SetSelection(start, end host.Offset) {
	v.selStart = host.Clamp(v.buf, start)
	v.selEnd = host.Clamp(v.buf, end)
	v.hasSel = true
}

// ClearSelection removes the selection.
func (v *View) ClearSelection() {
	v.hasSel = false
	v.selStart, v.selEnd = 0, 0
}

// Selection returns the selection and whether one is shown.
func (v *View) Selection() (start, end host.Offset, ok bool) {
	return v.selStart, v.selEnd, v.hasSel
}

// Notify records a message.
func (v *View) Notify(level host.Level, msg string) {
	v.messages = append(v.messages, Message{Level: level, Text: msg})
}

// Messages returns all recorded messages.
func (v *View) Messages() []Message {
	return v.messages
}

// LastMessage returns the most recent message, if any.
func (v *View) LastMessage() (Message, bool) {
	if len(v.messages) == 0 {
		return Message{}, false
	}
	return v.messages[len(v.messages)-1], true
}

// Text returns the buffer text.
func (v *View) Text() string {
	return v.buf.Text()
}

// Point returns the cursor as a line/column position.
func (v *View) Point() host.Point {
	return v.buf.OffsetToPoint(v.Position())
}

var (
	_ host.View             = (*View)(nil)
	_ host.Cursor           = (*View)(nil)
	_ host.Notifier         = (*View)(nil)
	_ host.LanguageProvider = (*View)(nil)
)

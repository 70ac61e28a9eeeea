package host

import (
	"github.com/google/uuid"

	"github.com/dshills/evil/internal/input/key"
)

// Reader provides read access to buffer text.
type Reader interface {
	// Len returns the buffer length in bytes.
	Len() Offset

	// LineCount returns the number of lines; an empty buffer has one line.
	LineCount() int

	// LineStart returns the offset of the first byte of line.
	LineStart(line int) Offset

	// LineEnd returns the offset just past the last content byte of line,
	// excluding the line terminator.
	LineEnd(line int) Offset

	// OffsetToPoint converts an offset to a line/column position.
	OffsetToPoint(off Offset) Point

	// PointToOffset converts a line/column position to an offset, clamping
	// to the buffer.
	PointToOffset(p Point) Offset

	// TextRange returns the text in [start, end).
	TextRange(start, end Offset) (string, error)

	// RuneAt returns the rune at off and its size in bytes. Size is 0 when
	// off is outside the buffer.
	RuneAt(off Offset) (rune, int)

	// CharClass classifies r the way the host tokenizes words.
	CharClass(r rune) CharClass
}

// Writer provides buffer mutation primitives. Each returns ErrReadOnly for
// read-only buffers and ErrOutOfRange for invalid offsets.
type Writer interface {
	Insert(off Offset, text string) error
	Delete(start, end Offset) error
	Replace(start, end Offset, text string) error
}

// Buffer is a readable and writable text buffer.
type Buffer interface {
	Reader
	Writer
}

// Cursor controls the primary cursor and the visual selection.
type Cursor interface {
	// Position returns the cursor offset.
	Position() Offset

	// SetPosition moves the cursor.
	SetPosition(off Offset)

	// SetSelection shows a selection covering [start, end).
	SetSelection(start, end Offset)

	// ClearSelection removes any selection.
	ClearSelection()
}

// Register is the content of one register.
type Register struct {
	Text     string
	Linewise bool
}

// Registers gets and sets named registers. The unnamed register is '"'.
type Registers interface {
	Get(name rune) (Register, bool)
	Set(name rune, reg Register)
}

// RegisterHistory is implemented by register stores that keep yank and
// delete history (register 0, numbered rotation 1-9, small delete -).
type RegisterHistory interface {
	SetYank(reg Register)
	SetDelete(reg Register, small bool)
}

// Undo brackets a composed command into one undoable unit.
type Undo interface {
	BeginTransaction(name string)
	EndTransaction()
}

// History is implemented by Undo values that let the engine drive undo and
// redo. Both report the offset the cursor should move to, and false when
// there is nothing to undo or redo.
type History interface {
	Undo() (Offset, bool, error)
	Redo() (Offset, bool, error)
}

// Level is the severity of a notification.
type Level uint8

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows a non-blocking message to the user.
type Notifier interface {
	Notify(level Level, msg string)
}

// NativeHandler applies the host's own binding for a key. Views that
// implement it get the passed-through keys of a replayed macro.
type NativeHandler interface {
	HandleNative(ev key.Event) bool
}

// LanguageProvider reports the filetype of a buffer, e.g. "go".
type LanguageProvider interface {
	Language() string
}

// View is one editing view onto a buffer.
type View interface {
	// ID identifies the view; engine state is keyed by it.
	ID() uuid.UUID

	// BufferID identifies the buffer shown by the view.
	BufferID() uuid.UUID

	Buffer() Buffer
	Cursor() Cursor
	Registers() Registers
	Undo() Undo
}

// Package memhost is an in-memory host editor. It backs the engine tests
// and the demo binary.
//
// A Buffer stores its text as a string with a line index and records every
// edit in a History, which groups edits made inside a transaction into one
// undo unit. A View shows a Buffer with a cursor, a selection and a
// register store, and implements the host's native key handling that runs
// whenever the engine passes a key through.
package memhost

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/evil/internal/host"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithReadOnly makes every mutation fail with host.ErrReadOnly.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}

// WithLanguage sets the buffer's filetype.
func WithLanguage(lang string) Option {
	return func(b *Buffer) {
		b.language = lang
	}
}

// WithCharClass overrides the word character classification.
func WithCharClass(fn func(rune) host.CharClass) Option {
	return func(b *Buffer) {
		if fn != nil {
			b.classify = fn
		}
	}
}

// WithID sets the buffer identifier instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(b *Buffer) {
		b.id = id
	}
}

// Buffer is an in-memory text buffer. All methods are thread-safe.
type Buffer struct {
	mu sync.RWMutex

	id         uuid.UUID
	text       string
	lineStarts []int
	readOnly   bool
	language   string
	lineEnding host.LineEnding
	classify   func(rune) host.CharClass

	history *History
}

// NewBuffer creates a buffer holding text.
func NewBuffer(text string, opts ...Option) *Buffer {
	b := &Buffer{
		id:         uuid.New(),
		text:       text,
		lineEnding: host.DetectLineEnding(text),
		classify:   host.DefaultCharClass,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.history = newHistory(b)
	b.reindex()
	return b
}

// ID returns the buffer identifier.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Text returns the full buffer text.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Language returns the buffer's filetype.
func (b *Buffer) Language() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.language
}

// SetLanguage changes the buffer's filetype.
func (b *Buffer) SetLanguage(lang string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.language = lang
}

// LineEnding returns the line ending detected when the buffer was created.
func (b *Buffer) LineEnding() host.LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetReadOnly toggles read-only mode.
func (b *Buffer) SetReadOnly(readOnly bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = readOnly
}

// History returns the buffer's undo history.
func (b *Buffer) History() *History {
	return b.history
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() host.Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineStart returns the offset of the first byte of line, clamped.
func (b *Buffer) LineStart(line int) host.Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineStartLocked(line)
}

func (b *Buffer) lineStartLocked(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.text)
	}
	return b.lineStarts[line]
}

// LineEnd returns the offset just past the content of line.
func (b *Buffer) LineEnd(line int) host.Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEndLocked(line)
}

func (b *Buffer) lineEndLocked(line int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(b.lineStarts)-1 {
		return len(b.text)
	}
	end := b.lineStarts[line+1] - 1
	if end > b.lineStarts[line] && b.text[end-1] == '\r' {
		end--
	}
	return end
}

// OffsetToPoint converts an offset to a line/column position.
func (b *Buffer) OffsetToPoint(off host.Offset) host.Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	off = clampInt(off, 0, len(b.text))
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > off
	}) - 1
	if line < 0 {
		line = 0
	}
	return host.Point{Line: line, Column: off - b.lineStarts[line]}
}

// PointToOffset converts a position to an offset, clamping both the line
// and the column.
func (b *Buffer) PointToOffset(p host.Point) host.Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	line := clampInt(p.Line, 0, len(b.lineStarts)-1)
	start := b.lineStarts[line]
	end := b.lineEndLocked(line)
	return clampInt(start+p.Column, start, end)
}

// TextRange returns the text in [start, end).
func (b *Buffer) TextRange(start, end host.Offset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if start < 0 || end > len(b.text) || start > end {
		return "", host.ErrOutOfRange
	}
	return b.text[start:end], nil
}

// RuneAt returns the rune at off and its size.
func (b *Buffer) RuneAt(off host.Offset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if off < 0 || off >= len(b.text) {
		return 0, 0
	}
	r, size := decodeRune(b.text[off:])
	return r, size
}

// CharClass classifies r.
func (b *Buffer) CharClass(r rune) host.CharClass {
	return b.classify(r)
}

// Insert inserts text at off.
func (b *Buffer) Insert(off host.Offset, text string) error {
	return b.Replace(off, off, text)
}

// Delete removes [start, end).
func (b *Buffer) Delete(start, end host.Offset) error {
	return b.Replace(start, end, "")
}

// Replace replaces [start, end) with text.
func (b *Buffer) Replace(start, end host.Offset, text string) error {
	b.mu.Lock()

	if b.readOnly {
		b.mu.Unlock()
		return host.ErrReadOnly
	}
	if start < 0 || end > len(b.text) || start > end {
		b.mu.Unlock()
		return host.ErrOutOfRange
	}
	if start == end && text == "" {
		b.mu.Unlock()
		return nil
	}

	e := edit{offset: start, deleted: b.text[start:end], inserted: text}
	b.applyLocked(e.offset, len(e.deleted), e.inserted)
	b.mu.Unlock()

	b.history.record(e)
	return nil
}

// applyLocked replaces n bytes at off without recording history.
func (b *Buffer) applyLocked(off, n int, text string) {
	b.text = b.text[:off] + text + b.text[off+n:]
	b.reindex()
}

func (b *Buffer) reindex() {
	starts := b.lineStarts[:0]
	starts = append(starts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	b.lineStarts = starts
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

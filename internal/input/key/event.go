package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Runes converts plain text into unmodified character events.
func Runes(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		events = append(events, NewRuneEvent(r, ModNone))
	}
	return events
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is an unmodified printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed.
// For character events Shift is part of the character and does not count.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// IsCtrl reports whether the event is Ctrl plus the given letter.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Modifiers.HasCtrl() && unicode.ToLower(e.Rune) == r
}

// IsEscape returns true for Escape and its control-key aliases
// (<C-[> and <C-c>).
func (e Event) IsEscape() bool {
	if e.Key == KeyEscape {
		return true
	}
	return e.IsCtrl('[') || e.IsCtrl('c')
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e == other
}

// String returns the Vim notation for the event, e.g. "a", "<Esc>", "<C-r>".
func (e Event) String() string {
	if e.IsRune() && !e.IsModified() {
		switch e.Rune {
		case '<':
			return "<lt>"
		case ' ':
			return "<Space>"
		}
		return string(e.Rune)
	}

	var name string
	switch e.Key {
	case KeyRune:
		name = string(unicode.ToLower(e.Rune))
	case KeyEscape:
		name = "Esc"
	case KeyEnter:
		name = "CR"
	case KeyBackspace:
		name = "BS"
	case KeyDelete:
		name = "Del"
	default:
		name = e.Key.String()
	}
	mods := e.Modifiers
	if e.Key == KeyRune {
		mods &^= ModShift
	}
	return "<" + mods.String() + name + ">"
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %q}", e.Key, e.Rune, e.Modifiers.String())
}

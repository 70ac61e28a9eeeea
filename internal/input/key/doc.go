// Package key defines the raw key events the modal engine consumes.
//
// An Event is a single key press: either a character (KeyRune with the
// character in Rune) or a special key such as Escape or Enter, plus the
// active modifiers. Hosts build events directly, convert them from a
// terminal library with FromTcell, or parse them from Vim key notation:
//
//	events, err := key.ParseNotation("d2w<Esc>")
//
// Notation follows Vim: plain characters stand for themselves and
// bracketed names such as <Esc>, <CR>, <BS>, <C-r> or <lt> name special
// keys and modified keys.
package key

package macro

import (
	"unicode"

	"github.com/dshills/evil/internal/input/key"
)

// LastPlayed is the register name that replays the last played macro.
const LastPlayed = '@'

// IsValidRegister reports whether a macro may be recorded into r: a-z,
// A-Z (appends), 0-9 and the unnamed register.
func IsValidRegister(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '"':
		return true
	default:
		return false
	}
}

// IsValidPlayRegister reports whether @r is a valid playback.
func IsValidPlayRegister(r rune) bool {
	return r == LastPlayed || IsValidRegister(r)
}

// NormalizeRegister maps an append register to the register it reads.
func NormalizeRegister(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return unicode.ToLower(r)
	}
	return r
}

// Encode renders events as register text.
func Encode(events []key.Event) string {
	return key.FormatNotation(events)
}

// Decode parses register text back into events.
func Decode(text string) ([]key.Event, error) {
	if text == "" {
		return nil, ErrEmptyRegister
	}
	return key.ParseNotation(text)
}

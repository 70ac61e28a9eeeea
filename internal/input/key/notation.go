package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Notation errors.
var (
	ErrEmptyNotation    = errors.New("empty key notation")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key notation")
	ErrUnknownKey       = errors.New("unknown key name")
)

// ParseNotation parses a Vim key notation string into events.
//
// Plain characters stand for themselves; <...> groups name special keys
// (<Esc>, <CR>, <BS>, <Tab>, <Left>), awkward characters (<lt>, <Space>,
// <bar>) and modified keys (<C-r>, <A-x>, <C-S-Left>). A "<" that does not
// start a valid group is an error; write it as <lt>.
func ParseNotation(s string) ([]Event, error) {
	if s == "" {
		return nil, ErrEmptyNotation
	}

	var events []Event
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '<' {
			events = append(events, NewRuneEvent(r, ModNone))
			continue
		}

		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '>' {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("%w at offset %d", ErrUnmatchedBracket, i)
		}

		ev, err := parseGroup(string(runes[i+1 : end]))
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		i = end
	}
	return events, nil
}

// MustParseNotation is ParseNotation for known-valid literals in tests
// and initialization code.
func MustParseNotation(s string) []Event {
	events, err := ParseNotation(s)
	if err != nil {
		panic("invalid key notation " + s + ": " + err.Error())
	}
	return events
}

// parseGroup parses the inside of a <...> group.
func parseGroup(inner string) (Event, error) {
	if inner == "" {
		return Event{}, fmt.Errorf("%w: <>", ErrUnknownKey)
	}

	var mods Modifier
	parts := strings.Split(inner, "-")
	name := parts[len(parts)-1]
	// "<C-->" style: a trailing empty part means the key itself is '-'.
	if name == "" && len(parts) > 1 {
		name = "-"
		parts = parts[:len(parts)-1]
	}
	for _, p := range parts[:len(parts)-1] {
		mod := modifierFromNotation(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: modifier %q in <%s>", ErrUnknownKey, p, inner)
		}
		mods = mods.With(mod)
	}

	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := notationRunes[strings.ToLower(name)]; ok {
		return NewRuneEvent(r, mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: <%s>", ErrUnknownKey, inner)
	}
	r := runes[0]
	if mods.HasCtrl() {
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods), nil
}

// FormatNotation renders events back into Vim notation.
func FormatNotation(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(ev.String())
	}
	return b.String()
}

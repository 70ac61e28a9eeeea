package host

import "unicode"

// CharClass groups characters for word motions.
type CharClass uint8

const (
	ClassWhitespace CharClass = iota
	ClassWord
	ClassPunctuation
	ClassEOL
)

// String returns the class name.
func (c CharClass) String() string {
	switch c {
	case ClassWhitespace:
		return "whitespace"
	case ClassWord:
		return "word"
	case ClassPunctuation:
		return "punctuation"
	case ClassEOL:
		return "eol"
	default:
		return "unknown"
	}
}

// DefaultCharClass is the classification used when a host has no
// language-specific word characters: letters, digits and '_' form words.
func DefaultCharClass(r rune) CharClass {
	switch {
	case r == '\n' || r == '\r':
		return ClassEOL
	case unicode.IsSpace(r):
		return ClassWhitespace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
		return ClassWord
	default:
		return ClassPunctuation
	}
}

// BigWordClass folds a class for WORD motions, where only whitespace
// separates words.
func BigWordClass(c CharClass) CharClass {
	if c == ClassPunctuation {
		return ClassWord
	}
	return c
}

package vim

// TextObject is a structured selection typed after an operator or in
// Visual mode, always preceded by an inner/around prefix.
type TextObject uint8

// Text objects. ObjNone is the zero value.
const (
	ObjNone TextObject = iota
	ObjWord
	ObjBigWord
	ObjSentence
	ObjParagraph
	ObjParen
	ObjBracket
	ObjBrace
	ObjAngle
	ObjDoubleQuote
	ObjSingleQuote
	ObjBacktick
)

var textObjectNames = [...]string{
	ObjNone:        "none",
	ObjWord:        "word",
	ObjBigWord:     "WORD",
	ObjSentence:    "sentence",
	ObjParagraph:   "paragraph",
	ObjParen:       "paren",
	ObjBracket:     "bracket",
	ObjBrace:       "brace",
	ObjAngle:       "angle",
	ObjDoubleQuote: "doubleQuote",
	ObjSingleQuote: "singleQuote",
	ObjBacktick:    "backtick",
}

// String returns the text object name.
func (o TextObject) String() string {
	if int(o) < len(textObjectNames) {
		return textObjectNames[o]
	}
	return textObjectNames[ObjNone]
}

// Delimiters returns the open and close runes of a bracket or quote object.
func (o TextObject) Delimiters() (open, close rune, ok bool) {
	switch o {
	case ObjParen:
		return '(', ')', true
	case ObjBracket:
		return '[', ']', true
	case ObjBrace:
		return '{', '}', true
	case ObjAngle:
		return '<', '>', true
	case ObjDoubleQuote:
		return '"', '"', true
	case ObjSingleQuote:
		return '\'', '\'', true
	case ObjBacktick:
		return '`', '`', true
	default:
		return 0, 0, false
	}
}

// IsBracket reports whether the object is a nestable bracket pair.
func (o TextObject) IsBracket() bool {
	switch o {
	case ObjParen, ObjBracket, ObjBrace, ObjAngle:
		return true
	}
	return false
}

// IsQuote reports whether the object is a quoted string.
func (o TextObject) IsQuote() bool {
	switch o {
	case ObjDoubleQuote, ObjSingleQuote, ObjBacktick:
		return true
	}
	return false
}

var textObjects = map[rune]TextObject{
	'w':  ObjWord,
	'W':  ObjBigWord,
	's':  ObjSentence,
	'p':  ObjParagraph,
	'(':  ObjParen,
	')':  ObjParen,
	'b':  ObjParen,
	'[':  ObjBracket,
	']':  ObjBracket,
	'{':  ObjBrace,
	'}':  ObjBrace,
	'B':  ObjBrace,
	'<':  ObjAngle,
	'>':  ObjAngle,
	'"':  ObjDoubleQuote,
	'\'': ObjSingleQuote,
	'`':  ObjBacktick,
}

// TextObjectFromKey returns the text object for the key following a prefix.
func TextObjectFromKey(r rune) (TextObject, bool) {
	o, ok := textObjects[r]
	return o, ok
}

// TextObjectPrefix represents the prefix for text object selection.
type TextObjectPrefix uint8

const (
	// PrefixNone indicates no text object prefix.
	PrefixNone TextObjectPrefix = iota

	// PrefixInner indicates "inner" selection (i).
	PrefixInner

	// PrefixAround indicates "around" selection (a).
	PrefixAround
)

// String returns a string representation of the prefix.
func (p TextObjectPrefix) String() string {
	switch p {
	case PrefixInner:
		return "inner"
	case PrefixAround:
		return "around"
	default:
		return "none"
	}
}

// GetTextObjectPrefix returns the prefix type for the key.
func GetTextObjectPrefix(key rune) TextObjectPrefix {
	switch key {
	case 'i':
		return PrefixInner
	case 'a':
		return PrefixAround
	default:
		return PrefixNone
	}
}

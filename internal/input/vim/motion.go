package vim

// Motion is a rule computing a cursor target from the current position.
// Motions carry no state; all flags are static.
type Motion uint8

// Motions. MotionNone is the zero value and never resolves.
const (
	MotionNone Motion = iota

	// Character motions
	MotionLeft
	MotionRight
	MotionUp
	MotionDown

	// Word motions
	MotionWordForward
	MotionWordBackward
	MotionWordEnd
	MotionBigWordForward
	MotionBigWordBackward
	MotionBigWordEnd

	// Line motions
	MotionLineStart
	MotionFirstNonBlank
	MotionLineEnd
	MotionNextLineStart
	MotionPrevLineStart

	// Document motions
	MotionDocumentStart
	MotionDocumentEnd

	// Character search on the current line
	MotionFindForward
	MotionFindBackward
	MotionTillForward
	MotionTillBackward
	MotionRepeatFind
	MotionRepeatFindReverse

	// Block motions
	MotionParagraphForward
	MotionParagraphBackward
	MotionMatchPair

	// MotionLine is the pseudo-motion of a doubled operator (dd, yy).
	MotionLine
)

// CountPolicy describes how a motion interprets its repeat count.
type CountPolicy uint8

const (
	// CountRepeat applies the single step count times.
	CountRepeat CountPolicy = iota

	// CountIgnored applies the motion once regardless of count (0, ^, %).
	CountIgnored

	// CountLineNumber treats an explicit count as a 1-based line number (gg, G).
	CountLineNumber

	// CountLinesThenColumn moves count-1 lines down, then to a column ($).
	CountLinesThenColumn
)

// String returns a string representation of the policy.
func (p CountPolicy) String() string {
	switch p {
	case CountRepeat:
		return "repeat"
	case CountIgnored:
		return "ignored"
	case CountLineNumber:
		return "lineNumber"
	case CountLinesThenColumn:
		return "linesThenColumn"
	default:
		return "unknown"
	}
}

type motionInfo struct {
	name      string
	keys      string
	linewise  bool
	inclusive bool
	needsChar bool
	count     CountPolicy
}

var motionTable = [...]motionInfo{
	MotionNone: {name: "none"},

	MotionLeft:  {name: "left", keys: "h"},
	MotionRight: {name: "right", keys: "l"},
	MotionUp:    {name: "up", keys: "k", linewise: true},
	MotionDown:  {name: "down", keys: "j", linewise: true},

	MotionWordForward:     {name: "wordForward", keys: "w"},
	MotionWordBackward:    {name: "wordBackward", keys: "b"},
	MotionWordEnd:         {name: "wordEnd", keys: "e", inclusive: true},
	MotionBigWordForward:  {name: "bigWordForward", keys: "W"},
	MotionBigWordBackward: {name: "bigWordBackward", keys: "B"},
	MotionBigWordEnd:      {name: "bigWordEnd", keys: "E", inclusive: true},

	MotionLineStart:     {name: "lineStart", keys: "0", count: CountIgnored},
	MotionFirstNonBlank: {name: "firstNonBlank", keys: "^", count: CountIgnored},
	MotionLineEnd:       {name: "lineEnd", keys: "$", inclusive: true, count: CountLinesThenColumn},
	MotionNextLineStart: {name: "nextLineStart", keys: "+", linewise: true},
	MotionPrevLineStart: {name: "prevLineStart", keys: "-", linewise: true},

	MotionDocumentStart: {name: "documentStart", keys: "gg", linewise: true, count: CountLineNumber},
	MotionDocumentEnd:   {name: "documentEnd", keys: "G", linewise: true, count: CountLineNumber},

	MotionFindForward:       {name: "findForward", keys: "f", inclusive: true, needsChar: true},
	MotionFindBackward:      {name: "findBackward", keys: "F", needsChar: true},
	MotionTillForward:       {name: "tillForward", keys: "t", inclusive: true, needsChar: true},
	MotionTillBackward:      {name: "tillBackward", keys: "T", needsChar: true},
	MotionRepeatFind:        {name: "repeatFind", keys: ";"},
	MotionRepeatFindReverse: {name: "repeatFindReverse", keys: ","},

	MotionParagraphForward:  {name: "paragraphForward", keys: "}"},
	MotionParagraphBackward: {name: "paragraphBackward", keys: "{"},
	MotionMatchPair:         {name: "matchPair", keys: "%", inclusive: true, count: CountIgnored},

	MotionLine: {name: "line", linewise: true, count: CountLinesThenColumn},
}

func (m Motion) info() motionInfo {
	if int(m) < len(motionTable) {
		return motionTable[m]
	}
	return motionTable[MotionNone]
}

// String returns the motion name.
func (m Motion) String() string {
	return m.info().name
}

// Keys returns the key sequence that triggers the motion.
func (m Motion) Keys() string {
	return m.info().keys
}

// Linewise reports whether an operator over this motion acts on whole lines.
func (m Motion) Linewise() bool {
	return m.info().linewise
}

// Inclusive reports whether the target character is part of the range.
// Repeat motions (; and ,) take their inclusivity from the repeated find.
func (m Motion) Inclusive() bool {
	return m.info().inclusive
}

// NeedsChar reports whether the motion takes a character argument (f, t, F, T).
func (m Motion) NeedsChar() bool {
	return m.info().needsChar
}

// CountPolicy returns how the motion interprets its count.
func (m Motion) CountPolicy() CountPolicy {
	return m.info().count
}

// IsFind reports whether the motion is a character search or its repeat.
func (m Motion) IsFind() bool {
	switch m {
	case MotionFindForward, MotionFindBackward, MotionTillForward, MotionTillBackward,
		MotionRepeatFind, MotionRepeatFindReverse:
		return true
	}
	return false
}

// Reverse returns the find motion searching in the opposite direction.
func (m Motion) Reverse() Motion {
	switch m {
	case MotionFindForward:
		return MotionFindBackward
	case MotionFindBackward:
		return MotionFindForward
	case MotionTillForward:
		return MotionTillBackward
	case MotionTillBackward:
		return MotionTillForward
	default:
		return m
	}
}

var motionKeys = map[rune]Motion{
	'h': MotionLeft,
	'l': MotionRight,
	'k': MotionUp,
	'j': MotionDown,
	'w': MotionWordForward,
	'b': MotionWordBackward,
	'e': MotionWordEnd,
	'W': MotionBigWordForward,
	'B': MotionBigWordBackward,
	'E': MotionBigWordEnd,
	'0': MotionLineStart,
	'^': MotionFirstNonBlank,
	'$': MotionLineEnd,
	'+': MotionNextLineStart,
	'-': MotionPrevLineStart,
	'G': MotionDocumentEnd,
	'f': MotionFindForward,
	'F': MotionFindBackward,
	't': MotionTillForward,
	'T': MotionTillBackward,
	';': MotionRepeatFind,
	',': MotionRepeatFindReverse,
	'}': MotionParagraphForward,
	'{': MotionParagraphBackward,
	'%': MotionMatchPair,
}

// MotionFromKey returns the motion bound to a single key.
func MotionFromKey(r rune) (Motion, bool) {
	m, ok := motionKeys[r]
	return m, ok
}

// MotionFromG returns the motion bound to 'g' followed by r.
func MotionFromG(r rune) (Motion, bool) {
	if r == 'g' {
		return MotionDocumentStart, true
	}
	return MotionNone, false
}

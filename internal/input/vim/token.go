package vim

import "fmt"

// TokenKind identifies the semantic category of a classified keystroke.
type TokenKind uint8

const (
	// TokenUnrecognized is passed through to the host verbatim.
	TokenUnrecognized TokenKind = iota

	// TokenDigit is a count digit (1-9, or 0 after another digit).
	TokenDigit

	// TokenOperator is an operator key (d, c, y, >, <, or the suffix of gu/gU/g~).
	TokenOperator

	// TokenMotion is a motion key.
	TokenMotion

	// TokenTextObjectPrefix is i or a after an operator or in Visual mode.
	TokenTextObjectPrefix

	// TokenTextObject is the key following a text object prefix.
	TokenTextObject

	// TokenModeSwitch changes mode (i, a, I, A, v, V, R).
	TokenModeSwitch

	// TokenCancel is Escape, Ctrl-[ or Ctrl-C.
	TokenCancel

	// TokenLiteral is a character typed in Insert or Replace mode.
	TokenLiteral

	// TokenRegisterPrefix is the " that introduces a register name.
	TokenRegisterPrefix

	// TokenRegister is the register name following ".
	TokenRegister

	// TokenCharArg is the character argument of f, t, F, T or r.
	TokenCharArg

	// TokenPrefix is the g prefix.
	TokenPrefix

	// TokenCommand is a standalone command (x, p, J, u, ...).
	TokenCommand
)

var tokenKindNames = [...]string{
	TokenUnrecognized:     "unrecognized",
	TokenDigit:            "digit",
	TokenOperator:         "operator",
	TokenMotion:           "motion",
	TokenTextObjectPrefix: "textObjectPrefix",
	TokenTextObject:       "textObject",
	TokenModeSwitch:       "modeSwitch",
	TokenCancel:           "cancel",
	TokenLiteral:          "literal",
	TokenRegisterPrefix:   "registerPrefix",
	TokenRegister:         "register",
	TokenCharArg:          "charArg",
	TokenPrefix:           "prefix",
	TokenCommand:          "command",
}

// String returns the token kind name.
func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "unknown"
}

// ModeSwitch is a key that changes mode from Normal or Visual.
type ModeSwitch uint8

const (
	SwitchNone ModeSwitch = iota
	SwitchInsert
	SwitchAppend
	SwitchInsertLineStart
	SwitchAppendLineEnd
	SwitchVisual
	SwitchVisualLine
	SwitchReplace
)

var modeSwitchKeys = map[rune]ModeSwitch{
	'i': SwitchInsert,
	'a': SwitchAppend,
	'I': SwitchInsertLineStart,
	'A': SwitchAppendLineEnd,
	'v': SwitchVisual,
	'V': SwitchVisualLine,
	'R': SwitchReplace,
}

// ModeSwitchFromKey returns the mode switch bound to r.
func ModeSwitchFromKey(r rune) (ModeSwitch, bool) {
	s, ok := modeSwitchKeys[r]
	return s, ok
}

// String returns the mode switch name.
func (s ModeSwitch) String() string {
	switch s {
	case SwitchInsert:
		return "insert"
	case SwitchAppend:
		return "append"
	case SwitchInsertLineStart:
		return "insertLineStart"
	case SwitchAppendLineEnd:
		return "appendLineEnd"
	case SwitchVisual:
		return "visual"
	case SwitchVisualLine:
		return "visualLine"
	case SwitchReplace:
		return "replace"
	default:
		return "none"
	}
}

// Command is a standalone Normal or Visual mode command.
type Command uint8

const (
	CmdNone Command = iota
	CmdDeleteChar
	CmdDeleteCharBefore
	CmdDeleteToEnd
	CmdChangeToEnd
	CmdSubstituteChar
	CmdSubstituteLine
	CmdYankLine
	CmdPasteAfter
	CmdPasteBefore
	CmdReplaceChar
	CmdJoinLines
	CmdUndo
	CmdRedo
	CmdRepeat
	CmdOpenBelow
	CmdOpenAbove
	CmdSwapSelectionEnds
	CmdRecordMacro
	CmdPlayMacro
)

type commandInfo struct {
	name     string
	keys     string
	op       Operator
	motion   Motion
	needsArg bool
}

var commandTable = [...]commandInfo{
	CmdNone:              {name: "none"},
	CmdDeleteChar:        {name: "deleteChar", keys: "x", op: OpDelete, motion: MotionRight},
	CmdDeleteCharBefore:  {name: "deleteCharBefore", keys: "X", op: OpDelete, motion: MotionLeft},
	CmdDeleteToEnd:       {name: "deleteToEnd", keys: "D", op: OpDelete, motion: MotionLineEnd},
	CmdChangeToEnd:       {name: "changeToEnd", keys: "C", op: OpChange, motion: MotionLineEnd},
	CmdSubstituteChar:    {name: "substituteChar", keys: "s", op: OpChange, motion: MotionRight},
	CmdSubstituteLine:    {name: "substituteLine", keys: "S", op: OpChange, motion: MotionLine},
	CmdYankLine:          {name: "yankLine", keys: "Y", op: OpYank, motion: MotionLine},
	CmdPasteAfter:        {name: "pasteAfter", keys: "p"},
	CmdPasteBefore:       {name: "pasteBefore", keys: "P"},
	CmdReplaceChar:       {name: "replaceChar", keys: "r", needsArg: true},
	CmdJoinLines:         {name: "joinLines", keys: "J"},
	CmdUndo:              {name: "undo", keys: "u"},
	CmdRedo:              {name: "redo", keys: "<C-r>"},
	CmdRepeat:            {name: "repeat", keys: "."},
	CmdOpenBelow:         {name: "openBelow", keys: "o"},
	CmdOpenAbove:         {name: "openAbove", keys: "O"},
	CmdSwapSelectionEnds: {name: "swapSelectionEnds", keys: "o"},
	CmdRecordMacro:       {name: "recordMacro", keys: "q", needsArg: true},
	CmdPlayMacro:         {name: "playMacro", keys: "@", needsArg: true},
}

func (c Command) info() commandInfo {
	if int(c) < len(commandTable) {
		return commandTable[c]
	}
	return commandTable[CmdNone]
}

// String returns the command name.
func (c Command) String() string {
	return c.info().name
}

// Keys returns the key sequence of the command.
func (c Command) Keys() string {
	return c.info().keys
}

// NeedsChar reports whether the command takes a character argument (r, q, @).
func (c Command) NeedsChar() bool {
	return c.info().needsArg
}

// Expand returns the operator and motion a shorthand command stands for:
// x=dl, X=dh, D=d$, C=c$, s=cl, S=cc, Y=yy.
func (c Command) Expand() (Operator, Motion, bool) {
	info := c.info()
	if info.op == OpNone {
		return OpNone, MotionNone, false
	}
	return info.op, info.motion, true
}

var commandKeys = map[rune]Command{
	'x': CmdDeleteChar,
	'X': CmdDeleteCharBefore,
	'D': CmdDeleteToEnd,
	'C': CmdChangeToEnd,
	's': CmdSubstituteChar,
	'S': CmdSubstituteLine,
	'Y': CmdYankLine,
	'p': CmdPasteAfter,
	'P': CmdPasteBefore,
	'r': CmdReplaceChar,
	'J': CmdJoinLines,
	'u': CmdUndo,
	'.': CmdRepeat,
	'o': CmdOpenBelow,
	'O': CmdOpenAbove,
	'q': CmdRecordMacro,
	'@': CmdPlayMacro,
}

// CommandFromKey returns the Normal mode command bound to r.
func CommandFromKey(r rune) (Command, bool) {
	c, ok := commandKeys[r]
	return c, ok
}

// Token is a classified keystroke. Only the fields relevant to Kind are set.
type Token struct {
	Kind TokenKind

	// Rune is the source character: digit, literal, register name or char argument.
	Rune rune

	Operator Operator
	Motion   Motion
	Object   TextObject
	Prefix   TextObjectPrefix
	Switch   ModeSwitch
	Command  Command
}

// String returns a debug representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case TokenOperator:
		return fmt.Sprintf("operator(%s)", t.Operator)
	case TokenMotion:
		return fmt.Sprintf("motion(%s)", t.Motion)
	case TokenTextObjectPrefix:
		return fmt.Sprintf("textObjectPrefix(%s)", t.Prefix)
	case TokenTextObject:
		return fmt.Sprintf("textObject(%s)", t.Object)
	case TokenModeSwitch:
		return fmt.Sprintf("modeSwitch(%s)", t.Switch)
	case TokenCommand:
		return fmt.Sprintf("command(%s)", t.Command)
	case TokenDigit, TokenLiteral, TokenRegister, TokenCharArg, TokenPrefix:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Rune)
	default:
		return t.Kind.String()
	}
}

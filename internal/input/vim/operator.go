package vim

// Operator is an action applied to a range of text defined by a motion or
// text object.
type Operator uint8

// Operators. OpNone means no operator is pending.
const (
	OpNone Operator = iota
	OpChange
	OpDelete
	OpYank
	OpIndentRight
	OpIndentLeft
	OpLowercase
	OpUppercase
	OpToggleCase
)

type operatorInfo struct {
	name         string
	keys         string
	changesText  bool
	entersInsert bool
}

var operatorTable = [...]operatorInfo{
	OpNone:        {name: "none"},
	OpChange:      {name: "change", keys: "c", changesText: true, entersInsert: true},
	OpDelete:      {name: "delete", keys: "d", changesText: true},
	OpYank:        {name: "yank", keys: "y"},
	OpIndentRight: {name: "indentRight", keys: ">", changesText: true},
	OpIndentLeft:  {name: "indentLeft", keys: "<", changesText: true},
	OpLowercase:   {name: "lowercase", keys: "gu", changesText: true},
	OpUppercase:   {name: "uppercase", keys: "gU", changesText: true},
	OpToggleCase:  {name: "toggleCase", keys: "g~", changesText: true},
}

func (op Operator) info() operatorInfo {
	if int(op) < len(operatorTable) {
		return operatorTable[op]
	}
	return operatorTable[OpNone]
}

// String returns the operator name.
func (op Operator) String() string {
	return op.info().name
}

// Keys returns the key sequence that triggers the operator.
func (op Operator) Keys() string {
	return op.info().keys
}

// ChangesText reports whether the operator mutates the buffer.
func (op Operator) ChangesText() bool {
	return op.info().changesText
}

// EntersInsert reports whether the operator leaves the view in Insert mode.
func (op Operator) EntersInsert() bool {
	return op.info().entersInsert
}

// IsGPrefixed reports whether the operator is typed after a 'g' prefix.
func (op Operator) IsGPrefixed() bool {
	return len(op.Keys()) == 2
}

// DoubleKey returns the key that, typed while the operator is pending,
// makes the command linewise: 'd' for dd, '~' for g~~, 'u' for guu.
func (op Operator) DoubleKey() rune {
	keys := op.Keys()
	if keys == "" {
		return 0
	}
	return rune(keys[len(keys)-1])
}

var operatorKeys = map[rune]Operator{
	'c': OpChange,
	'd': OpDelete,
	'y': OpYank,
	'>': OpIndentRight,
	'<': OpIndentLeft,
}

var gOperatorKeys = map[rune]Operator{
	'u': OpLowercase,
	'U': OpUppercase,
	'~': OpToggleCase,
}

// OperatorFromKey returns the operator bound to a single key.
func OperatorFromKey(r rune) (Operator, bool) {
	op, ok := operatorKeys[r]
	return op, ok
}

// OperatorFromG returns the operator bound to 'g' followed by r.
func OperatorFromG(r rune) (Operator, bool) {
	op, ok := gOperatorKeys[r]
	return op, ok
}

// Operators returns every operator except OpNone.
func Operators() []Operator {
	ops := make([]Operator, 0, len(operatorTable)-1)
	for i := 1; i < len(operatorTable); i++ {
		ops = append(ops, Operator(i))
	}
	return ops
}

// Package mode provides the modal state machine for one editing view.
//
// The machine tracks exactly one active mode per view:
//   - Normal: navigation and commands (initial)
//   - Insert: text input handled by the host
//   - Visual: character-wise selection
//   - Visual Line: line-wise selection
//   - Replace: typed characters overwrite the buffer
//   - Operator-pending: an operator waits for its motion or text object
//
// # Transitions
//
// Transitions are keyed by the current mode and a classified token:
//
//	Normal          + mode switch       -> Insert | Visual | VisualLine | Replace
//	Normal          + operator          -> OperatorPending(op)
//	OperatorPending + same operator     -> PostMode(op)   (linewise, e.g. dd)
//	OperatorPending + motion/object     -> PostMode(op)
//	OperatorPending + other operator    -> Normal, token reprocessed
//	Visual*         + operator          -> PostMode(op)
//	any             + cancel            -> Normal
//
// Leaving Insert or Replace for Normal reports AdjustCursor so the caller
// moves the cursor one column left, clamped to the line start.
//
// A Machine is owned by a single input path and is not safe for
// concurrent use.
package mode

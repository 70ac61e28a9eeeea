package evil

import "errors"

// ErrNoHistory is returned by u and Ctrl-R when the view's Undo does not
// implement host.History.
var ErrNoHistory = errors.New("host has no undo history")

// ErrNoRegisters is returned by q and @ when the view has no register
// store to keep macros in.
var ErrNoRegisters = errors.New("host has no registers")

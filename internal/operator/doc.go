// Package operator applies operators and editing commands to a view.
//
// Every call runs inside exactly one host undo transaction, however many
// primitive edits it issues, so a composed command is one undo step. Yanks
// open a transaction too; hosts drop transactions that recorded nothing.
//
// # Registers
//
// Deleted and yanked text goes to the register named by the command, or
// to the unnamed register. When the view's register store implements
// host.RegisterHistory, unnamed yanks also fill register 0 and unnamed
// deletes rotate the numbered registers (or fill "-" for small deletes).
// The black hole register "_" discards the text.
//
// # Failures
//
// Host mutation failures, such as a read-only buffer, are returned
// wrapped. The returned Outcome still names Normal mode so callers never
// leave the view stuck in Insert or OperatorPending.
package operator

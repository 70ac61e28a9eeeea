// Package input turns raw key events into completed modal commands.
//
// Two pieces cooperate for every view:
//
//   - Classify: a pure function mapping a key event to a vim.Token given
//     the current mode and what the composer is waiting for.
//   - Composer: accumulates counts, a register, an operator and finally a
//     motion or text object, consulting the view's mode.Machine, and emits
//     a Command once the sequence is complete.
//
// # Key Sequences
//
// The composer never times out. A sequence stays pending until it either
// completes, is cancelled with Escape, or turns out to be malformed. A
// malformed sequence (an operator that does not match the pending one, an
// unknown key after g, an unknown text object) discards the pending state
// and the offending key is processed again from Normal mode, so no input
// is silently dropped.
//
// # Usage
//
//	machine := mode.NewMachine(mode.Normal)
//	composer := input.NewComposer(machine)
//
//	res := composer.Feed(ev)
//	switch res.Status {
//	case input.StatusComplete:
//	    // resolve and execute res.Command
//	case input.StatusPassthrough:
//	    // let the host handle ev natively
//	}
package input

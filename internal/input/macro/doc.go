// Package macro records and replays key sequences, Vim style.
//
// `qa` starts recording into register a, keys typed afterwards are
// captured, and a second `q` stops. The recording is stored in the view's
// registers as Vim key notation, so `"ap` pastes it and a yank into a
// register can be played back. `3@a` replays register a three times and
// `@@` replays the last played register.
//
//	rec := macro.NewRecorder()
//	rec.Start('a')
//	rec.Record(ev) // for every key while recording
//	reg, events := rec.Stop()
//	regs.Set(reg, host.Register{Text: macro.Encode(events)})
//
// A Player replays events through a handler and aborts on the first
// error, like Vim stops a macro when a command fails. Playback may nest
// (a macro can play another) up to a fixed depth.
package macro

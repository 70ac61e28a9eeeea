// Package evil is the entry point of modal editing. An Engine intercepts
// key events for host views and either handles them, applying Vim style
// commands through the host's buffer, cursor, register and undo
// primitives, or passes them through so the host applies its own binding.
//
// Each view gets its own mode machine, command composer and motion
// resolver, created on first use and keyed by the view's ID. Each buffer
// gets a config.Session that carries its modeline settings over the
// process-wide configuration.
//
//	store := config.New()
//	_ = store.Load(ctx)
//	eng := evil.New(store)
//	eng.LoadBuffer(view)
//	if eng.HandleKey(view, ev).Status == evil.PassThrough {
//		host.HandleNative(ev)
//	}
//
// The editor.evil setting gates the whole engine. While it is off every
// key passes through and view state is left untouched; a composition that
// was pending when the gate flipped is discarded the next time its view
// sees a key.
package evil

// Package motion resolves motions and text objects against a host buffer.
//
// A Resolver turns a motion, a count and an optional character argument
// into a Range: the origin and target of the motion plus the flags an
// operator needs (inclusive, linewise). Text objects resolve to half-open
// spans directly.
//
// # Boundaries
//
// Motions clamp at buffer and line boundaries; they never fail for
// running out of text. The only failure is ErrNoTarget, returned when a
// character search or a text object has nothing to find. Callers treat it
// as "no effect".
//
// # Character classes
//
// Word motions and word objects classify every rune with the buffer's own
// CharClass, so the resolver agrees with the host about where words start
// and end. Horizontal steps move by grapheme cluster.
//
// # Per-view state
//
// A Resolver remembers the last f, F, t or T search (for ; and ,) and the
// goal column of vertical motions. Keep one Resolver per view.
package motion

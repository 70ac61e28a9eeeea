// Package host defines the capabilities the modal engine consumes from the
// editor it is embedded in.
//
// The engine never owns text storage, undo history or rendering. It reads
// and mutates a buffer, moves a cursor, writes registers and brackets every
// composed command in one undo transaction, all through the interfaces in
// this package:
//
//   - Buffer: text queries and mutation primitives
//   - Cursor: primary cursor and visual selection
//   - Registers: named register storage (optional RegisterHistory)
//   - Undo: transaction boundaries (optional History for u and <C-r>)
//   - Notifier: optional user-visible messages
//   - LanguageProvider: optional filetype of a buffer
//
// A View bundles them for one editing view. Package memhost provides an
// in-memory implementation.
package host

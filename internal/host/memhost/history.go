package memhost

import (
	"sync"
	"unicode/utf8"

	"github.com/dshills/evil/internal/host"
)

// edit is one recorded replacement.
type edit struct {
	offset   int
	deleted  string
	inserted string
}

// entry is one undo unit.
type entry struct {
	name  string
	edits []edit
}

// History records buffer edits as undo units. Edits made between
// BeginTransaction and EndTransaction form one unit; nested transactions
// join the outermost one. Edits outside a transaction are one unit each.
type History struct {
	mu  sync.Mutex
	buf *Buffer

	undo []entry
	redo []entry

	depth int
	group entry

	transactions int
}

func newHistory(buf *Buffer) *History {
	return &History{buf: buf}
}

// BeginTransaction opens an undo unit.
func (h *History) BeginTransaction(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.depth++
	if h.depth == 1 {
		h.group = entry{name: name}
	}
}

// EndTransaction closes the current undo unit. Units without edits are
// dropped.
func (h *History) EndTransaction() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}

	h.transactions++
	if len(h.group.edits) > 0 {
		h.undo = append(h.undo, h.group)
		h.redo = nil
	}
	h.group = entry{}
}

// Transactions returns how many outermost transactions have been closed.
func (h *History) Transactions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.transactions
}

// UndoCount returns the number of undo units.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// InTransaction reports whether a transaction is open.
func (h *History) InTransaction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

func (h *History) record(e edit) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth > 0 {
		h.group.edits = append(h.group.edits, e)
		return
	}
	h.undo = append(h.undo, entry{edits: []edit{e}})
	h.redo = nil
}

// Undo reverts the last unit and returns where the cursor should go.
func (h *History) Undo() (host.Offset, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return 0, false, nil
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	h.buf.mu.Lock()
	cursor := -1
	for i := len(e.edits) - 1; i >= 0; i-- {
		ed := e.edits[i]
		h.buf.applyLocked(ed.offset, len(ed.inserted), ed.deleted)
		if cursor < 0 || ed.offset < cursor {
			cursor = ed.offset
		}
	}
	h.buf.mu.Unlock()

	h.redo = append(h.redo, e)
	return cursor, true, nil
}

// Redo reapplies the last undone unit.
func (h *History) Redo() (host.Offset, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return 0, false, nil
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	h.buf.mu.Lock()
	cursor := -1
	for _, ed := range e.edits {
		h.buf.applyLocked(ed.offset, len(ed.deleted), ed.inserted)
		if cursor < 0 || ed.offset < cursor {
			cursor = ed.offset
		}
	}
	h.buf.mu.Unlock()

	h.undo = append(h.undo, e)
	return cursor, true, nil
}

func decodeRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}

var (
	_ host.Undo    = (*History)(nil)
	_ host.History = (*History)(nil)
)

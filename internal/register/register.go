// Package register implements a Vim register store.
//
// The store holds the unnamed register ("), named registers a-z (A-Z
// append), the last yank (0), the delete history (1-9, rotated on every
// multi-line or large delete), the small delete register (-) and the black
// hole (_). The clipboard registers + and * are backed by a
// ClipboardProvider when one is set.
package register

import (
	"log/slog"
	"sync"
	"unicode"

	"github.com/dshills/evil/internal/host"
)

// Type categorizes registers by their behavior.
type Type uint8

const (
	// TypeUnnamed is the default register (").
	TypeUnnamed Type = iota

	// TypeNamed is a named register (a-z, A-Z).
	TypeNamed

	// TypeLastYank is the yank register (0).
	TypeLastYank

	// TypeNumbered is a numbered delete register (1-9).
	TypeNumbered

	// TypeSmallDelete is the small delete register (-).
	TypeSmallDelete

	// TypeBlackHole is the black hole register (_).
	TypeBlackHole

	// TypeClipboard is the system clipboard register (+ or *).
	TypeClipboard

	// TypeInvalid is returned for names that are not registers.
	TypeInvalid
)

// TypeOf returns the type of register for a given name.
func TypeOf(name rune) Type {
	switch {
	case name == '"':
		return TypeUnnamed
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return TypeNamed
	case name == '0':
		return TypeLastYank
	case name >= '1' && name <= '9':
		return TypeNumbered
	case name == '-':
		return TypeSmallDelete
	case name == '_':
		return TypeBlackHole
	case name == '+', name == '*':
		return TypeClipboard
	default:
		return TypeInvalid
	}
}

// ClipboardProvider abstracts system clipboard access.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// Store manages all registers. It is safe for concurrent use, so one store
// may be shared by every view of a process.
type Store struct {
	mu        sync.RWMutex
	registers map[rune]host.Register

	// clipboard provides system clipboard access.
	clipboard ClipboardProvider

	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger clipboard failures are written to.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty register store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		registers: make(map[rune]host.Register),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetClipboard sets the clipboard provider for + and *.
func (s *Store) SetClipboard(clipboard ClipboardProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipboard = clipboard
}

func (s *Store) clipboardProvider() ClipboardProvider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clipboard
}

// Get returns the content of a register. Uppercase names read the
// lowercase register.
func (s *Store) Get(name rune) (host.Register, bool) {
	name = unicode.ToLower(name)

	switch TypeOf(name) {
	case TypeInvalid, TypeBlackHole:
		return host.Register{}, false
	case TypeClipboard:
		if cb := s.clipboardProvider(); cb != nil {
			content, err := cb.Get()
			if err != nil {
				s.logger.Warn("clipboard read failed", "register", string(name), "error", err)
				return host.Register{}, false
			}
			return host.Register{Text: content, Linewise: isLinewiseText(content)}, true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.registers[name]
	return reg, ok
}

// Set stores content in a register. Uppercase named registers append,
// '_' discards, and invalid names are ignored.
func (s *Store) Set(name rune, reg host.Register) {
	typ := TypeOf(name)
	switch typ {
	case TypeInvalid, TypeBlackHole:
		return
	case TypeClipboard:
		if cb := s.clipboardProvider(); cb != nil {
			if err := cb.Set(reg.Text); err != nil {
				s.logger.Warn("clipboard write failed", "register", string(name), "bytes", len(reg.Text), "error", err)
			}
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if typ == TypeNamed && unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		if cur, ok := s.registers[name]; ok {
			reg = appendRegister(cur, reg)
		}
	}

	s.registers[name] = reg
}

func appendRegister(cur, add host.Register) host.Register {
	switch {
	case cur.Linewise && add.Linewise:
		cur.Text += add.Text
	case cur.Linewise:
		cur.Text += add.Text + "\n"
	case add.Linewise:
		cur.Text += "\n" + add.Text
		cur.Linewise = true
	default:
		cur.Text += add.Text
	}
	return cur
}

// SetYank stores a yank in register 0 and the unnamed register.
func (s *Store) SetYank(reg host.Register) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registers['0'] = reg
	s.registers['"'] = reg
}

// SetDelete stores a delete in the unnamed register. Small deletes go to
// '-', others rotate the numbered registers (9 <- 8 <- ... <- 1).
func (s *Store) SetDelete(reg host.Register, small bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registers['"'] = reg

	if small {
		s.registers['-'] = reg
		return
	}

	for i := '9'; i > '1'; i-- {
		if prev, ok := s.registers[i-1]; ok {
			s.registers[i] = prev
		}
	}
	s.registers['1'] = reg
}

// Names returns the names of all non-empty registers.
func (s *Store) Names() []rune {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]rune, 0, len(s.registers))
	for name := range s.registers {
		names = append(names, name)
	}
	return names
}

func isLinewiseText(s string) bool {
	return len(s) > 0 && s[len(s)-1] == '\n'
}

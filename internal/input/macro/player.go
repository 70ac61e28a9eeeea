package macro

import (
	"fmt"

	"github.com/dshills/evil/internal/input/key"
)

// DefaultMaxDepth bounds nested playback, so a macro that plays itself
// terminates.
const DefaultMaxDepth = 100

// DefaultMaxKeys bounds the keys one playback replays, nested playbacks
// included.
const DefaultMaxKeys = 1 << 20

// EventHandler processes one replayed key. A non-nil error aborts the
// playback.
type EventHandler func(event key.Event) error

// Player replays macros. It is used from a single input path and is not
// safe for concurrent use.
type Player struct {
	maxDepth int
	maxKeys  int
	depth    int
	keys     int
	last     rune
}

// NewPlayer creates a player with DefaultMaxDepth and DefaultMaxKeys.
func NewPlayer() *Player {
	return &Player{maxDepth: DefaultMaxDepth, maxKeys: DefaultMaxKeys}
}

// Resolve maps @ to the last played register.
func (p *Player) Resolve(register rune) (rune, error) {
	if register == LastPlayed {
		if p.last == 0 {
			return 0, fmt.Errorf("%w: no previous macro", ErrEmptyRegister)
		}
		return p.last, nil
	}
	if !IsValidRegister(register) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}
	return NormalizeRegister(register), nil
}

// Play sends events to handler count times. The register becomes the
// target of @@ once playback starts.
func (p *Player) Play(register rune, events []key.Event, count int, handler EventHandler) error {
	if len(events) == 0 {
		return fmt.Errorf("%w: @%c", ErrEmptyRegister, register)
	}
	if p.depth >= p.maxDepth {
		return ErrTooDeep
	}

	if p.depth == 0 {
		p.keys = 0
	}
	p.last = register
	p.depth++
	defer func() { p.depth-- }()

	for range max(count, 1) {
		for _, ev := range events {
			if p.keys++; p.keys > p.maxKeys {
				return fmt.Errorf("%w: more than %d", ErrTooManyKeys, p.maxKeys)
			}
			if err := handler(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Playing reports whether a playback is running.
func (p *Player) Playing() bool {
	return p.depth > 0
}

// Last returns the last played register, or 0.
func (p *Player) Last() rune {
	return p.last
}

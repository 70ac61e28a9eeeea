package evil

import (
	"github.com/google/uuid"

	"github.com/dshills/evil/internal/config"
	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input"
	"github.com/dshills/evil/internal/input/macro"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/motion"
	"github.com/dshills/evil/internal/operator"
)

// viewState is the editing state of one view. Only the view's input path
// touches it.
type viewState struct {
	bufferID uuid.UUID
	session  *config.Session

	machine  *mode.Machine
	composer *input.Composer
	resolver *motion.Resolver
	recorder *macro.Recorder
	player   *macro.Player

	// generation is the gate generation last seen by the view.
	generation uint64

	// anchor is the fixed end of the visual selection.
	anchor host.Offset

	// last is the last buffer-changing command, replayed by `.`.
	last *input.Command
}

func newViewState(bufferID uuid.UUID, sess *config.Session, generation uint64) *viewState {
	m := mode.NewMachine(initialMode(sess))
	return &viewState{
		bufferID:   bufferID,
		session:    sess,
		machine:    m,
		composer:   input.NewComposer(m),
		resolver:   motion.NewResolver(),
		recorder:   macro.NewRecorder(),
		player:     macro.NewPlayer(),
		generation: generation,
	}
}

// initialMode returns the evil.initial-mode setting, Normal when unset or
// invalid.
func initialMode(sess *config.Session) mode.Mode {
	s, err := sess.String(config.EvilInitialMode)
	if err != nil {
		return mode.Normal
	}
	m, err := mode.Parse(s)
	if err != nil {
		return mode.Normal
	}
	return m
}

// executor builds an executor from the buffer's current settings.
func (vs *viewState) executor(buf host.Reader) *operator.Executor {
	settings := operator.DefaultSettings()
	if unit, err := vs.session.String(config.IndentUnit); err == nil && unit != "" {
		settings.IndentUnit = unit
	}

	le, _ := vs.session.String(config.LineEnding)
	if parsed, err := host.ParseLineEnding(le); err == nil {
		settings.LineEnding = parsed
	} else if text, err := buf.TextRange(0, host.NextLineStart(buf, 0)); err == nil {
		settings.LineEnding = host.DetectLineEnding(text)
	}
	return operator.New(settings)
}

// deleteToWordEnd returns the evil.dw-stops-at-word-end setting.
func (vs *viewState) deleteToWordEnd() bool {
	stop, err := vs.session.Bool(config.EvilDwStopsAtWordEnd)
	if err != nil {
		return true
	}
	return stop
}

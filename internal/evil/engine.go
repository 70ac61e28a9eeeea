package evil

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/evil/internal/config"
	"github.com/dshills/evil/internal/config/notify"
	"github.com/dshills/evil/internal/host"
	"github.com/dshills/evil/internal/input"
	"github.com/dshills/evil/internal/input/key"
	"github.com/dshills/evil/internal/input/macro"
	"github.com/dshills/evil/internal/input/mode"
	"github.com/dshills/evil/internal/modeline"
	"github.com/dshills/evil/internal/motion"
	"github.com/dshills/evil/internal/operator"
)

// Status tells the host what to do with a key.
type Status uint8

const (
	// PassThrough means the host applies its native binding.
	PassThrough Status = iota

	// Handled means the engine consumed the key.
	Handled
)

// String returns the status name.
func (s Status) String() string {
	if s == Handled {
		return "handled"
	}
	return "passthrough"
}

// Result is the outcome of HandleKey.
type Result struct {
	Status Status

	// Mode is the view's mode after the key. While the gate is off it is
	// the mode the view resumes in once the gate is back on.
	Mode mode.Mode

	// Pending is the partially typed command, e.g. `2d`.
	Pending string

	// Err is set when a command failed. The failure has already been
	// reported through the view's Notifier when it has one.
	Err error
}

// Engine routes key events of many views through modal editing.
type Engine struct {
	store   *config.Store
	scanner *modeline.Scanner
	logger  *slog.Logger
	metrics *Metrics

	mu       sync.RWMutex
	views    map[uuid.UUID]*viewState
	sessions map[uuid.UUID]*config.Session
	focused  uuid.UUID

	sub *notify.Subscription
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithScanner sets the modeline scanner used by LoadBuffer.
func WithScanner(s *modeline.Scanner) Option {
	return func(e *Engine) {
		if s != nil {
			e.scanner = s
		}
	}
}

// WithMetrics enables statistics collection into m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an engine reading its configuration from store.
func New(store *config.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		logger:   slog.Default(),
		views:    make(map[uuid.UUID]*viewState),
		sessions: make(map[uuid.UUID]*config.Session),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scanner == nil {
		e.scanner = modeline.New(modeline.WithLogger(e.logger))
	}

	e.sub = store.SubscribePath(config.EditorEvil, func(c notify.Change) {
		if c.Type == notify.ChangeReload {
			return
		}
		e.logger.Info("modal editing toggled", "enabled", c.NewValue, "source", c.Source)
	})
	return e
}

// Close stops listening for configuration changes.
func (e *Engine) Close() {
	e.sub.Unsubscribe()
}

// Metrics returns the statistics collector, or nil.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Enabled reports whether the feature gate is on.
func (e *Engine) Enabled() bool {
	return e.store.Snapshot().Evil
}

// HandleKey processes one key event for view.
func (e *Engine) HandleKey(view host.View, ev key.Event) Result {
	snap := e.store.Snapshot()
	if !snap.Evil {
		e.recordKey(true)
		return Result{Status: PassThrough, Mode: e.Mode(view)}
	}

	vs := e.state(view)
	if id := view.BufferID(); id != vs.bufferID {
		e.switchBuffer(view, vs, id)
	}
	if vs.generation != snap.Generation {
		if vs.composer.IsPending() {
			e.logger.Debug("discarding pending command after gate change", "view", view.ID(), "pending", vs.composer.PendingDisplay())
			vs.composer.Cancel()
		}
		if vs.recorder.Recording() {
			e.logger.Debug("discarding macro recording after gate change", "view", view.ID(), "register", string(vs.recorder.Register()))
			vs.recorder.Cancel()
		}
		vs.generation = snap.Generation
	}

	if vs.recorder.Recording() {
		if isStopRecording(vs, ev) {
			err := e.stopRecording(view, vs)
			if err != nil {
				e.report(view, "q", err)
			}
			e.recordKey(false)
			return Result{Status: Handled, Mode: vs.machine.Current(), Err: err}
		}
		vs.recorder.Record(ev)
	}
	return e.dispatch(view, vs, ev)
}

// dispatch runs ev through the view's composer and executes the command it
// completes.
func (e *Engine) dispatch(view host.View, vs *viewState, ev key.Event) Result {
	before := vs.machine.Current()
	res := vs.composer.Feed(ev)

	var (
		status = Handled
		err    error
	)
	switch res.Status {
	case input.StatusPassthrough:
		status = PassThrough

	case input.StatusCancelled:
		e.adjust(view, res.Transition)

	case input.StatusComplete:
		cmd := res.Command
		if cmd.Kind == input.KindLiteral && cmd.From == mode.Insert {
			status = PassThrough
			break
		}
		start := time.Now()
		err = e.execute(view, vs, cmd, res.Transition)
		if e.metrics != nil {
			e.metrics.RecordCommand(commandName(cmd), time.Since(start), err != nil)
		}
		if err != nil {
			e.fail(view, vs, cmd, err)
		}
	}

	e.syncSelection(view, vs, before)
	e.recordKey(status == PassThrough)

	return Result{
		Status:  status,
		Mode:    vs.machine.Current(),
		Pending: vs.composer.PendingDisplay(),
		Err:     err,
	}
}

// fail reports a command error and returns the view to Normal. A move
// that found no target leaves the mode alone.
func (e *Engine) fail(view host.View, vs *viewState, cmd *input.Command, err error) {
	if cmd.Kind != input.KindMove {
		vs.machine.Fail()
		view.Cursor().SetPosition(motion.NormalPosition(view.Buffer(), view.Cursor().Position()))
	}

	e.report(view, cmd.Keys, err)
}

// report logs err and shows it through the view's Notifier. Commands that
// merely had nothing to act on are only logged.
func (e *Engine) report(view host.View, keys string, err error) {
	if errors.Is(err, motion.ErrNoTarget) || errors.Is(err, operator.ErrEmptyRegister) || errors.Is(err, macro.ErrEmptyRegister) {
		e.logger.Debug("command had no effect", "keys", keys, "error", err)
		return
	}

	e.logger.Warn("command failed", "view", view.ID(), "keys", keys, "error", err)
	if n, ok := view.(host.Notifier); ok {
		n.Notify(host.LevelError, err.Error())
	}
}

// switchBuffer rebinds vs to the buffer view now shows. A command or
// recording typed against the old buffer does not carry over, and the new
// buffer's session supplies the settings from here on.
func (e *Engine) switchBuffer(view host.View, vs *viewState, id uuid.UUID) {
	e.logger.Debug("view switched buffer", "view", view.ID(), "from", vs.bufferID, "to", id, "pending", vs.composer.PendingDisplay())

	vs.composer.Cancel()
	if vs.recorder.Recording() {
		vs.recorder.Cancel()
	}
	if vs.machine.Current().IsVisual() {
		vs.machine.Set(mode.Normal)
		view.Cursor().ClearSelection()
	}
	vs.resolver.ResetGoal()

	sess := e.session(id)
	e.mu.Lock()
	vs.bufferID = id
	vs.session = sess
	e.mu.Unlock()
}

// adjust applies the cursor rule for leaving Insert or Replace: one column
// left, clamped to the line start.
func (e *Engine) adjust(view host.View, tr mode.Transition) {
	if !tr.AdjustCursor {
		return
	}
	buf := view.Buffer()
	cur := host.Clamp(buf, view.Cursor().Position())
	if cur > buf.LineStart(host.LineOf(buf, cur)) {
		cur = host.PrevGrapheme(buf, cur)
	}
	view.Cursor().SetPosition(motion.NormalPosition(buf, cur))
}

func (e *Engine) recordKey(passthrough bool) {
	if e.metrics != nil {
		e.metrics.RecordKey(passthrough)
	}
}

// LoadBuffer scans the buffer shown by view for modelines and installs
// them in the buffer's session. Call it when a buffer is opened, and again
// after it is saved to pick up edited directives.
func (e *Engine) LoadBuffer(view host.View) modeline.Result {
	sess := e.session(view.BufferID())
	res := e.scanner.Apply(view.Buffer(), sess, language(view))
	if len(res.Values) > 0 {
		e.logger.Debug("applied modeline", "buffer", view.BufferID(), "settings", len(res.Values))
	}
	return res
}

// Session returns the configuration session of the buffer shown by view.
func (e *Engine) Session(view host.View) *config.Session {
	return e.session(view.BufferID())
}

// Focus marks view as the one receiving input. Compositions pending in
// any other view are discarded.
func (e *Engine) Focus(view host.View) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := view.ID()
	for other, vs := range e.views {
		if other != id && vs.composer.IsPending() {
			e.logger.Debug("discarding pending command on focus change", "view", other, "pending", vs.composer.PendingDisplay())
			vs.composer.Cancel()
		}
	}
	e.focused = id
}

// Focused returns the ID of the focused view.
func (e *Engine) Focused() uuid.UUID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.focused
}

// CloseView drops the state of view. The buffer's session is dropped with
// its last view.
func (e *Engine) CloseView(view host.View) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vs, ok := e.views[view.ID()]
	if !ok {
		return
	}
	delete(e.views, view.ID())
	if e.focused == view.ID() {
		e.focused = uuid.Nil
	}

	for _, other := range e.views {
		if other.bufferID == vs.bufferID {
			return
		}
	}
	delete(e.sessions, vs.bufferID)
}

// Mode returns the mode of view. A view that has not seen a key yet
// reports the mode it will start in.
func (e *Engine) Mode(view host.View) mode.Mode {
	e.mu.RLock()
	vs, ok := e.views[view.ID()]
	e.mu.RUnlock()
	if ok {
		return vs.machine.Current()
	}
	return initialMode(e.session(view.BufferID()))
}

// Pending returns the partially typed command of view.
func (e *Engine) Pending(view host.View) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if vs, ok := e.views[view.ID()]; ok {
		return vs.composer.PendingDisplay()
	}
	return ""
}

// Recording returns the register view is recording a macro into, or 0.
func (e *Engine) Recording(view host.View) rune {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if vs, ok := e.views[view.ID()]; ok {
		return vs.recorder.Register()
	}
	return 0
}

// OnModeChange registers cb for mode changes of view.
func (e *Engine) OnModeChange(view host.View, cb mode.ChangeCallback) {
	e.state(view).machine.OnChange(cb)
}

// session returns the session of a buffer, creating it on first use.
func (e *Engine) session(id uuid.UUID) *config.Session {
	e.mu.RLock()
	sess, ok := e.sessions[id]
	e.mu.RUnlock()
	if ok {
		return sess
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if sess, ok := e.sessions[id]; ok {
		return sess
	}
	sess = e.store.NewSession()
	e.sessions[id] = sess
	return sess
}

// state returns the state of view, creating it on first use.
func (e *Engine) state(view host.View) *viewState {
	id := view.ID()

	e.mu.RLock()
	vs, ok := e.views[id]
	e.mu.RUnlock()
	if ok {
		return vs
	}

	sess := e.session(view.BufferID())

	e.mu.Lock()
	defer e.mu.Unlock()
	if vs, ok := e.views[id]; ok {
		return vs
	}
	vs = newViewState(view.BufferID(), sess, e.store.Snapshot().Generation)
	e.views[id] = vs
	e.logger.Debug("created view state", "view", id, "buffer", view.BufferID(), "mode", vs.machine.Current().String())
	return vs
}

// language returns the filetype of the buffer shown by view, if the host
// reports one.
func language(view host.View) string {
	if lp, ok := view.(host.LanguageProvider); ok {
		return lp.Language()
	}
	if lp, ok := view.Buffer().(host.LanguageProvider); ok {
		return lp.Language()
	}
	return ""
}

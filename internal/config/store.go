package config

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/evil/internal/config/layer"
	"github.com/dshills/evil/internal/config/loader"
	"github.com/dshills/evil/internal/config/notify"
	"github.com/dshills/evil/internal/config/registry"
	"github.com/dshills/evil/internal/config/watcher"
)

// Snapshot is an immutable view of the process-wide configuration.
type Snapshot struct {
	// Generation increases every time the Evil gate changes value.
	Generation uint64

	// Evil is the editor.evil feature gate.
	Evil bool

	values  map[string]any
	sources map[string]string
}

// GetValue returns the effective value at path.
func (s *Snapshot) GetValue(path string) (any, bool) {
	return layer.GetByPath(s.values, path)
}

// Source returns the name of the layer that provides path, or "".
func (s *Snapshot) Source(path string) string {
	return s.sources[path]
}

// Store holds every configuration layer except modelines and publishes
// them as a Snapshot. Writers are serialized; readers never block.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]

	registry *registry.Registry
	layers   *layer.Manager
	notifier *notify.Notifier
	watcher  *watcher.Watcher
	fs       loader.FileSystem
	env      *loader.EnvLoader
	logger   *slog.Logger

	globalPath    string
	workspacePath string
	debounce      time.Duration
	closed        bool
}

// Option configures a Store.
type Option func(*Store)

// WithGlobalPath sets the global config file. An empty path disables it.
func WithGlobalPath(path string) Option {
	return func(s *Store) {
		s.globalPath = path
	}
}

// WithWorkspace sets the workspace root whose .evil/config.toml is read.
func WithWorkspace(root string) Option {
	return func(s *Store) {
		s.workspacePath = loader.WorkspacePath(root)
	}
}

// WithFileSystem sets the file system config files are read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithEnv sets the environment loader. Nil disables environment overrides.
func WithEnv(env *loader.EnvLoader) Option {
	return func(s *Store) {
		s.env = env
	}
}

// WithRegistry sets the setting registry.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Store) {
		s.registry = r
	}
}

// WithLogger sets the logger for reload diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebounce sets the quiet period before a changed file is reloaded.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		s.debounce = d
	}
}

// New creates a store holding only the registered defaults. Call Load to
// read files and the environment.
func New(opts ...Option) *Store {
	s := &Store{
		layers:     layer.NewManager(),
		notifier:   notify.New(),
		fs:         loader.DefaultFS(),
		env:        loader.NewEnvLoader(),
		logger:     slog.Default(),
		globalPath: loader.GlobalPath(),
		debounce:   100 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = registry.NewWithDefaults()
	}

	defaults := make(map[string]any)
	for path, val := range s.registry.Defaults() {
		layer.SetByPath(defaults, path, val)
	}
	builtin := layer.New(layer.SourceBuiltin, defaults)
	builtin.ReadOnly = true
	s.layers.AddLayer(builtin)
	s.layers.AddLayer(layer.New(layer.SourceRuntime, nil))

	s.current.Store(s.build(nil))
	return s
}

// Registry returns the setting registry.
func (s *Store) Registry() *registry.Registry {
	return s.registry
}

// Snapshot returns the current configuration. It never blocks.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Paths returns the config files the store reads, skipping disabled ones.
func (s *Store) Paths() []string {
	var paths []string
	for _, p := range []string{s.globalPath, s.workspacePath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Load reads the config files and the environment and publishes the
// result. Missing files are not an error. On error nothing is published.
func (s *Store) Load(_ context.Context) error {
	return s.reload("load")
}

// Reload rereads every source. On error the previous configuration stays
// in effect.
func (s *Store) Reload() error {
	return s.reload("reload")
}

func (s *Store) reload(source string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	layers, err := s.readSources()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	for _, src := range []layer.Source{layer.SourceUserGlobal, layer.SourceWorkspace, layer.SourceEnv} {
		s.layers.RemoveLayer(src.String())
	}
	for _, l := range layers {
		s.layers.AddLayer(l)
	}

	changes := s.publish(source)
	s.mu.Unlock()

	s.deliver(changes)
	if source != "load" {
		s.notifier.NotifyReload(source)
	}
	return nil
}

// readSources reads and validates every file and the environment.
func (s *Store) readSources() ([]*layer.Layer, error) {
	var layers []*layer.Layer

	files := []struct {
		path   string
		source layer.Source
	}{
		{s.globalPath, layer.SourceUserGlobal},
		{s.workspacePath, layer.SourceWorkspace},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		data, err := loader.NewTOMLLoaderWithFS(s.fs, f.path).Load()
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		if err := s.validate(f.path, data); err != nil {
			return nil, err
		}
		l := layer.New(f.source, data)
		l.Path = f.path
		layers = append(layers, l)
	}

	if s.env != nil {
		data, err := s.env.Load()
		if err != nil {
			return nil, err
		}
		if len(data) > 0 {
			if err := s.validate("environment", data); err != nil {
				return nil, err
			}
			layers = append(layers, layer.New(layer.SourceEnv, data))
		}
	}

	return layers, nil
}

// validate normalizes every registered setting in data in place. Unknown
// keys are kept and ignored.
func (s *Store) validate(source string, data map[string]any) error {
	for path, val := range layer.Flatten(data) {
		setting := s.registry.Get(path)
		if setting == nil {
			s.logger.Debug("unknown setting", "source", source, "path", path)
			continue
		}
		norm, err := setting.Normalize(val)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		layer.SetByPath(data, path, norm)
	}
	return nil
}

// Set sets a registered setting in the runtime layer.
func (s *Store) Set(path string, value any) error {
	norm, err := s.registry.Normalize(path, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err := s.layers.Set(layer.SourceRuntime.String(), path, norm); err != nil {
		s.mu.Unlock()
		return err
	}
	changes := s.publish(layer.SourceRuntime.String())
	s.mu.Unlock()

	s.deliver(changes)
	return nil
}

// Unset removes a runtime value so lower layers apply again.
func (s *Store) Unset(path string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err := s.layers.Delete(layer.SourceRuntime.String(), path); err != nil {
		s.mu.Unlock()
		return err
	}
	changes := s.publish(layer.SourceRuntime.String())
	s.mu.Unlock()

	s.deliver(changes)
	return nil
}

// SetEvil switches modal editing on or off for the whole process.
func (s *Store) SetEvil(enabled bool) error {
	return s.Set(EditorEvil, enabled)
}

// ToggleEvil flips the feature gate and returns the new state.
func (s *Store) ToggleEvil() (bool, error) {
	enabled := !s.Snapshot().Evil
	return enabled, s.SetEvil(enabled)
}

// Subscribe registers an observer for all configuration changes.
func (s *Store) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes under path.
func (s *Store) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return s.notifier.SubscribePath(path, observer)
}

// Watch starts reloading whenever a config file changes.
func (s *Store) Watch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.watcher != nil {
		return nil
	}

	w := watcher.New(
		watcher.WithDebounce(s.debounce),
		watcher.WithErrorHandler(func(err error) {
			s.logger.Warn("config watcher error", "error", err)
		}),
	)
	for _, path := range s.Paths() {
		if err := w.Watch(path); err != nil {
			return err
		}
	}
	w.OnChange(s.handleFileChange)
	if err := w.Start(); err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Close stops watching and drops all subscriptions.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		w.Stop()
	}
	s.notifier.Close()
}

func (s *Store) handleFileChange(event watcher.Event) {
	s.logger.Debug("config file changed", "path", event.Path, "op", event.Op.String())
	if err := s.reload(event.Path); err != nil {
		s.logger.Warn("config reload failed, keeping previous configuration", "path", event.Path, "error", err)
	}
}

// publish swaps in a snapshot of the current layers and returns the
// changes relative to the previous one. Callers hold s.mu.
func (s *Store) publish(source string) []notify.Change {
	prev := s.current.Load()
	next := s.build(prev)
	s.current.Store(next)

	deltas := layer.Diff(prev.values, next.values)
	changes := make([]notify.Change, 0, len(deltas))
	for _, d := range deltas {
		c := notify.Change{Path: d.Path, Type: notify.ChangeSet, Source: source}
		c.OldValue, _ = prev.GetValue(d.Path)
		if d.Kind == layer.Removed {
			c.Type = notify.ChangeDelete
		} else {
			c.NewValue, _ = next.GetValue(d.Path)
		}
		changes = append(changes, c)
	}
	return changes
}

func (s *Store) build(prev *Snapshot) *Snapshot {
	next := &Snapshot{
		values:  s.layers.Merge(),
		sources: make(map[string]string),
	}
	for _, l := range s.layers.Layers() {
		for path := range layer.Flatten(l.Data) {
			next.sources[path] = l.Name
		}
	}

	evil, err := registry.NewAccessor(s.registry, next).GetBool(EditorEvil)
	if err != nil {
		evil = true
	}
	next.Evil = evil

	if prev != nil {
		next.Generation = prev.Generation
		if prev.Evil != next.Evil {
			next.Generation++
		}
	}
	return next
}

func (s *Store) deliver(changes []notify.Change) {
	for _, c := range changes {
		s.notifier.Notify(c)
	}
}

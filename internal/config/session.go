package config

import (
	"github.com/dshills/evil/internal/config/layer"
	"github.com/dshills/evil/internal/config/registry"
)

// Session is the configuration of one buffer: the store's live snapshot
// with the buffer's modeline layer on top.
type Session struct {
	store    *Store
	modeline *layer.Manager
	accessor *registry.Accessor
}

// NewSession creates a session with an empty modeline layer.
func (s *Store) NewSession() *Session {
	m := layer.NewManager()
	m.AddLayer(layer.New(layer.SourceModeline, nil))

	sess := &Session{store: s, modeline: m}
	sess.accessor = registry.NewAccessor(s.registry, sess)
	return sess
}

// Store returns the store the session reads through to.
func (s *Session) Store() *Store {
	return s.store
}

// GetValue returns the effective value at path.
func (s *Session) GetValue(path string) (any, bool) {
	if val, ok := s.modeline.GetValue(path); ok {
		return val, true
	}
	return s.store.Snapshot().GetValue(path)
}

// Source returns the name of the layer that provides path.
func (s *Session) Source(path string) string {
	if name := s.modeline.WhichLayer(path); name != "" {
		return name
	}
	return s.store.Snapshot().Source(path)
}

// SetModeline replaces the modeline layer with values, keyed by setting
// path. Values that are unknown, protected or invalid are skipped; their
// errors are returned keyed by path.
func (s *Session) SetModeline(values map[string]any) map[string]error {
	data := make(map[string]any)
	var errs map[string]error
	for path, val := range values {
		norm, err := s.store.registry.NormalizeModeline(path, val)
		if err != nil {
			if errs == nil {
				errs = make(map[string]error)
			}
			errs[path] = err
			continue
		}
		layer.SetByPath(data, path, norm)
	}
	_ = s.modeline.UpdateLayer(layer.SourceModeline.String(), data)
	return errs
}

// ClearModeline removes every modeline value.
func (s *Session) ClearModeline() {
	_ = s.modeline.UpdateLayer(layer.SourceModeline.String(), nil)
}

// Modeline returns the modeline values keyed by setting path.
func (s *Session) Modeline() map[string]any {
	l := s.modeline.GetLayer(layer.SourceModeline.String())
	return layer.Flatten(l.Data)
}

// Get returns the normalized value of a registered setting.
func (s *Session) Get(path string) (any, error) {
	return s.accessor.Get(path)
}

// String returns a string setting.
func (s *Session) String(path string) (string, error) {
	return s.accessor.GetString(path)
}

// Int returns an integer setting.
func (s *Session) Int(path string) (int, error) {
	return s.accessor.GetInt(path)
}

// Bool returns a boolean setting.
func (s *Session) Bool(path string) (bool, error) {
	return s.accessor.GetBool(path)
}

// StringSlice returns a string list setting.
func (s *Session) StringSlice(path string) ([]string, error) {
	return s.accessor.GetStringSlice(path)
}

package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Errors returned by the registry.
var (
	// ErrSettingNotFound indicates the setting path is not registered.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrSettingAlreadyRegistered is returned when registering a duplicate setting.
	ErrSettingAlreadyRegistered = errors.New("setting already registered")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotModeline indicates a modeline tried to set a setting it may not override.
	ErrNotModeline = errors.New("setting cannot be set from a modeline")
)

// Setting paths registered by RegisterDefaults.
const (
	EditorEvil            = "editor.evil"
	EvilInitialMode       = "evil.initial-mode"
	EvilDwStopsAtWordEnd  = "evil.dw-stops-at-word-end"
	IndentUnit            = "indent.unit"
	IndentTabWidth        = "indent.tab-width"
	LineEnding            = "line-ending"
	Language              = "language"
	ModelineEnable        = "modeline.enable"
	ModelineLines         = "modeline.lines"
	ModelineDisabledLangs = "modeline.disabled-languages"
)

// Registry maintains all known settings definitions.
type Registry struct {
	mu       sync.RWMutex
	settings map[string]*Setting
}

// New creates an empty settings registry.
func New() *Registry {
	return &Registry{
		settings: make(map[string]*Setting),
	}
}

// NewWithDefaults creates a registry with the built-in settings.
func NewWithDefaults() *Registry {
	r := New()
	r.RegisterDefaults()
	return r
}

// Register adds a setting definition to the registry.
// Returns an error if a setting with the same path already exists or the
// default does not validate.
func (r *Registry) Register(setting Setting) error {
	if err := setting.Validate(setting.Default); err != nil {
		return fmt.Errorf("invalid default: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settings[setting.Path]; exists {
		return fmt.Errorf("%w: %s", ErrSettingAlreadyRegistered, setting.Path)
	}
	r.settings[setting.Path] = &setting
	return nil
}

// MustRegister registers a setting and panics on error.
// Useful for registering built-in settings at init time.
func (r *Registry) MustRegister(setting Setting) {
	if err := r.Register(setting); err != nil {
		panic(err)
	}
}

// Get returns the setting definition for the given path.
// Returns nil if the setting is not registered.
func (r *Registry) Get(path string) *Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings[path]
}

// Has checks if a setting is registered.
func (r *Registry) Has(path string) bool {
	return r.Get(path) != nil
}

// All returns all registered settings sorted by path.
func (r *Registry) All() []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := slices.Sorted(maps.Keys(r.settings))
	result := make([]*Setting, 0, len(paths))
	for _, p := range paths {
		result = append(result, r.settings[p])
	}
	return result
}

// Default returns the default value for a setting, or nil.
func (r *Registry) Default(path string) any {
	if s := r.Get(path); s != nil {
		return s.Default
	}
	return nil
}

// Defaults returns all default values keyed by path.
func (r *Registry) Defaults() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]any, len(r.settings))
	for path, s := range r.settings {
		result[path] = s.Default
	}
	return result
}

// Normalize converts and validates a value for a registered setting.
func (r *Registry) Normalize(path string, value any) (any, error) {
	s := r.Get(path)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return s.Normalize(value)
}

// NormalizeModeline is Normalize for values read from a modeline. It also
// rejects settings not flagged as modeline-overridable.
func (r *Registry) NormalizeModeline(path string, value any) (any, error) {
	s := r.Get(path)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	if !s.Modeline {
		return nil, fmt.Errorf("%w: %s", ErrNotModeline, path)
	}
	return s.Normalize(value)
}

// RegisterDefaults registers all built-in settings.
func (r *Registry) RegisterDefaults() {
	r.MustRegister(Setting{
		Path:        EditorEvil,
		Type:        TypeBool,
		Default:     true,
		Description: "Enable modal editing",
	})
	r.MustRegister(Setting{
		Path:        EvilInitialMode,
		Type:        TypeString,
		Default:     "normal",
		Description: "Mode a view starts in",
		Enum:        []string{"normal", "insert"},
		Modeline:    true,
	})
	r.MustRegister(Setting{
		Path:        EvilDwStopsAtWordEnd,
		Type:        TypeBool,
		Default:     true,
		Description: "dw stops at the end of the word under the cursor, like cw",
		Modeline:    true,
	})
	r.MustRegister(Setting{
		Path:        IndentUnit,
		Type:        TypeString,
		Default:     "\t",
		Description: "One level of indentation for > and <",
		Modeline:    true,
	})
	r.MustRegister(Setting{
		Path:        IndentTabWidth,
		Type:        TypeInt,
		Default:     8,
		Description: "Columns a tab occupies",
		Minimum:     MinValue(1),
		Maximum:     MaxValue(32),
		Modeline:    true,
	})
	r.MustRegister(Setting{
		Path:        LineEnding,
		Type:        TypeString,
		Default:     "auto",
		Description: "Line ending for new lines; auto detects from the buffer",
		Enum:        []string{"auto", "lf", "crlf", "cr"},
		Modeline:    true,
	})
	r.MustRegister(Setting{
		Path:        Language,
		Type:        TypeString,
		Default:     "",
		Description: "Filetype override",
		Modeline:    true,
	})
	r.MustRegister(Setting{
		Path:        ModelineEnable,
		Type:        TypeBool,
		Default:     true,
		Description: "Read settings from modelines",
	})
	r.MustRegister(Setting{
		Path:        ModelineLines,
		Type:        TypeInt,
		Default:     5,
		Description: "Lines scanned for modelines at the start and end of a buffer",
		Minimum:     MinValue(0),
		Maximum:     MaxValue(100),
	})
	r.MustRegister(Setting{
		Path:        ModelineDisabledLangs,
		Type:        TypeStringList,
		Default:     []string{},
		Description: "Languages whose modelines are ignored",
	})
}

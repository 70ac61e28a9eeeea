package registry

import "fmt"

// ValueStore is the interface for accessing raw configuration values.
type ValueStore interface {
	// GetValue returns the value at the given path.
	GetValue(path string) (any, bool)
}

// Accessor provides type-safe access to configuration values. Unset
// values fall back to the registered default.
type Accessor struct {
	registry *Registry
	values   ValueStore
}

// NewAccessor creates a new type-safe accessor.
func NewAccessor(registry *Registry, values ValueStore) *Accessor {
	return &Accessor{
		registry: registry,
		values:   values,
	}
}

// Get returns the normalized value at the given path.
// Returns ErrSettingNotFound if the setting is not registered.
func (a *Accessor) Get(path string) (any, error) {
	setting := a.registry.Get(path)
	if setting == nil {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}

	val, ok := a.values.GetValue(path)
	if !ok {
		return setting.Default, nil
	}
	return setting.Normalize(val)
}

// GetString returns a string value at the given path.
func (a *Accessor) GetString(path string) (string, error) {
	return get[string](a, path, "string")
}

// GetInt returns an integer value at the given path.
func (a *Accessor) GetInt(path string) (int, error) {
	return get[int](a, path, "integer")
}

// GetBool returns a boolean value at the given path.
func (a *Accessor) GetBool(path string) (bool, error) {
	return get[bool](a, path, "boolean")
}

// GetStringSlice returns a string slice value at the given path.
func (a *Accessor) GetStringSlice(path string) ([]string, error) {
	return get[[]string](a, path, "string array")
}

func get[T any](a *Accessor, path, expected string) (T, error) {
	var zero T
	val, err := a.Get(path)
	if err != nil {
		return zero, err
	}
	v, ok := val.(T)
	if !ok {
		return zero, &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", val)}
	}
	return v, nil
}

// TypeError is returned when a value has the wrong type for its setting.
type TypeError struct {
	// Path is the setting path.
	Path string
	// Expected is the expected type name.
	Expected string
	// Actual is the actual type name.
	Actual string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// Package registry holds the definitions of every known setting: its type,
// default, allowed values and whether a modeline may override it.
package registry

import (
	"fmt"
	"slices"
)

// Setting defines a configuration setting with its metadata.
type Setting struct {
	// Path is the dot-separated path (e.g., "indent.unit").
	Path string

	// Type is the setting's data type.
	Type SettingType

	// Default is the default value.
	Default any

	// Description is human-readable documentation.
	Description string

	// Enum lists allowed values for string settings.
	Enum []string

	// Minimum for integer types (nil means no minimum).
	Minimum *int

	// Maximum for integer types (nil means no maximum).
	Maximum *int

	// Modeline marks settings a buffer's modelines may override.
	Modeline bool
}

// Validate checks if a value is valid for this setting. The value must
// already be normalized.
func (s *Setting) Validate(value any) error {
	if err := s.validateType(value); err != nil {
		return err
	}

	if len(s.Enum) > 0 {
		if str, _ := value.(string); !slices.Contains(s.Enum, str) {
			return fmt.Errorf("%s: value must be one of %v, got %q", s.Path, s.Enum, str)
		}
	}

	if n, ok := value.(int); ok {
		if s.Minimum != nil && n < *s.Minimum {
			return fmt.Errorf("%s: value %d is less than minimum %d", s.Path, n, *s.Minimum)
		}
		if s.Maximum != nil && n > *s.Maximum {
			return fmt.Errorf("%s: value %d is greater than maximum %d", s.Path, n, *s.Maximum)
		}
	}
	return nil
}

// validateType checks if the value matches the expected type.
func (s *Setting) validateType(value any) error {
	ok := false
	switch s.Type {
	case TypeString:
		_, ok = value.(string)
	case TypeInt:
		_, ok = value.(int)
	case TypeBool:
		_, ok = value.(bool)
	case TypeStringList:
		_, ok = value.([]string)
	}
	if !ok {
		return &TypeError{Path: s.Path, Expected: s.Type.String(), Actual: fmt.Sprintf("%T", value)}
	}
	return nil
}

// Normalize converts a decoded value (TOML integers are int64, arrays are
// []any) to the setting's Go type and validates it.
func (s *Setting) Normalize(value any) (any, error) {
	switch s.Type {
	case TypeInt:
		switch v := value.(type) {
		case int64:
			value = int(v)
		case int32:
			value = int(v)
		case float64:
			if v == float64(int(v)) {
				value = int(v)
			}
		}
	case TypeStringList:
		if items, ok := value.([]any); ok {
			list := make([]string, 0, len(items))
			for _, item := range items {
				str, ok := item.(string)
				if !ok {
					return nil, &TypeError{Path: s.Path, Expected: s.Type.String(), Actual: fmt.Sprintf("array with %T element", item)}
				}
				list = append(list, str)
			}
			value = list
		}
	}

	if err := s.Validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

// SettingType represents the data type of a setting.
type SettingType uint8

const (
	// TypeString represents a string value.
	TypeString SettingType = iota
	// TypeInt represents an integer value.
	TypeInt
	// TypeBool represents a boolean value.
	TypeBool
	// TypeStringList represents a list of strings.
	TypeStringList
)

// String returns the string representation of the type.
func (t SettingType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeBool:
		return "boolean"
	case TypeStringList:
		return "string array"
	default:
		return "unknown"
	}
}

// MinValue creates a pointer for use as Minimum.
func MinValue(v int) *int {
	return &v
}

// MaxValue creates a pointer for use as Maximum.
func MaxValue(v int) *int {
	return &v
}

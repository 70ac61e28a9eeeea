package config

import (
	"errors"

	"github.com/dshills/evil/internal/config/loader"
	"github.com/dshills/evil/internal/config/registry"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path isn't registered.
	ErrSettingNotFound = registry.ErrSettingNotFound

	// ErrTypeMismatch indicates the value type doesn't match the setting.
	ErrTypeMismatch = registry.ErrTypeMismatch

	// ErrNotModeline indicates a modeline tried to set a protected setting.
	ErrNotModeline = registry.ErrNotModeline

	// ErrClosed indicates the store was closed.
	ErrClosed = errors.New("config store closed")
)

// TypeError is returned when a setting has a value of the wrong type.
type TypeError = registry.TypeError

// ParseError is returned when a configuration file is not valid TOML.
type ParseError = loader.ParseError

// Setting paths.
const (
	EditorEvil            = registry.EditorEvil
	EvilInitialMode       = registry.EvilInitialMode
	EvilDwStopsAtWordEnd  = registry.EvilDwStopsAtWordEnd
	IndentUnit            = registry.IndentUnit
	IndentTabWidth        = registry.IndentTabWidth
	LineEnding            = registry.LineEnding
	Language              = registry.Language
	ModelineEnable        = registry.ModelineEnable
	ModelineLines         = registry.ModelineLines
	ModelineDisabledLangs = registry.ModelineDisabledLangs
)

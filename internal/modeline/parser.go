package modeline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/evil/internal/config"
	"github.com/dshills/evil/internal/host"
)

var (
	vimPattern   = regexp.MustCompile(`^(\S*\s+)?(vi|[vV]im[<=>]?\d*|ex):\s*(set?\s+)?`)
	helixPattern = regexp.MustCompile(`^(\S*\s+)?helix:`)
	evilPattern  = regexp.MustCompile(`^(\S*\s+)?evil:`)
)

var (
	errMissingValue = errors.New("missing value")
	errBadNumber    = errors.New("not a positive number")
	errBadFormat    = errors.New("unknown file format")
	errBadIndent    = errors.New("indent unit must be a tab or 1-16 spaces")
)

// helixConfig is the inline TOML of a helix directive.
type helixConfig struct {
	Language   *string `toml:"language"`
	LineEnding *string `toml:"line-ending"`
	Indent     *struct {
		Unit string `toml:"unit"`
	} `toml:"indent"`
}

type parser struct {
	values map[string]any
	origin map[string]int
	diags  []Diagnostic

	// tabs is set once noexpandtab or a tab unit was seen; later
	// shiftwidth options no longer switch to spaces.
	tabs bool
}

func newParser() *parser {
	return &parser{
		values: make(map[string]any),
		origin: make(map[string]int),
	}
}

func (p *parser) set(line int, path string, value any) {
	p.values[path] = value
	p.origin[path] = line
}

func (p *parser) diag(line int, key, value string, err error) {
	p.diags = append(p.diags, Diagnostic{Line: line, Key: key, Value: value, Err: err})
}

func (p *parser) parseLine(line int, text string) {
	if loc := vimPattern.FindStringIndex(text); loc != nil {
		p.parseVim(line, text[loc[1]:])
	}
	if loc := helixPattern.FindStringIndex(text); loc != nil {
		p.parseHelix(line, text[loc[1]:])
	}
	if loc := evilPattern.FindStringIndex(text); loc != nil {
		p.parseEvil(line, text[loc[1]:])
	}
}

// parseVim handles vim options. Only the options that map to settings are
// read; everything else is ignored.
func (p *parser) parseVim(line int, opts string) {
	for _, opt := range splitOptions(opts) {
		key, val, hasVal := strings.Cut(opt, "=")
		switch key {
		case "ft", "filetype":
			if !hasVal || val == "" {
				p.diag(line, key, val, errMissingValue)
				continue
			}
			p.set(line, config.Language, val)
		case "sw", "shiftwidth":
			n, err := positive(val)
			if err != nil {
				p.diag(line, key, val, err)
				continue
			}
			if !p.tabs {
				p.set(line, config.IndentUnit, strings.Repeat(" ", n))
			}
		case "ts", "tabstop":
			n, err := positive(val)
			if err != nil {
				p.diag(line, key, val, err)
				continue
			}
			p.set(line, config.IndentTabWidth, n)
		case "noet", "noexpandtab":
			p.tabs = true
			p.set(line, config.IndentUnit, "\t")
		case "ff", "fileformat":
			le, err := host.ParseLineEnding(val)
			if err != nil || !hasVal {
				p.diag(line, key, val, errBadFormat)
				continue
			}
			p.set(line, config.LineEnding, le.String())
		}
	}
}

func (p *parser) parseHelix(line int, text string) {
	var cfg helixConfig
	if err := toml.Unmarshal([]byte(text), &cfg); err != nil {
		p.diag(line, "helix", strings.TrimSpace(text), err)
		return
	}

	if cfg.Language != nil {
		p.set(line, config.Language, *cfg.Language)
	}
	if cfg.Indent != nil {
		unit := cfg.Indent.Unit
		if !validUnit(unit) {
			p.diag(line, "indent.unit", unit, errBadIndent)
		} else {
			p.tabs = unit == "\t"
			p.set(line, config.IndentUnit, unit)
		}
	}
	if cfg.LineEnding != nil {
		le, err := parseLineEnding(*cfg.LineEnding)
		if err != nil {
			p.diag(line, "line-ending", *cfg.LineEnding, err)
		} else {
			p.set(line, config.LineEnding, le.String())
		}
	}
}

// parseEvil handles key=value pairs. Bare keys live in the evil namespace;
// dotted keys name a setting path directly.
func (p *parser) parseEvil(line int, opts string) {
	for _, opt := range splitOptions(opts) {
		key, val, ok := strings.Cut(opt, "=")
		if !ok {
			continue
		}
		if key == "" {
			p.diag(line, opt, val, errMissingValue)
			continue
		}
		path := key
		if !strings.Contains(key, ".") {
			path = "evil." + key
		}
		p.set(line, path, parseValue(val))
	}
}

// splitOptions splits on whitespace and on colons not preceded by a
// backslash, dropping empty fields.
func splitOptions(s string) []string {
	var (
		opts      []string
		cur       strings.Builder
		backslash bool
	)
	flush := func() {
		if cur.Len() > 0 {
			opts = append(opts, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == ':' && !backslash:
			flush()
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
		backslash = r == '\\'
	}
	flush()
	return opts
}

func positive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errBadNumber
	}
	return n, nil
}

func validUnit(unit string) bool {
	if unit == "\t" {
		return true
	}
	return len(unit) > 0 && len(unit) <= 16 && strings.Trim(unit, " ") == ""
}

// parseLineEnding accepts the line ending characters themselves as well as
// their names.
func parseLineEnding(s string) (host.LineEnding, error) {
	switch s {
	case "\n":
		return host.LineEndingLF, nil
	case "\r\n":
		return host.LineEndingCRLF, nil
	case "\r":
		return host.LineEndingCR, nil
	}
	le, err := host.ParseLineEnding(strings.ToLower(s))
	if err != nil {
		return le, fmt.Errorf("could not interpret line ending %q", s)
	}
	return le, nil
}

func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

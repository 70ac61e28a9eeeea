// Package modeline reads per-buffer settings from directives embedded near
// the top or bottom of a buffer.
//
// Three directive forms are recognized:
//
//	# vim: set ft=go sw=4 noet:
//	# helix: indent = { unit = "  " }, line-ending = "\r\n"
//	# evil: initial-mode=insert dw-stops-at-word-end=false
//
// Unknown options are ignored. Bad values are skipped and reported as
// Diagnostics; scanning never fails.
package modeline

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/dshills/evil/internal/config"
	"github.com/dshills/evil/internal/host"
)

// MaxLineLength is the longest line, in bytes, that is checked for a
// directive.
const MaxLineLength = 256

// DefaultLines is the number of lines checked at each end of a buffer.
const DefaultLines = 5

// Diagnostic reports a directive value that was not applied.
type Diagnostic struct {
	// Line is the zero-based line of the directive.
	Line int

	// Key is the option or setting path.
	Key string

	// Value is the raw value text.
	Value string

	Err error
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("modeline line %d: %s=%q: %v", d.Line+1, d.Key, d.Value, d.Err)
}

// Unwrap returns the underlying error.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Result is the outcome of scanning one buffer.
type Result struct {
	// Values are the settings found, keyed by setting path.
	Values map[string]any

	// Diagnostics lists the values that were skipped.
	Diagnostics []Diagnostic

	// Skipped is set when modelines are disabled for the buffer.
	Skipped bool

	origin map[string]int
}

// Scanner scans buffers for modelines.
type Scanner struct {
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan checks the first n lines of buf top down, then the last n lines
// bottom up, and returns the settings found. A directive overrides those
// checked before it, so in the tail window the topmost directive wins.
func (s *Scanner) Scan(buf host.Reader, n int) Result {
	p := newParser()

	for _, line := range scanLines(buf.LineCount(), n) {
		start, end := buf.LineStart(line), buf.LineEnd(line)
		if end-start > MaxLineLength {
			continue
		}
		text, err := buf.TextRange(start, end)
		if err != nil {
			continue
		}
		p.parseLine(line, text)
	}

	for _, d := range p.diags {
		s.logger.Warn("ignoring modeline value", "line", d.Line+1, "key", d.Key, "value", d.Value, "error", d.Err)
	}
	return Result{Values: p.values, Diagnostics: p.diags, origin: p.origin}
}

// Apply scans buf and installs the result as the modeline layer of sess,
// replacing any earlier one. Language is the buffer's filetype as the host
// knows it; if empty the session's language setting is used. Nothing is
// scanned when modeline.enable is off or the language is listed in
// modeline.disabled-languages.
func (s *Scanner) Apply(buf host.Reader, sess *config.Session, language string) Result {
	sess.ClearModeline()

	if enabled, err := sess.Bool(config.ModelineEnable); err == nil && !enabled {
		return Result{Skipped: true}
	}
	if language == "" {
		language, _ = sess.String(config.Language)
	}
	if language != "" {
		disabled, _ := sess.StringSlice(config.ModelineDisabledLangs)
		if slices.Contains(disabled, language) {
			s.logger.Debug("modelines disabled for language", "language", language)
			return Result{Skipped: true}
		}
	}

	lines, err := sess.Int(config.ModelineLines)
	if err != nil {
		lines = DefaultLines
	}

	res := s.Scan(buf, lines)
	errs := sess.SetModeline(res.Values)
	for _, path := range slices.Sorted(maps.Keys(errs)) {
		err := errs[path]
		val := res.Values[path]
		delete(res.Values, path)
		if errors.Is(err, config.ErrSettingNotFound) {
			s.logger.Debug("ignoring unknown modeline setting", "key", path)
			continue
		}
		d := Diagnostic{Line: res.origin[path], Key: path, Value: fmt.Sprint(val), Err: err}
		res.Diagnostics = append(res.Diagnostics, d)
		s.logger.Warn("ignoring modeline value", "key", path, "value", d.Value, "error", err)
	}
	return res
}

// ParseLine parses a single line and returns the settings it sets.
func ParseLine(line string) (map[string]any, []Diagnostic) {
	p := newParser()
	p.parseLine(0, line)
	return p.values, p.diags
}

// scanLines returns the line numbers to check in a buffer with count lines:
// the head window ascending, then the tail window descending. A line in
// both windows is checked once, in the tail.
func scanLines(count, n int) []int {
	if n <= 0 {
		return nil
	}
	tail := max(count-n, 0)
	var lines []int
	for i := 0; i < n && i < tail; i++ {
		lines = append(lines, i)
	}
	for i := count - 1; i >= tail; i-- {
		lines = append(lines, i)
	}
	return lines
}

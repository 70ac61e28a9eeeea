// Package main is the entry point for the evil driver: it loads a file
// into an in-memory editor, runs keys through the modal engine and prints
// the result, or edits the file interactively in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/evil/internal/config"
	"github.com/dshills/evil/internal/config/loader"
	"github.com/dshills/evil/internal/evil"
	"github.com/dshills/evil/internal/host/memhost"
	"github.com/dshills/evil/internal/input/key"
	"github.com/dshills/evil/internal/register"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath    string
	workspacePath string
	keys          string
	logLevel      string
	logFile       string
	tui           bool
	stats         bool
	file          string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, done := parseFlags(os.Args[1:])
	if done {
		return code
	}

	logger, closeLog, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	storeOpts := []config.Option{config.WithLogger(logger), config.WithWorkspace(opts.workspacePath)}
	if opts.configPath != "" {
		storeOpts = append(storeOpts, config.WithGlobalPath(opts.configPath))
	}
	store := config.New(storeOpts...)
	defer store.Close()

	if err := store.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}

	text := ""
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		text = string(data)
	}

	buf := memhost.NewBuffer(text, memhost.WithLanguage(languageOf(opts.file)))
	view := memhost.NewView(buf, register.NewStore(register.WithLogger(logger)))

	engOpts := []evil.Option{evil.WithLogger(logger)}
	if opts.stats {
		engOpts = append(engOpts, evil.WithMetrics(evil.NewMetrics()))
	}
	eng := evil.New(store, engOpts...)
	defer eng.Close()

	res := eng.LoadBuffer(view)
	if !opts.tui {
		for _, d := range res.Diagnostics {
			fmt.Fprintf(os.Stderr, "warning: %v\n", d)
		}
	}
	eng.Focus(view)

	if opts.tui {
		if err := runTUI(eng, store, view, opts.file, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	return runBatch(eng, view, opts)
}

// runBatch replays the -keys notation and prints the buffer.
func runBatch(eng *evil.Engine, view *memhost.View, opts options) int {
	var events []key.Event
	if opts.keys != "" {
		var err error
		if events, err = key.ParseNotation(opts.keys); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -keys: %v\n", err)
			return 2
		}
	}

	for _, ev := range events {
		if eng.HandleKey(view, ev).Status == evil.PassThrough {
			view.HandleNative(ev)
		}
	}

	fmt.Print(view.Text())
	if text := view.Text(); text != "" && !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}

	p := view.Point()
	fmt.Fprintf(os.Stderr, "%s %d:%d", eng.Mode(view).DisplayName(), p.Line+1, p.Column+1)
	if pending := eng.Pending(view); pending != "" {
		fmt.Fprintf(os.Stderr, " %s", pending)
	}
	fmt.Fprintln(os.Stderr)
	for _, msg := range view.Messages() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", msg.Level, msg.Text)
	}

	if m := eng.Metrics(); m != nil {
		printStats(os.Stderr, m)
	}
	return 0
}

func printStats(w io.Writer, m *evil.Metrics) {
	snap := m.Snapshot()
	fmt.Fprintf(w, "keys=%d passthrough=%d commands=%d errors=%d avg=%s\n",
		snap.Keys, snap.Passthrough, snap.Commands, snap.Errors, snap.AverageDuration)
	for _, cm := range m.TopCommands(10) {
		fmt.Fprintf(w, "  %-24s %6d  avg=%s  errors=%.0f%%\n", cm.Name, cm.Count, cm.Average(), cm.ErrorRate())
	}
}

// parseFlags parses args. done is set when the program should exit with
// code right away.
func parseFlags(args []string) (opts options, code int, done bool) {
	fs := flag.NewFlagSet("evil", flag.ContinueOnError)
	var showVersion bool

	fs.StringVar(&opts.configPath, "config", "", "Path to the global configuration file (default "+loader.GlobalFile+" in the user config dir)")
	fs.StringVar(&opts.configPath, "c", "", "Path to the global configuration file (shorthand)")
	fs.StringVar(&opts.workspacePath, "workspace", "", "Workspace directory holding "+loader.WorkspaceFile)
	fs.StringVar(&opts.workspacePath, "w", "", "Workspace directory (shorthand)")
	fs.StringVar(&opts.keys, "keys", "", "Keys to replay, in Vim notation (e.g. \"2dd<Esc>\")")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	fs.BoolVar(&opts.tui, "tui", false, "Edit the file interactively in the terminal")
	fs.BoolVar(&opts.stats, "stats", false, "Print command statistics on exit")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "evil - modal editing engine driver\n\n")
		fmt.Fprintf(out, "Usage: evil [options] [file]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  evil -keys 'dwjp' notes.txt     Replay keys and print the buffer\n")
		fmt.Fprintf(out, "  evil -tui main.go               Edit interactively (Ctrl-Q quits, Ctrl-T toggles modal editing)\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Printf("evil %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		return opts, 2, true
	}

	if fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		return opts, 2, true
	}
	opts.file = fs.Arg(0)

	if opts.workspacePath == "" && opts.file != "" {
		if abs, err := filepath.Abs(opts.file); err == nil {
			opts.workspacePath = filepath.Dir(abs)
		}
	}
	return opts, 0, false
}

// newLogger builds the process logger. The terminal UI owns the screen, so
// it logs only to a file.
func newLogger(opts options) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case opts.tui:
		w = io.Discard
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// languageOf guesses the filetype from the file extension.
func languageOf(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch ext {
	case "":
		if filepath.Base(path) == "Makefile" {
			return "make"
		}
		return ""
	case "md":
		return "markdown"
	case "py":
		return "python"
	case "rs":
		return "rust"
	case "js":
		return "javascript"
	case "ts":
		return "typescript"
	case "sh", "bash":
		return "bash"
	case "yml":
		return "yaml"
	default:
		return ext
	}
}

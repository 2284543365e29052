// Package logging builds the zerolog logger shared by the CLI and the
// libraries it drives.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Environment overrides, applied on top of Options.
const (
	EnvLevel   = "CODECTL_LOG_LEVEL"
	EnvNoColor = "CODECTL_LOG_NOCOLOR"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name; empty means "info".
	Level string

	// ForceLevel, when set, wins over both Level and CODECTL_LOG_LEVEL.
	// Command-line flags such as -q and -v set it.
	ForceLevel string

	// NoColor disables ANSI colors in console output. Colors are also off
	// when Out is not a terminal.
	NoColor bool

	// JSON emits raw JSON records instead of console text.
	JSON bool

	// Out receives log records; nil means stderr.
	Out io.Writer
}

// New builds a console logger. CODECTL_LOG_LEVEL and CODECTL_LOG_NOCOLOR,
// when set, take precedence over opts, except that ForceLevel beats the
// environment. An unparsable level falls back to info.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := opts.Level
	if v, ok := os.LookupEnv(EnvLevel); ok && strings.TrimSpace(v) != "" {
		level = v
	}
	if strings.TrimSpace(opts.ForceLevel) != "" {
		level = opts.ForceLevel
	}
	noColor := opts.NoColor || !isTerminal(out)
	if v, ok := os.LookupEnv(EnvNoColor); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			noColor = b
		}
	}

	var w io.Writer = out
	if !opts.JSON {
		w = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColor,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

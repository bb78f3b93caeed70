// Package logging configures the process-wide slog logger. Diagnostics
// always go to stderr so rendered LaTeX on stdout stays clean.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the log handler.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat maps a --log-format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid log format %q (expected text or json)", s)
	}
}

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

func setup(debug bool, w io.Writer, f Format) {
	if w == nil {
		w = os.Stderr
	}

	// Without --debug only warnings surface; a successful render is silent.
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch f {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// Setup configures the global slog logger with text output.
// If debug is true, sets level to Debug; otherwise Warn.
// Output goes to the provided writer (defaults to os.Stderr if nil).
func Setup(debug bool, w io.Writer) {
	setup(debug, w, FormatText)
}

// SetupJSON is Setup with JSON output.
func SetupJSON(debug bool, w io.Writer) {
	setup(debug, w, FormatJSON)
}

// SetupFormat configures the logger from a --log-format value.
func SetupFormat(format string, debug bool, w io.Writer) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	setup(debug, w, f)
	return nil
}

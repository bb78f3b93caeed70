package cmd

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/salmonumbrella/tabtex/internal/iocontext"
	"github.com/salmonumbrella/tabtex/internal/output"
)

func stdinFromContext(ctx context.Context) io.Reader {
	return iocontext.StdinOrDefault(ctx, os.Stdin)
}

func stdoutFromContext(ctx context.Context) io.Writer {
	return iocontext.StdoutOrDefault(ctx, os.Stdout)
}

func stderrFromContext(ctx context.Context) io.Writer {
	return iocontext.StderrOrDefault(ctx, os.Stderr)
}

func printerForContext(ctx context.Context) *output.Printer {
	return output.NewPrinter(stdoutFromContext(ctx), output.FormatFromContext(ctx))
}

type fder interface {
	Fd() uintptr
}

// isTerminal reports whether v is an *os.File (or similar) attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

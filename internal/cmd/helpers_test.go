package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salmonumbrella/tabtex/internal/config"
)

const scoresCSV = "name,score\nAlice,91.256\nBob,88.0\n"

type runResult struct {
	stdout string
	stderr string
	err    error
}

// isolateConfig points the config at a fresh temp file and returns its path.
func isolateConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, path)
	t.Setenv("NO_COLOR", "1")
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var stdout, stderr bytes.Buffer
	app := &App{
		Stdin:     strings.NewReader(stdin),
		Stdout:    &stdout,
		Stderr:    &stderr,
		Version:   "1.2.3",
		Commit:    "abc123",
		BuildTime: "2026-01-01",
	}
	err := app.Execute(context.Background(), args)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

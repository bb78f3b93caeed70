package cmdutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadInputSource reads input from a file path, or from stdin when path is "-".
// Content is returned verbatim; templates depend on their leading and
// trailing whitespace.
func ReadInputSource(path string, stdin io.Reader) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input file path is required")
	}
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return string(data), nil
}

// SplitList flattens repeated and comma separated flag values, trimming
// blanks. A nil result means the flag was not given.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

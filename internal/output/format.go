package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is human-readable output (default).
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON format.
	FormatNDJSON Format = "ndjson"
	// FormatTable is tabular format for lists.
	FormatTable Format = "table"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON, "jsonl":
		return FormatNDJSON, nil
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|ndjson|jsonl|table|yaml)")
	}
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a new Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// Print applies the context's --jsonpath and --query filters, in that
// order, then writes data in the configured format.
func (p *Printer) Print(ctx context.Context, data interface{}) error {
	if data == nil {
		return nil
	}

	filtered := false
	if path := JSONPathFromContext(ctx); path != "" {
		v, err := applyJSONPath(data, path)
		if err != nil {
			return err
		}
		data, filtered = v, true
	}
	if query := QueryFromContext(ctx); query != "" {
		results, err := runQuery(query, data)
		if err != nil {
			return err
		}
		switch len(results) {
		case 0:
			return nil
		case 1:
			data = results[0]
		default:
			data = results
		}
		filtered = true
	}

	if tabler, ok := data.(Tabler); ok && !filtered && (p.format == FormatText || p.format == FormatTable) {
		return writeTable(p.w, tabler.OutputTable())
	}

	normalized, err := normalizeToInterface(data)
	if err != nil {
		return err
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(normalized)
	case FormatNDJSON:
		return p.printNDJSON(normalized)
	case FormatYAML:
		return p.printYAML(normalized)
	case FormatTable:
		return p.printTable(normalized)
	case FormatText:
		return p.printText(normalized)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *Printer) printJSON(data interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printNDJSON writes one line per element of a list, or a single line.
func (p *Printer) printNDJSON(data interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)

	if items, ok := data.([]interface{}); ok {
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.Encode(data)
}

func (p *Printer) printYAML(data interface{}) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

func (p *Printer) printTable(data interface{}) error {
	if t, ok := tableFromList(data); ok {
		return writeTable(p.w, t)
	}
	return clierrors.NewUserError("table format requires a list of objects",
		"Use --output json or narrow the result with --query '.rows'")
}

// printText renders lists of objects as tables, objects as sorted
// key: value lines, and scalars as-is.
func (p *Printer) printText(data interface{}) error {
	switch v := data.(type) {
	case map[string]interface{}:
		keys := sortedKeys(v)
		for _, k := range keys {
			if _, err := fmt.Fprintf(p.w, "%s: %s\n", k, formatScalar(v[k])); err != nil {
				return err
			}
		}
		return nil
	case []interface{}:
		if t, ok := tableFromList(v); ok {
			return writeTable(p.w, t)
		}
		for _, item := range v {
			if _, err := fmt.Fprintln(p.w, formatScalar(item)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(p.w, formatScalar(v))
		return err
	}
}

// tableFromList builds a table from a non-empty list of objects, using the
// union of their keys as headers.
func tableFromList(data interface{}) (Table, bool) {
	items, ok := data.([]interface{})
	if !ok || len(items) == 0 {
		return Table{}, false
	}

	seen := make(map[string]bool)
	var headers []string
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return Table{}, false
		}
		for _, k := range sortedKeys(m) {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		m := item.(map[string]interface{})
		row := make([]string, len(headers))
		for j, h := range headers {
			if val, ok := m[h]; ok {
				row[j] = formatScalar(val)
			}
		}
		rows[i] = row
	}
	return Table{Headers: headers, Rows: rows}, true
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatScalar prints strings bare, null as empty, and nested values as
// compact JSON.
func formatScalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func normalizeToInterface(data interface{}) (interface{}, error) {
	switch data.(type) {
	case map[string]interface{}, []interface{}, string, bool, nil:
		return data, nil
	}
	buf, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	return out, nil
}

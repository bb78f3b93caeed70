package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
	"github.com/salmonumbrella/tabtex/internal/output"
)

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return clierrors.NewUserError(
			fmt.Sprintf("invalid --error-format %q", format),
			"Use one of: auto, text, json, yaml",
		)
	}
}

// effectiveErrorFormat resolves "auto" from the output format so that
// machine-readable inspect output gets machine-readable errors.
func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(stderrFromContext(ctx))
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(stderrFromContext(ctx))
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	_, _ = fmt.Fprintln(stderrFromContext(ctx), err)
	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		_, _ = fmt.Fprintf(stderrFromContext(ctx), "Hint: %s\n", suggestion)
	}
}

func buildErrorEnvelope(err error) map[string]interface{} {
	errMap := map[string]interface{}{
		"message":   err.Error(),
		"exit_code": ExitCode(err),
	}

	category := "system"
	switch {
	case errors.Is(err, context.Canceled):
		category = "canceled"
	case clierrors.IsMalformedRowError(err), clierrors.IsSourceReadError(err):
		category = "source"
	case isUserFacing(err):
		category = "user"
	}
	errMap["category"] = category

	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		errMap["suggestion"] = suggestion
	}

	var validationErr *clierrors.ValidationError
	if errors.As(err, &validationErr) {
		errMap["type"] = "validation"
		errMap["field"] = validationErr.Field
	}

	var readErr *clierrors.SourceReadError
	if errors.As(err, &readErr) {
		errMap["type"] = "source_read"
		if readErr.Path != "" {
			errMap["path"] = readErr.Path
		}
	}

	var rowErr *clierrors.MalformedRowError
	if errors.As(err, &rowErr) {
		errMap["type"] = "malformed_row"
		errMap["line"] = rowErr.Line
		errMap["fields"] = rowErr.Got
		errMap["expected_fields"] = rowErr.Want
	}

	var colErr *clierrors.ColumnNotFoundError
	if errors.As(err, &colErr) {
		errMap["type"] = "column_not_found"
		errMap["column"] = colErr.Column
		errMap["available"] = colErr.Available
	}

	var alignErr *clierrors.AlignmentMismatchError
	if errors.As(err, &alignErr) {
		errMap["type"] = "alignment_mismatch"
		errMap["align"] = alignErr.Align
		errMap["align_columns"] = alignErr.Got
		errMap["table_columns"] = alignErr.Want
	}

	var tmplErr *clierrors.TemplateError
	if errors.As(err, &tmplErr) {
		errMap["type"] = "template"
		if tmplErr.Name != "" {
			errMap["template"] = tmplErr.Name
		}
	}

	return map[string]interface{}{"error": errMap}
}

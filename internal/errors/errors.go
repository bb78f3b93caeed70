package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents an input validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// UserError represents an error caused by user input or configuration.
// Suggestion can provide a concrete fix for the user.
type UserError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError with a message and optional suggestion.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// WrapUserError wraps an underlying error with a user-facing message and suggestion.
func WrapUserError(err error, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Err: err}
}

// SourceReadError reports a tabular source that could not be opened or read.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	if e.Path == "" || e.Path == "-" {
		return fmt.Sprintf("failed to read source: %v", e.Err)
	}
	return fmt.Sprintf("failed to read source %q: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// MalformedRowError reports a row whose field count disagrees with the header.
// Line is 1-based and counts the header line.
type MalformedRowError struct {
	Line int
	Got  int
	Want int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row on line %d: got %d fields, header has %d", e.Line, e.Got, e.Want)
}

// ColumnNotFoundError reports a requested column absent from the table.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// AlignmentMismatchError reports an explicit alignment string whose column
// specifier count differs from the table's column count. Suggested, when
// set, is an alignment that fits the table.
type AlignmentMismatchError struct {
	Align     string
	Want      int
	Got       int
	Suggested string
}

func (e *AlignmentMismatchError) Error() string {
	return fmt.Sprintf("alignment %q describes %d columns, table has %d", e.Align, e.Got, e.Want)
}

// TemplateError wraps a failure to parse or execute a custom table template.
type TemplateError struct {
	Name string
	Err  error
}

func (e *TemplateError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("template %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("template: %v", e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Type checkers
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

func IsSourceReadError(err error) bool {
	var e *SourceReadError
	return errors.As(err, &e)
}

func IsMalformedRowError(err error) bool {
	var e *MalformedRowError
	return errors.As(err, &e)
}

func IsColumnNotFoundError(err error) bool {
	var e *ColumnNotFoundError
	return errors.As(err, &e)
}

func IsAlignmentMismatchError(err error) bool {
	var e *AlignmentMismatchError
	return errors.As(err, &e)
}

func IsTemplateError(err error) bool {
	var e *TemplateError
	return errors.As(err, &e)
}

// UserSuggestion returns a suggestion string for errors that carry one.
func UserSuggestion(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Suggestion
	}
	var ce *ColumnNotFoundError
	if errors.As(err, &ce) {
		if len(ce.Available) == 0 {
			return "The source has no columns"
		}
		return fmt.Sprintf("Available columns:\n%s", formatSuggestionList(ce.Available))
	}
	var ae *AlignmentMismatchError
	if errors.As(err, &ae) {
		if ae.Suggested != "" {
			return fmt.Sprintf("Pass one column specifier per column (e.g. %q) or omit --align", ae.Suggested)
		}
		return fmt.Sprintf("Pass %d column specifiers or omit --align", ae.Want)
	}
	var me *MalformedRowError
	if errors.As(err, &me) {
		return "Check the delimiter (--delim) and quoting on that line"
	}
	var se *SourceReadError
	if errors.As(err, &se) {
		return "Check that the file exists and is readable"
	}
	return ""
}

// formatSuggestionList formats a list of suggestions as a bulleted list.
func formatSuggestionList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "  • %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n")
}

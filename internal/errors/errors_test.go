package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "round",
		Message: "must not be negative",
	}

	expected := "validation error for round: must not be negative"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}

	if !IsValidationError(err) {
		t.Error("IsValidationError should return true for ValidationError")
	}
}

func TestSourceReadError(t *testing.T) {
	err := &SourceReadError{Path: "data.csv", Err: os.ErrNotExist}

	if !strings.Contains(err.Error(), `"data.csv"`) {
		t.Errorf("expected path in message, got %q", err.Error())
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("SourceReadError should unwrap to the underlying error")
	}

	stdin := &SourceReadError{Path: "-", Err: fmt.Errorf("closed")}
	if stdin.Error() != "failed to read source: closed" {
		t.Errorf("unexpected stdin message %q", stdin.Error())
	}
}

func TestMalformedRowError(t *testing.T) {
	err := &MalformedRowError{Line: 3, Got: 1, Want: 2}

	expected := "malformed row on line 3: got 1 fields, header has 2"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestAlignmentMismatchError(t *testing.T) {
	err := &AlignmentMismatchError{Align: "l|c|r", Want: 2, Got: 3, Suggested: "l|c"}

	expected := `alignment "l|c|r" describes 3 columns, table has 2`
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
	if got := UserSuggestion(err); !strings.Contains(got, `"l|c"`) {
		t.Errorf("expected suggested alignment in suggestion, got %q", got)
	}

	bare := &AlignmentMismatchError{Align: "l", Want: 2, Got: 1}
	if got := UserSuggestion(bare); got != "Pass 2 column specifiers or omit --align" {
		t.Errorf("suggestion without Suggested = %q", got)
	}
}

func TestTypeCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
		want    bool
	}{
		{
			name:    "generic error",
			err:     errors.New("generic error"),
			checker: IsValidationError,
			want:    false,
		},
		{
			name:    "wrapped source error",
			err:     fmt.Errorf("load: %w", &SourceReadError{Err: os.ErrPermission}),
			checker: IsSourceReadError,
			want:    true,
		},
		{
			name:    "wrapped malformed row",
			err:     fmt.Errorf("load: %w", &MalformedRowError{Line: 2}),
			checker: IsMalformedRowError,
			want:    true,
		},
		{
			name:    "column not found",
			err:     &ColumnNotFoundError{Column: "x"},
			checker: IsColumnNotFoundError,
			want:    true,
		},
		{
			name:    "alignment mismatch is not a column error",
			err:     &AlignmentMismatchError{},
			checker: IsColumnNotFoundError,
			want:    false,
		},
		{
			name:    "template error",
			err:     &TemplateError{Err: errors.New("boom")},
			checker: IsTemplateError,
			want:    true,
		},
		{
			name:    "user error",
			err:     NewUserError("bad", "fix it"),
			checker: IsUserError,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.checker(tt.err); got != tt.want {
				t.Errorf("checker() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil-like generic", errors.New("x"), ""},
		{"user error", NewUserError("bad", "try again"), "try again"},
		{"wrapped user error", WrapUserError(errors.New("io"), "bad", "hint"), "hint"},
		{"column not found", &ColumnNotFoundError{Column: "z", Available: []string{"a", "b"}}, "Available columns:\n  • a\n  • b"},
		{"column not found without columns", &ColumnNotFoundError{Column: "z"}, "The source has no columns"},
		{"source read", &SourceReadError{Err: os.ErrNotExist}, "Check that the file exists and is readable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserSuggestion(tt.err); got != tt.want {
				t.Errorf("UserSuggestion() = %q, want %q", got, tt.want)
			}
		})
	}
}


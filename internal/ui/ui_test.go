package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"ALWAYS", ColorAlways, false},
		{"never", ColorNever, false},
		{"sometimes", ColorAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	u := New(ColorAlways, &buf)
	if u.color != ColorNever {
		t.Errorf("NO_COLOR should force ColorNever, got %v", u.color)
	}
	u.Success("done")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no escape codes, got %q", buf.String())
	}
}

func TestNew_ColorAlways(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	u := New(ColorAlways, &buf)
	if !u.Colored() {
		t.Fatal("ColorAlways should color output to a non-terminal")
	}
	u.Warning("careful")
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected escape codes, got %q", buf.String())
	}
}

func TestOutputMethods(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(*UI, string, ...any)
		expected string
	}{
		{"Success", (*UI).Success, "✓ wrote table.tex"},
		{"Warning", (*UI).Warning, "⚠ wrote table.tex"},
		{"Error", (*UI).Error, "✗ wrote table.tex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			u := New(ColorNever, &buf)

			tt.fn(u, "wrote %s", "table.tex")

			if got := strings.TrimSpace(buf.String()); got != tt.expected {
				t.Errorf("%s output = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestContextIntegration(t *testing.T) {
	u := New(ColorNever, &bytes.Buffer{})
	ctx := WithUI(context.Background(), u)

	if FromContext(ctx) != u {
		t.Error("FromContext() did not return the same UI instance")
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext() returned nil for context without UI")
	}
}

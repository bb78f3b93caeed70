package table

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{88, "88.0"},
		{91.26, "91.26"},
		{-0.5, "-0.5"},
		{0, "0.0"},
		{1e-5, "1e-05"},
		{1.5e16, "1.5e+16"},
		{123456789.25, "123456789.25"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValueText(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), ""},
		{"string", String("a_b"), "a_b"},
		{"int", Int(-42), "-42"},
		{"float", Float(2.5), "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_RejectsUnequalColumns(t *testing.T) {
	_, err := New(
		Column{Name: "a", Values: []Value{Int(1), Int(2)}},
		Column{Name: "b", Values: []Value{Int(1)}},
	)
	if !clierrors.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	tbl, err := New(
		Column{Name: "A", Kind: KindInt, Values: []Value{Int(1), Int(2)}},
		Column{Name: "B", Kind: KindString, Values: []Value{String("x"), String("y")}},
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := tbl.Select([]string{"B", "A"})
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "A"}, got.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Value{String("y"), Int(2)}, got.Row(1)); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}

	got.Columns[0].Values[0] = String("changed")
	if tbl.Columns[1].Values[0].Str != "x" {
		t.Error("Select() must copy values")
	}

	_, err = tbl.Select([]string{"A", "missing"})
	var ce *clierrors.ColumnNotFoundError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
	if ce.Column != "missing" {
		t.Errorf("Column = %q", ce.Column)
	}
	if diff := cmp.Diff([]string{"A", "B"}, ce.Available); diff != "" {
		t.Errorf("available mismatch (-want +got):\n%s", diff)
	}
}

func TestClone(t *testing.T) {
	tbl := &Table{Columns: []Column{{Name: "a", Kind: KindFloat, Values: []Value{Float(1.5)}}}}
	c := tbl.Clone()
	if diff := cmp.Diff(tbl, c); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}
	c.Columns[0].Values[0] = Float(9)
	if tbl.Columns[0].Values[0].Float != 1.5 {
		t.Error("Clone() shares values with the original")
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	rows := [][]interface{}{
		{"name", "score", "note"},
		{"Alice", 91.256, "ok"},
		{"Bob", 88},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadXLSX(bytes.NewReader(buf.Bytes()), "")
	if err != nil {
		t.Fatalf("LoadXLSX() error: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "score", "note"}, tbl.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if tbl.Columns[1].Kind != KindFloat {
		t.Errorf("score kind = %v, want float", tbl.Columns[1].Kind)
	}
	if got := tbl.Columns[2].Values[1]; got.Kind != KindNull {
		t.Errorf("short spreadsheet row should pad with null, got %+v", got)
	}

	_, err = LoadXLSX(bytes.NewReader(buf.Bytes()), "Nope")
	if !clierrors.IsUserError(err) {
		t.Fatalf("expected UserError for missing sheet, got %v", err)
	}
}

func TestLoadXLSX_NotAWorkbook(t *testing.T) {
	_, err := LoadXLSX(bytes.NewReader([]byte("a,b\n1,2\n")), "")
	if !clierrors.IsSourceReadError(err) {
		t.Fatalf("expected SourceReadError, got %v", err)
	}
}

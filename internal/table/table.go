// Package table holds the in-memory tabular model and the loaders that build
// it from delimited text and spreadsheet sources.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
)

// Kind identifies the scalar type of a cell or a column.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "null"
	}
}

// MarshalText lets kinds serialize by name in json/yaml output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Value is a single cell. Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
}

// Null returns an empty cell.
func Null() Value { return Value{Kind: KindNull} }

// String returns a string cell.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int returns an integer cell.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float returns a floating-point cell.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// IsNumeric reports whether the cell holds an integer or a float.
func (v Value) IsNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// Text returns the textual representation used when rendering the cell.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return FormatFloat(v.Float)
	default:
		return ""
	}
}

// Interface returns the cell as a plain Go value (nil, string, int64, float64).
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return FormatFloat(v.Float)
		}
		return v.Float
	default:
		return nil
	}
}

// FormatFloat prints f in shortest round-trip form. Integral values keep a
// trailing ".0" and magnitudes outside [1e-4, 1e16) use exponent notation.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// Column is a named sequence of cells.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// Table is an ordered set of equal-length columns.
type Table struct {
	Columns []Column
}

// New builds a table, rejecting columns of unequal length.
func New(columns ...Column) (*Table, error) {
	if len(columns) > 0 {
		want := len(columns[0].Values)
		for _, c := range columns[1:] {
			if len(c.Values) != want {
				return nil, &clierrors.ValidationError{
					Field:   "columns",
					Message: fmt.Sprintf("column %q has %d values, column %q has %d", c.Name, len(c.Values), columns[0].Name, want),
				}
			}
		}
	}
	return &Table{Columns: columns}, nil
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the first column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Row returns the cells of row i across all columns.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Values[i]
	}
	return row
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		values := make([]Value, len(c.Values))
		copy(values, c.Values)
		out.Columns[i] = Column{Name: c.Name, Kind: c.Kind, Values: values}
	}
	return out
}

// Select returns a copy holding exactly the named columns in the given order.
// A name may repeat.
func (t *Table) Select(names []string) (*Table, error) {
	out := &Table{Columns: make([]Column, 0, len(names))}
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, &clierrors.ColumnNotFoundError{Column: name, Available: t.Names()}
		}
		values := make([]Value, len(c.Values))
		copy(values, c.Values)
		out.Columns = append(out.Columns, Column{Name: c.Name, Kind: c.Kind, Values: values})
	}
	return out, nil
}

package latex

import (
	"math"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
	"github.com/salmonumbrella/tabtex/internal/table"
)

// RoundFloat rounds f to places decimals, rounding half to even on the
// scaled value. NaN and infinities pass through.
func RoundFloat(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	scale := math.Pow(10, float64(places))
	scaled := f * scale
	if math.IsInf(scaled, 0) {
		return f
	}
	return math.RoundToEven(scaled) / scale
}

// RoundTable returns a copy of t with every float cell rounded. Other cells
// are copied unchanged.
func RoundTable(t *table.Table, places int) (*table.Table, error) {
	if places < 0 {
		return nil, &clierrors.ValidationError{Field: "round", Message: "must not be negative"}
	}
	out := t.Clone()
	for i := range out.Columns {
		values := out.Columns[i].Values
		for j, v := range values {
			if v.Kind == table.KindFloat {
				values[j] = table.Float(RoundFloat(v.Float, places))
			}
		}
	}
	return out, nil
}

package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
)

// LoadXLSX reads a worksheet from an .xlsx workbook. The first row names the
// columns. An empty sheet name selects the first sheet.
func LoadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &clierrors.SourceReadError{Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, &clierrors.SourceReadError{Err: ErrNoHeader}
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, clierrors.NewUserError(
			fmt.Sprintf("sheet %q not found", sheet),
			fmt.Sprintf("Available sheets: %v", sheets),
		)
	}

	// Raw values keep full precision; rounding is the renderer's job.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &clierrors.SourceReadError{Err: err}
	}

	// Skip leading blank rows the way the text loader skips blank lines.
	start := 0
	for start < len(rows) && len(rows[start]) == 0 {
		start++
	}
	if start == len(rows) {
		return nil, &clierrors.SourceReadError{Err: ErrNoHeader}
	}

	header := rows[start]
	var body [][]string
	var lines []int
	for i := start + 1; i < len(rows); i++ {
		if len(rows[i]) == 0 {
			continue
		}
		body = append(body, rows[i])
		lines = append(lines, i+1)
	}
	return fromRecords(header, body, lines, true)
}

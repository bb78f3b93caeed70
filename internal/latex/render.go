// Package latex renders tables as LaTeX table floats.
//
// Render runs a fixed pipeline over a copy of the input table:
//
//  1. project to Options.Columns (ColumnNotFoundError when one is missing)
//  2. round float cells to Options.Round decimals
//  3. build the bold header row and one row per record
//  4. resolve the column alignment (AlignmentMismatchError on a bad count)
//  5. fill the table skeleton, or Options.Template when set
//
// Cell text is emitted verbatim unless Options.Escape is set, so values
// containing & % $ # _ { } ~ ^ or \ must already be valid LaTeX.
package latex

import (
	"strings"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
	"github.com/salmonumbrella/tabtex/internal/table"
)

const (
	cellSeparator = " & "
	rowTerminator = ` \\`
	hline         = `\hline`
	bodyIndent    = "        "
)

// Render converts t into a LaTeX table environment. t is never modified.
func Render(t *table.Table, opts Options) (string, error) {
	prepared, err := Prepare(t, opts)
	if err != nil {
		return "", err
	}

	align, err := ResolveAlign(opts.Align, prepared.NumCols())
	if err != nil {
		return "", err
	}

	header := Header(prepared.Names(), opts.Escape)
	rows := Rows(prepared, opts.Escape)

	if opts.Template != "" {
		return renderTemplate(opts, templateData{
			Location: opts.Location,
			Caption:  opts.Caption,
			Label:    opts.Label,
			Align:    align,
			Header:   header,
			Rows:     rows,
			Columns:  prepared.Names(),
		})
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(`\begin{table}[` + opts.Location + "]\n")
	b.WriteString(`    \centering` + "\n")
	b.WriteString(`    \caption{` + opts.Caption + "}\n")
	b.WriteString(`    \label{table:` + opts.Label + "}\n")
	b.WriteString(`    \begin{tabular}{` + align + "}\n")
	b.WriteString(bodyIndent + Body(header, rows) + "\n")
	b.WriteString(`    \end{tabular}` + "\n")
	b.WriteString(`\end{table}`)
	return b.String(), nil
}

// Prepare applies column selection and rounding, returning a new table.
func Prepare(t *table.Table, opts Options) (*table.Table, error) {
	if t == nil || t.NumCols() == 0 {
		return nil, &clierrors.ValidationError{Field: "table", Message: "has no columns"}
	}

	prepared := t
	if len(opts.Columns) > 0 {
		selected, err := t.Select(opts.Columns)
		if err != nil {
			return nil, err
		}
		prepared = selected
	}

	if opts.Round != nil {
		return RoundTable(prepared, *opts.Round)
	}
	if prepared == t {
		return t.Clone(), nil
	}
	return prepared, nil
}

// Header returns the bold header row.
func Header(names []string, escape bool) string {
	cells := make([]string, len(names))
	for i, name := range names {
		if escape {
			name = Escape(name)
		}
		cells[i] = `\textbf{` + name + `}`
	}
	return strings.Join(cells, cellSeparator) + rowTerminator
}

// Rows returns one rendered line per table row.
func Rows(t *table.Table, escape bool) []string {
	n := t.NumRows()
	rows := make([]string, n)
	cells := make([]string, t.NumCols())
	for i := 0; i < n; i++ {
		for j, c := range t.Columns {
			v := c.Values[i]
			text := v.Text()
			if escape && v.Kind == table.KindString {
				text = Escape(text)
			}
			cells[j] = text
		}
		rows[i] = strings.Join(cells, cellSeparator) + rowTerminator
	}
	return rows
}

// Body joins the header, the horizontal rule, and the rows, indenting every
// line after the first to sit inside the tabular environment.
func Body(header string, rows []string) string {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, header, hline)
	lines = append(lines, rows...)
	return strings.Join(lines, "\n"+bodyIndent)
}

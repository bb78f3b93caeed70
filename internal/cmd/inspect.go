package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tabtex/internal/output"
	"github.com/salmonumbrella/tabtex/internal/table"
)

// inspectColumn describes one inferred column.
type inspectColumn struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Nulls int    `json:"nulls"`
}

// inspectReport is the inspect result: the inferred schema plus a sample of rows.
type inspectReport struct {
	Source  string                   `json:"source"`
	Rows    int                      `json:"rows"`
	Columns []inspectColumn          `json:"columns"`
	Data    []map[string]interface{} `json:"data"`
}

// OutputTable lists the columns for text and table output.
func (r inspectReport) OutputTable() output.Table {
	t := output.Table{Headers: []string{"COLUMN", "KIND", "NULLS"}}
	for _, c := range r.Columns {
		t.Rows = append(t.Rows, []string{c.Name, c.Kind, strconv.Itoa(c.Nulls)})
	}
	return t
}

func buildInspectReport(source string, tbl *table.Table, limit int) inspectReport {
	report := inspectReport{
		Source:  source,
		Rows:    tbl.NumRows(),
		Columns: make([]inspectColumn, 0, tbl.NumCols()),
		Data:    []map[string]interface{}{},
	}
	for _, col := range tbl.Columns {
		nulls := 0
		for _, v := range col.Values {
			if v.Kind == table.KindNull {
				nulls++
			}
		}
		report.Columns = append(report.Columns, inspectColumn{Name: col.Name, Kind: col.Kind.String(), Nulls: nulls})
	}

	n := tbl.NumRows()
	if limit >= 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		row := make(map[string]interface{}, tbl.NumCols())
		for j, v := range tbl.Row(i) {
			row[tbl.Columns[j].Name] = v.Interface()
		}
		report.Data = append(report.Data, row)
	}
	return report
}

func newInspectCmd() *cobra.Command {
	var (
		outputFlag string
		queryFlag  string
		jsonPath   string
		delim      string
		sheet      string
		rows       int
	)

	cmd := &cobra.Command{
		Use:     "inspect <path>",
		Aliases: []string{"i", "schema"},
		Short:   "Show the inferred columns and a sample of rows",
		Long: `Load a table source and print what tabtex infers from it: column names,
kinds (int, float, string, or null when every cell is empty), empty-cell
counts, the row count, and the first --rows rows.

Text output lists the columns. JSON and YAML output carry the full report,
which --jsonpath and --query (jq) can filter.`,
		Example: `  tabtex inspect scores.csv
  tabtex inspect scores.csv -o json --rows -1
  tabtex inspect scores.csv -q '.columns[] | select(.kind == "float") | .name'
  tabtex inspect book.xlsx --sheet Q3 --jsonpath '$.columns[*].kind'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := ConfigFromContext(ctx)
			_, load, _ := renderDefaults(cfg)
			if flagChanged(cmd.Flags(), "delim", "delimiter") {
				load.Delimiter = delim
			}
			load.Sheet = sheet
			load.Stdin = stdinFromContext(ctx)

			tbl, err := table.LoadFile(args[0], load)
			if err != nil {
				return err
			}
			slog.Debug("loaded table", "source", args[0], "rows", tbl.NumRows(), "columns", tbl.NumCols())

			report := buildInspectReport(args[0], tbl, rows)
			filtered := output.QueryFromContext(ctx) != "" || output.JSONPathFromContext(ctx) != ""
			if output.FormatFromContext(ctx) == output.FormatText && !filtered {
				_, _ = fmt.Fprintf(stdoutFromContext(ctx), "%s: %d rows, %d columns\n\n", report.Source, report.Rows, len(report.Columns))
			}
			return printerForContext(ctx).Print(ctx, report)
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text|json|ndjson|table|yaml")
	cmd.Flags().StringVarP(&queryFlag, "query", "q", "", "jq expression to filter the report")
	cmd.Flags().StringVar(&jsonPath, "jsonpath", "", "Extract a value using JSONPath (e.g. $.columns[0].kind)")
	cmd.Flags().StringVarP(&delim, "delim", "d", table.DefaultDelimiter, `Field delimiter ("tab" or \t for TAB)`)
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read from an .xlsx source (default first sheet)")
	cmd.Flags().IntVar(&rows, "rows", 5, "Rows to include in the report (-1 for all)")

	flagAlias(cmd.Flags(), "output", "format")
	flagAlias(cmd.Flags(), "query", "jq")
	flagAlias(cmd.Flags(), "delim", "delimiter")
	return cmd
}

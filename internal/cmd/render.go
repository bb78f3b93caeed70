package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tabtex/internal/cmdutil"
	"github.com/salmonumbrella/tabtex/internal/config"
	"github.com/salmonumbrella/tabtex/internal/errors"
	"github.com/salmonumbrella/tabtex/internal/latex"
	"github.com/salmonumbrella/tabtex/internal/table"
	"github.com/salmonumbrella/tabtex/internal/ui"
)

// renderFlags holds the flag values shared by the root command and render.
type renderFlags struct {
	csvPath  string
	delim    string
	round    int
	noRound  bool
	align    string
	caption  string
	label    string
	location string
	columns  []string
	sheet    string
	escape   bool
	template string
	outFile  string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.csvPath, "csv", "p", "", "Path to the source table (alternative to the positional argument)")
	fs.StringVarP(&f.delim, "delim", "d", table.DefaultDelimiter, `Field delimiter ("tab" or \t for TAB)`)
	fs.IntVarP(&f.round, "round", "r", latex.DefaultRound, "Decimal places for float cells")
	fs.BoolVar(&f.noRound, "no-round", false, "Leave float cells unrounded")
	fs.StringVarP(&f.align, "align", "a", "", `Tabular column specification (default "l|c|c|...")`)
	fs.StringVarP(&f.caption, "caption", "c", latex.DefaultCaption, "Table caption")
	fs.StringVarP(&f.label, "label", "l", latex.DefaultLabel, `Label suffix, rendered as \label{table:<label>}`)
	fs.StringVar(&f.location, "location", latex.DefaultLocation, "Float placement (t, h, b, p, !htbp, ...)")
	fs.StringSliceVar(&f.columns, "columns", nil, "Columns to include, in order (repeatable or comma-separated)")
	fs.StringVar(&f.sheet, "sheet", "", "Worksheet to read from an .xlsx source (default first sheet)")
	fs.BoolVar(&f.escape, "escape", false, "Escape LaTeX special characters in headers and cells")
	fs.StringVar(&f.template, "template", "", "Render with a custom template file instead of the built-in table")
	fs.StringVarP(&f.outFile, "out-file", "O", "", "Write the LaTeX to a file instead of stdout")

	flagAlias(fs, "delim", "delimiter")
	cmd.MarkFlagsMutuallyExclusive("round", "no-round")
}

// renderJob is a fully resolved render invocation.
type renderJob struct {
	Source       string
	Load         table.LoadOptions
	Options      latex.Options
	TemplatePath string
	OutFile      string
}

// renderDefaults applies config values over the built-in defaults.
func renderDefaults(cfg *config.Config) (latex.Options, table.LoadOptions, string) {
	opts := latex.DefaultOptions()
	load := table.LoadOptions{Delimiter: table.DefaultDelimiter}
	if cfg == nil {
		return opts, load, ""
	}

	if cfg.Delimiter != "" {
		load.Delimiter = cfg.Delimiter
	}
	if places, disabled, ok := cfg.RoundPlaces(); ok {
		if disabled {
			opts.Round = nil
		} else {
			opts.Round = latex.Places(places)
		}
	}
	if cfg.Caption != "" {
		opts.Caption = cfg.Caption
	}
	if cfg.Label != "" {
		opts.Label = cfg.Label
	}
	if cfg.Location != "" {
		opts.Location = cfg.Location
	}
	if cfg.Escape != nil {
		opts.Escape = *cfg.Escape
	}
	return opts, load, cfg.Template
}

// resolve merges flags over config over defaults. Only flags the user set
// override config.
func (f *renderFlags) resolve(cmd *cobra.Command, args []string, cfg *config.Config) (renderJob, error) {
	source, err := f.source(args)
	if err != nil {
		return renderJob{}, err
	}

	opts, load, templatePath := renderDefaults(cfg)
	changed := cmd.Flags().Changed

	if flagChanged(cmd.Flags(), "delim", "delimiter") {
		load.Delimiter = f.delim
	}
	load.Sheet = f.sheet
	switch {
	case changed("no-round") && f.noRound:
		opts.Round = nil
	case changed("round"):
		opts.Round = latex.Places(f.round)
	}
	if changed("align") {
		opts.Align = f.align
	}
	if changed("caption") {
		opts.Caption = f.caption
	}
	if changed("label") {
		opts.Label = f.label
	}
	if changed("location") {
		opts.Location = f.location
	}
	if changed("escape") {
		opts.Escape = f.escape
	}
	if changed("template") {
		templatePath = f.template
	}
	opts.Columns = cmdutil.SplitList(f.columns)

	return renderJob{
		Source:       source,
		Load:         load,
		Options:      opts,
		TemplatePath: templatePath,
		OutFile:      f.outFile,
	}, nil
}

func (f *renderFlags) source(args []string) (string, error) {
	switch {
	case len(args) > 0 && f.csvPath != "" && args[0] != f.csvPath:
		return "", errors.NewUserError(
			fmt.Sprintf("two sources given: %q and --csv %q", args[0], f.csvPath),
			"Pass the source either as an argument or with --csv",
		)
	case len(args) > 0:
		return args[0], nil
	case f.csvPath != "":
		return f.csvPath, nil
	default:
		return "", errors.NewUserError("no source given", "Pass a CSV or .xlsx path, or - to read stdin")
	}
}

func newRenderCmd() *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:     "render [path]",
		Aliases: []string{"r"},
		Short:   "Render a table source as a LaTeX table float",
		Long: `Render a CSV (or other delimited text) or .xlsx source as a LaTeX table float.

The first row names the columns. Integer and float columns are inferred;
float cells are rounded to --round places (half to even). Use - as the path
to read stdin.

Flags override config values (see 'tabtex config'), which override the
built-in defaults.`,
		Example: `  tabtex render scores.csv
  tabtex render -p scores.csv --columns score,name -a "r|l"
  tabtex render results.tsv -d tab --no-round --escape
  tabtex render book.xlsx --sheet Summary -O summary.tex
  tabtex render scores.csv --template booktabs.tex`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, args)
		},
	}
	flags.register(cmd)
	return cmd
}

func runRender(cmd *cobra.Command, flags *renderFlags, args []string) error {
	ctx := cmd.Context()
	job, err := flags.resolve(cmd, args, ConfigFromContext(ctx))
	if err != nil {
		return err
	}

	stdin := stdinFromContext(ctx)
	job.Load.Stdin = stdin

	if job.TemplatePath != "" {
		if job.TemplatePath == "-" && job.Source == "-" {
			return errors.NewUserError("stdin cannot be both the source and the template", "Pass the template as a file path")
		}
		src, err := cmdutil.ReadInputSource(job.TemplatePath, stdin)
		if err != nil {
			return errors.WrapUserError(err, "failed to read template", "Check the --template path")
		}
		job.Options.Template = src
		job.Options.TemplateName = filepath.Base(job.TemplatePath)
	}

	if job.Source == "-" && isTerminal(stdin) {
		ui.FromContext(ctx).Warning("Reading table from stdin; finish with Ctrl-D")
	}

	tbl, err := table.LoadFile(job.Source, job.Load)
	if err != nil {
		return err
	}
	slog.Debug("loaded table", "source", job.Source, "rows", tbl.NumRows(), "columns", tbl.NumCols())

	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := latex.Render(tbl, job.Options)
	if err != nil {
		return err
	}
	slog.Debug("rendered table", "bytes", len(out), "template", job.Options.TemplateName)

	if job.OutFile != "" {
		if err := os.WriteFile(job.OutFile, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", job.OutFile, err)
		}
		ui.FromContext(ctx).Success("Wrote %s", job.OutFile)
		return nil
	}

	_, err = fmt.Fprintln(stdoutFromContext(ctx), out)
	return err
}

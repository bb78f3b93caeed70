package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tabtex/internal/config"
	"github.com/salmonumbrella/tabtex/internal/errors"
	"github.com/salmonumbrella/tabtex/internal/logging"
	"github.com/salmonumbrella/tabtex/internal/output"
	"github.com/salmonumbrella/tabtex/internal/ui"
)

func newRootCmd(app *App) *cobra.Command {
	// Global flags
	var (
		debugMode   bool
		logFormat   string
		colorFlag   string
		errorFormat string
		configPath  string
	)
	render := &renderFlags{}

	rootCmd := &cobra.Command{
		Use:   "tabtex [path]",
		Short: "Convert CSV and spreadsheet tables into LaTeX",
		Long: `tabtex converts delimited text (CSV, TSV, ...) and .xlsx workbooks into a
LaTeX table float: a bold header row, an \hline, and one row per record.

Running tabtex with a path is the same as 'tabtex render <path>'. Use - to
read the table from stdin.`,
		Example: `  tabtex scores.csv
  tabtex scores.csv -c "Final scores" -l scores -a "l|r" --columns name,score
  tabtex -d tab -r 1 - < results.tsv
  tabtex render book.xlsx --sheet Q3 -O table.tex`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Ensure Cobra doesn't emit its own error/usage text; we handle error output centrally.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			ctx := cmd.Context()
			if err := validateErrorFormat(errorFormat); err != nil {
				return err
			}
			ctx = WithErrorFormat(ctx, errorFormat)
			app.runCtx = ctx

			if err := logging.SetupFormat(logFormat, debugMode, app.Stderr); err != nil {
				return errors.WrapUserError(err, "invalid --log-format", "Use one of: text, json")
			}

			path, err := resolveConfigPath(configPath)
			if err != nil {
				return fmt.Errorf("failed to determine config path: %w", err)
			}
			ctx = WithConfigPath(ctx, path)

			cfg, err := config.LoadFromPath(path)
			if err != nil {
				// Config commands must still work on a broken file so it can be repaired.
				if !isConfigCommand(cmd) {
					return errors.WrapUserError(err, "failed to load config", "Fix or remove "+path)
				}
				slog.Warn("ignoring unreadable config", "path", path, "error", err)
				cfg = &config.Config{}
			}
			ctx = WithConfig(ctx, cfg)

			if !cmd.Flags().Changed("error-format") && cfg.ErrorFormat != "" {
				ctx = WithErrorFormat(ctx, cfg.ErrorFormat)
			}

			colorValue := colorFlag
			if !cmd.Flags().Changed("color") && cfg.Color != "" {
				colorValue = cfg.Color
			}
			mode, err := ui.ParseColorMode(colorValue)
			if err != nil {
				return errors.WrapUserError(err, "invalid --color", "Use one of: auto, always, never")
			}
			ctx = ui.WithUI(ctx, ui.New(mode, app.Stderr))

			ctx, err = withOutputOptions(ctx, cmd, cfg)
			if err != nil {
				app.runCtx = ctx
				return err
			}

			cmd.SetContext(ctx)
			app.runCtx = ctx
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && render.csvPath == "" {
				return cmd.Help()
			}
			return runRender(cmd, render, args)
		},
	}

	// Set version info
	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tabtex %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text|json")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color mode for status messages: auto|always|never")
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", "auto", "Error output format: auto|text|json|yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default $TABTEX_CONFIG or ~/.config/tabtex/config.yaml)")

	// Flag parse errors fire before PersistentPreRunE; keep usage off stdout.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.SilenceUsage = true
		return errors.WrapUserError(err, "invalid flags", fmt.Sprintf("Run '%s --help' for usage", c.CommandPath()))
	})

	// The root command renders directly, so it carries the render flags too.
	render.register(rootCmd)

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeMCPCmd(app.Version))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// withOutputOptions injects --output, --query and --jsonpath for commands
// that define them.
func withOutputOptions(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (context.Context, error) {
	if f := cmd.Flags().Lookup("output"); f != nil {
		value := f.Value.String()
		if !flagChanged(cmd.Flags(), "output", "format") && cfg.Output != "" {
			value = cfg.Output
		}
		format, err := output.ParseFormat(value)
		if err != nil {
			return ctx, errors.WrapUserError(err, fmt.Sprintf("invalid --output %q", value), "Use one of: text, json, ndjson, table, yaml")
		}
		ctx = output.WithFormat(ctx, format)
	}
	// Aliases share the flag's Value, so reading the primary flag covers them.
	if f := cmd.Flags().Lookup("query"); f != nil {
		ctx = output.WithQuery(ctx, strings.TrimSpace(f.Value.String()))
	}
	if f := cmd.Flags().Lookup("jsonpath"); f != nil {
		ctx = output.WithJSONPath(ctx, strings.TrimSpace(f.Value.String()))
	}
	return ctx, nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func resolveConfigPath(flag string) (string, error) {
	if p := strings.TrimSpace(flag); p != "" {
		return p, nil
	}
	return config.DefaultConfigPath()
}

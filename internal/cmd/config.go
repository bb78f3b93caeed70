package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/tabtex/internal/config"
	"github.com/salmonumbrella/tabtex/internal/errors"
	"github.com/salmonumbrella/tabtex/internal/ui"
)

const configKeysHelp = `Supported keys:
  delimiter     - Default field delimiter (",", ";", "tab", ...)
  round         - Default decimal places, or "none" to disable rounding
  caption       - Default table caption
  label         - Default label suffix
  location      - Default float placement
  escape        - Escape LaTeX special characters (true, false)
  template      - Path to a default table template
  color         - Color mode (auto, always, never)
  output        - Default inspect output format (text, json, yaml, table)
  error_format  - Error output format (auto, text, json, yaml)`

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manage CLI configuration",
		Long: `Manage the tabtex configuration file (~/.config/tabtex/config.yaml, or
$TABTEX_CONFIG, or --config).

Config values replace the built-in defaults; flags still win over config.

` + configKeysHelp,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigUnsetCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func loadConfigForEdit(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := ConfigPathFromContext(cmd.Context())
	if err != nil {
		return nil, "", fmt.Errorf("failed to determine config path: %w", err)
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, errors.WrapUserError(err, "failed to load config", "Fix or remove "+path)
	}
	return cfg, path, nil
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			cfg, path, err := loadConfigForEdit(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to format config: %w", err)
			}

			// If config is empty, show a helpful message
			if len(data) == 0 || string(data) == "{}\n" {
				_, _ = fmt.Fprintf(out, "No configuration set in %s\n", path)
				_, _ = fmt.Fprintln(out, "\nTo set a default, use:")
				_, _ = fmt.Fprintln(out, "  tabtex config set round 3")
				return nil
			}

			_, _ = fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Long:  "Print a configuration value (empty when unset).\n\n" + configKeysHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfigForEdit(cmd)
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return configKeyError(err)
			}
			_, _ = fmt.Fprintln(stdoutFromContext(cmd.Context()), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a configuration value.\n\n" + configKeysHelp + `

Examples:
  tabtex config set delimiter ";"
  tabtex config set round none
  tabtex config set caption "Experiment results"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			cfg, path, err := loadConfigForEdit(cmd)
			if err != nil {
				return err
			}

			if err := cfg.Set(key, value); err != nil {
				return configKeyError(err)
			}
			if err := cfg.SaveToPath(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			ui.FromContext(cmd.Context()).Success("Set %s = %s in %s", key, value, path)
			return nil
		},
	}
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Long:  "Remove a configuration value so the built-in default applies.\n\n" + configKeysHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfigForEdit(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Unset(args[0]); err != nil {
				return configKeyError(err)
			}
			if err := cfg.SaveToPath(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			ui.FromContext(cmd.Context()).Success("Unset %s in %s", args[0], path)
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			path, err := ConfigPathFromContext(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to determine config path: %w", err)
			}

			_, _ = fmt.Fprintln(out, path)

			// Show if file exists
			if _, err := os.Stat(path); err == nil {
				_, _ = fmt.Fprintln(out, "(file exists)")
			} else if os.IsNotExist(err) {
				_, _ = fmt.Fprintln(out, "(file does not exist)")
			}
			return nil
		},
	}
}

func configKeyError(err error) error {
	return errors.WrapUserError(err, "invalid config value", "Valid keys: "+strings.Join(config.Keys(), ", "))
}

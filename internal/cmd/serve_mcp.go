package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tabtex/internal/mcp"
)

func newServeMCPCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:     "serve-mcp",
		Aliases: []string{"mcp"},
		Short:   "Serve the converter as an MCP tool over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing one tool,
` + mcp.ToolName + `, which converts delimited text into a LaTeX table.

Config values (round, caption, label, location, escape) become the tool's
defaults. Logs go to stderr; use --debug to see each call.

Example client configuration:
  {"mcpServers": {"tabtex": {"command": "tabtex", "args": ["serve-mcp"]}}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			defaults, _, _ := renderDefaults(ConfigFromContext(ctx))
			return mcp.Serve(ctx, version, defaults, stdinFromContext(ctx), stdoutFromContext(ctx))
		},
	}
}

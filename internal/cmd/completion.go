package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for tabtex.

Bash:
  $ source <(tabtex completion bash)
  $ tabtex completion bash > /etc/bash_completion.d/tabtex

Zsh:
  $ tabtex completion zsh > "${fpath[1]}/_tabtex"

Fish:
  $ tabtex completion fish > ~/.config/fish/completions/tabtex.fish

PowerShell:
  PS> tabtex completion powershell | Out-String | Invoke-Expression

Start a new shell for the setup to take effect.`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell %q", args[0])
			}
		},
	}
}

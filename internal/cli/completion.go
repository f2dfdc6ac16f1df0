package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for smartview.

Bash:
  $ source <(smartview completion bash)

Zsh:
  $ smartview completion zsh > "${fpath[1]}/_smartview"

Fish:
  $ smartview completion fish > ~/.config/fish/completions/smartview.fish

PowerShell:
  PS> smartview completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

func completeDrawers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return draw.Names(), cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return render.Formats, cobra.ShellCompDirectiveNoFileComp
}

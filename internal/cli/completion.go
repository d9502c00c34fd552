package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/pkg/codec"
	"github.com/matzehuels/snakecodec/pkg/history"
	"github.com/matzehuels/snakecodec/pkg/script"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for snakecodec.

To load completions:

Bash:
  $ source <(snakecodec completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ snakecodec completion bash > /etc/bash_completion.d/snakecodec
  # macOS:
  $ snakecodec completion bash > $(brew --prefix)/etc/bash_completion.d/snakecodec

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ snakecodec completion zsh > "${fpath[1]}/_snakecodec"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ snakecodec completion fish | source

  # To load completions for each session, execute once:
  $ snakecodec completion fish > ~/.config/fish/completions/snakecodec.fish

PowerShell:
  PS> snakecodec completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> snakecodec completion powershell > snakecodec.ps1
  # and source this file from your PowerShell profile.
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

	return cmd
}

// flagValues lists the fixed values offered for flags during completion.
func flagValues() map[string][]string {
	layouts := make([]string, len(script.Layouts))
	for i, l := range script.Layouts {
		layouts[i] = l.String()
	}
	return map[string][]string{
		"layout":          layouts,
		"code-page":       codec.CodePageNames(),
		"history-backend": history.Backends,
	}
}

// registerFlagCompletions walks the command tree and attaches value
// completions to every flag listed in flagValues. The export formats are
// attached per command since "morse tree --format" takes other values.
func registerFlagCompletions(cmd *cobra.Command) {
	values := flagValues()
	for name, vals := range values {
		if cmd.Flags().Lookup(name) != nil || cmd.PersistentFlags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fixedCompletion(vals))
		}
	}
	if cmd.Parent() != nil && cmd.Parent().Name() == "history" && cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(history.Formats))
	}
	for _, sub := range cmd.Commands() {
		registerFlagCompletions(sub)
	}
}

func fixedCompletion(vals []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return vals, cobra.ShellCompDirectiveNoFileComp
	}
}

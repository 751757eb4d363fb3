package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for artoolbox.

To load completions:

Bash:

  $ source <(artoolbox completion bash)

  To load completions for each session, execute once:
  Linux:
    $ artoolbox completion bash > /etc/bash_completion.d/artoolbox
  macOS:
    $ artoolbox completion bash > /usr/local/etc/bash_completion.d/artoolbox

Zsh:

  If shell completion is not already enabled in your environment,
  you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  To load completions for each session, execute once:
  $ artoolbox completion zsh > "${fpath[1]}/_artoolbox"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ artoolbox completion fish | source

  To load completions for each session, execute once:
  $ artoolbox completion fish > ~/.config/fish/completions/artoolbox.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return errors.Errorf("unsupported shell: %s", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

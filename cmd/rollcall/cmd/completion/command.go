// Package completion provides the shell completion command.
package completion

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the completion command with one subcommand per shell.
// It replaces Cobra's generated completion command so the scripts are
// written to the command's output stream.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rollcall.

Examples:
  # Load bash completions in the current session
  source <(rollcall completion bash)

  # Install zsh completions
  rollcall completion zsh > "${fpath[1]}/_rollcall"

  # Load fish completions
  rollcall completion fish | source`,
		GroupID: "management",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newShellCommand("bash", func(c *cobra.Command) error {
		return c.Root().GenBashCompletionV2(c.OutOrStdout(), true)
	}))
	cmd.AddCommand(newShellCommand("zsh", func(c *cobra.Command) error {
		return c.Root().GenZshCompletion(c.OutOrStdout())
	}))
	cmd.AddCommand(newShellCommand("fish", func(c *cobra.Command) error {
		return c.Root().GenFishCompletion(c.OutOrStdout(), true)
	}))
	cmd.AddCommand(newShellCommand("powershell", func(c *cobra.Command) error {
		return c.Root().GenPowerShellCompletionWithDesc(c.OutOrStdout())
	}))

	return cmd
}

func newShellCommand(shell string, gen func(*cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:                   shell,
		Short:                 "Generate " + shell + " completion script",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen(cmd)
		},
	}
}

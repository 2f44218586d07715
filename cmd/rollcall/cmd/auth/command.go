// Package auth provides the auth command and its subcommands.
package auth

import (
	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/cmd/application"
)

// NewCommand creates the auth command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth",
		GroupID: "management",
		Short:   "Log in to the kindergarten API and manage the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newLoginCommand(app))
	cmd.AddCommand(newLogoutCommand(app))
	cmd.AddCommand(newStatusCommand(app))

	return cmd
}

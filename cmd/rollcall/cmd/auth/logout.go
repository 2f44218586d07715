package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/internal/cmd/emoji"
)

func newLogoutCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := app.Credentials()
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged out\n", emoji.Success)
			return nil
		},
	}
}

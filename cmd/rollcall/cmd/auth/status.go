package auth

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall"
	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/internal/auth"
	"github.com/kindergarten/rollcall/internal/cmd/constants"
	"github.com/kindergarten/rollcall/internal/cmd/emoji"
	"github.com/kindergarten/rollcall/internal/cmd/globals"
	"github.com/kindergarten/rollcall/internal/cmd/output"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// statusView is the structured form of auth status.
type statusView struct {
	State     string         `json:"state"`
	Summary   string         `json:"summary"`
	Username  string         `json:"username,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	Path      string         `json:"path"`
	User      *rollcall.User `json:"user,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func newStatusCommand(app application.Application) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored token and the account it belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := auth.NewChecker().Check(app.Credentials())
			if err != nil {
				return err
			}

			view := statusView{
				State:    status.State.String(),
				Summary:  status.Summary,
				Username: status.Username,
				Path:     status.Path,
			}
			if !status.ExpiresAt.IsZero() {
				expires := status.ExpiresAt
				view.ExpiresAt = &expires
			}

			if status.State == auth.StateValid && !offline {
				user, err := currentUser(cmd, app)
				if err != nil {
					view.Error = errors.UserMessage(err)
				} else {
					view.User = user
				}
			}

			format := string(output.DetectFormat(app.OutputFormat(), cmd.OutOrStdout()))
			if !constants.IsTable(format) {
				return output.NewFormatter(output.Format(format)).Format(cmd.OutOrStdout(), view)
			}
			printStatus(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "only inspect the stored token, do not contact the API")

	return cmd
}

func currentUser(cmd *cobra.Command, app application.Application) (*rollcall.User, error) {
	api, err := app.API()
	if err != nil {
		return nil, err
	}
	ctx, cancel := globals.Context(cmd, app.Logger(), "auth.status")
	defer cancel()
	return api.CurrentUser(ctx)
}

func printStatus(w io.Writer, view statusView) {
	symbol := emoji.Error
	if view.State == auth.StateValid.String() {
		symbol = emoji.Success
	}
	fmt.Fprintf(w, "%s %s\n", symbol, view.Summary)
	if view.User != nil {
		fmt.Fprintf(w, "  User:  %s (%s, id %d)\n", view.User.FullName, view.User.Role, view.User.ID)
	}
	if view.Error != "" {
		fmt.Fprintf(w, "  %s API: %s\n", emoji.Warning, view.Error)
	}
	fmt.Fprintf(w, "  Token: %s\n", view.Path)
}

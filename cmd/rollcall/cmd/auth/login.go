package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/internal/auth"
	"github.com/kindergarten/rollcall/internal/cmd/emoji"
	"github.com/kindergarten/rollcall/internal/cmd/globals"
	"github.com/kindergarten/rollcall/pkg/errors"
)

func newLoginCommand(app application.Application) *cobra.Command {
	var (
		username      string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Long: `Login exchanges a username and password for an access token and stores
it for later commands. Without --password the password is read from
standard input.`,
		Example: `  rollcall auth login --username anna
  echo "$PASSWORD" | rollcall auth login -u anna --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" || passwordStdin {
				var err error
				password, err = readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), !passwordStdin)
				if err != nil {
					return err
				}
			}

			api, err := app.API()
			if err != nil {
				return err
			}

			ctx, cancel := globals.Context(cmd, app.Logger(), "auth.login")
			defer cancel()

			token, err := api.Login(ctx, username, password)
			if err != nil {
				return err
			}

			store := app.Credentials()
			creds := &auth.Credentials{
				AccessToken: token.AccessToken,
				TokenType:   token.TokenType,
				Username:    username,
				SavedAt:     app.Now().UTC(),
			}
			if err := store.Save(creds); err != nil {
				return err
			}
			app.Logger().Debug().Str("path", store.Path()).Msg("Token stored")

			name := username
			if user, err := api.CurrentUser(ctx); err == nil {
				if user.FullName != "" {
					name = user.FullName
				}
			} else {
				app.Logger().Warn().Err(err).Msg("Logged in but could not fetch the current user")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged in as %s\n", emoji.Success, name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (required)")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// readPassword reads the first line of r. The prompt is only shown when
// stdin is a terminal.
func readPassword(r io.Reader, prompt io.Writer, interactive bool) (string, error) {
	if interactive && r == os.Stdin && isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprint(prompt, "Password: ")
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.WrapIO("read", "stdin", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.NewValidationError("password", nil, "password is required")
	}
	return password, nil
}

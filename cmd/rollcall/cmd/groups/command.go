// Package groups provides the groups command.
package groups

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/internal/cmd/constants"
	"github.com/kindergarten/rollcall/internal/cmd/globals"
	"github.com/kindergarten/rollcall/internal/cmd/output"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// NewCommand creates the groups command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		GroupID: "core",
		Short:   "List kindergarten groups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand(app))

	return cmd
}

func newListCommand(app application.Application) *cobra.Command {
	var (
		teacherID int
		skip      int
		limit     int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the groups led by a teacher",
		Long: `List the groups led by a teacher. Without --teacher the groups of the
logged-in user are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := app.API()
			if err != nil {
				return err
			}

			ctx, cancel := globals.Context(cmd, app.Logger(), "groups.list")
			defer cancel()

			if teacherID == 0 {
				user, err := api.CurrentUser(ctx)
				if err != nil {
					return err
				}
				if !user.IsTeacher() {
					return errors.NewValidationError("teacher", nil,
						fmt.Sprintf("%s is not a teacher, pass --teacher", user.Username))
				}
				teacherID = user.ID
			}

			groups, err := api.GroupsForTeacher(ctx, teacherID, skip, limit)
			if err != nil {
				return err
			}

			format := string(output.DetectFormat(app.OutputFormat(), cmd.OutOrStdout()))
			out := cmd.OutOrStdout()
			if len(groups) == 0 && constants.IsTable(format) {
				fmt.Fprintf(out, "No groups found for teacher %d.\n", teacherID)
				return nil
			}
			app.Logger().Debug().Int("teacher_id", teacherID).Int("count", len(groups)).Msg("Found groups")
			return output.FormatGroups(out, format, groups)
		},
	}

	cmd.Flags().IntVarP(&teacherID, "teacher", "t", 0, "teacher ID (default: the logged-in user)")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of groups to skip")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of groups (default 100)")

	return cmd
}

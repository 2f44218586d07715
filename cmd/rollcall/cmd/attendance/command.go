// Package attendance provides the attendance command and its subcommands.
package attendance

import (
	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/pkg/attendance"
)

// NewCommand creates the attendance command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		GroupID: "core",
		Short:   "Show and mark daily attendance",
		Long: `Show and mark the attendance of a kindergarten group for one day.

Dates use the YYYY-MM-DD layout and default to today.`,
		Example: `  rollcall attendance show --group 3
  rollcall attendance mark --group 3 --all-present --absent 12=sick_leave:fever
  rollcall attendance mark --group 3 --date 2024-05-02 --present 7,8 --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newShowCommand(app))
	cmd.AddCommand(newMarkCommand(app))

	return cmd
}

// selection holds the flags naming a group and a day.
type selection struct {
	GroupID int
	Date    string
}

func addSelectionFlags(cmd *cobra.Command) *selection {
	sel := &selection{}
	cmd.Flags().IntVarP(&sel.GroupID, "group", "g", 0, "group ID (required)")
	cmd.Flags().StringVarP(&sel.Date, "date", "d", "", "date as YYYY-MM-DD, today or yesterday (default today)")
	_ = cmd.MarkFlagRequired("group")
	return sel
}

// newReconciler creates an attendance session over the app's API.
func newReconciler(app application.Application, api application.API) *attendance.Reconciler {
	return attendance.New(api,
		attendance.WithLogger(app.Logger()),
		attendance.WithRosterLimit(api.RosterLimit()),
	)
}

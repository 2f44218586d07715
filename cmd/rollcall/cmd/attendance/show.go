package attendance

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/internal/cmd/constants"
	"github.com/kindergarten/rollcall/internal/cmd/globals"
	"github.com/kindergarten/rollcall/internal/cmd/output"
)

func newShowCommand(app application.Application) *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the roster and its attendance for a day",
		Args:  cobra.NoArgs,
	}
	sel := addSelectionFlags(cmd)
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print counts only")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		date, err := parseDate(sel.Date, app.Now())
		if err != nil {
			return err
		}

		api, err := app.API()
		if err != nil {
			return err
		}

		ctx, cancel := globals.Context(cmd, app.Logger(), "attendance.show")
		defer cancel()

		r := newReconciler(app, api)
		if err := r.Load(ctx, sel.GroupID, date); err != nil {
			return err
		}
		set := r.Snapshot()

		format := string(output.DetectFormat(app.OutputFormat(), cmd.OutOrStdout()))
		out := cmd.OutOrStdout()
		if summaryOnly {
			return output.FormatSummary(out, format, set.Summary())
		}

		if set.Len() == 0 && constants.IsTable(format) {
			fmt.Fprintf(out, "Group %d has no children.\n", sel.GroupID)
			return nil
		}
		if err := output.FormatRoster(out, format, set); err != nil {
			return err
		}

		if constants.IsTable(format) && !globals.Parse(cmd).Quiet {
			sum := set.Summary()
			fmt.Fprintf(out, "\n%s: %d children, %d present, %d absent\n",
				date, sum.Total, sum.Present, sum.Absent)
		}
		return nil
	}

	return cmd
}

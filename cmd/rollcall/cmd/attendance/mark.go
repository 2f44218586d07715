package attendance

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/internal/cmd/constants"
	"github.com/kindergarten/rollcall/internal/cmd/emoji"
	"github.com/kindergarten/rollcall/internal/cmd/globals"
	"github.com/kindergarten/rollcall/internal/cmd/output"
	"github.com/kindergarten/rollcall/pkg/attendance"
)

type markFlags struct {
	Present    []int
	Absent     []string
	AllPresent bool
	DryRun     bool
	Force      bool
}

func newMarkCommand(app application.Application) *cobra.Command {
	flags := &markFlags{}

	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Mark children present or absent and save the day",
		Long: `Mark loads the roster and the attendance already recorded for the day,
applies the requested marks and saves the whole day in one request.

--absent takes ID, ID=TYPE or ID=TYPE:REASON where TYPE is sick_leave,
vacation or other. --all-present marks everyone present first, so it can
be combined with --absent for the exceptions.`,
		Args: cobra.NoArgs,
	}
	sel := addSelectionFlags(cmd)
	cmd.Flags().IntSliceVarP(&flags.Present, "present", "p", nil, "child IDs to mark present")
	cmd.Flags().StringArrayVarP(&flags.Absent, "absent", "a", nil, "child to mark absent: ID[=TYPE[:REASON]] (repeatable)")
	cmd.Flags().BoolVar(&flags.AllPresent, "all-present", false, "mark every child present before applying --absent")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show pending changes without saving")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "save even when nothing changed")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runMark(cmd, app, sel, flags)
	}

	return cmd
}

func runMark(cmd *cobra.Command, app application.Application, sel *selection, flags *markFlags) error {
	p, err := newPlan(flags.AllPresent, flags.Present, flags.Absent)
	if err != nil {
		return err
	}
	date, err := parseDate(sel.Date, app.Now())
	if err != nil {
		return err
	}

	api, err := app.API()
	if err != nil {
		return err
	}

	ctx, cancel := globals.Context(cmd, app.Logger(), "attendance.mark")
	defer cancel()

	r := newReconciler(app, api)
	if err := r.Load(ctx, sel.GroupID, date); err != nil {
		return err
	}

	marks, err := p.marks(r.Snapshot())
	if err != nil {
		return err
	}
	for _, id := range r.Snapshot().ChildIDs() {
		if m, ok := marks[id]; ok {
			r.Edit(id, m)
		}
	}

	format := string(output.DetectFormat(app.OutputFormat(), cmd.OutOrStdout()))
	out := cmd.OutOrStdout()
	quiet := globals.Parse(cmd).Quiet
	changes := r.Snapshot().Changes()

	if flags.DryRun {
		if constants.IsTable(format) && !changes.HasChanges() {
			fmt.Fprintln(out, changes.String())
			return nil
		}
		return output.FormatChanges(out, format, changes)
	}

	if !changes.HasChanges() && !flags.Force {
		if constants.IsTable(format) {
			fmt.Fprintln(out, "Attendance is already up to date, nothing saved.")
			return nil
		}
		return output.FormatRoster(out, format, r.Snapshot())
	}

	if constants.IsTable(format) && !quiet && changes.HasChanges() {
		if err := output.FormatChanges(out, format, changes); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	result, err := r.Save(ctx, sel.GroupID, date)
	if err != nil {
		return err
	}

	set := r.Snapshot()
	if err := output.FormatSaved(out, format, set, result); err != nil {
		return err
	}
	if constants.IsTable(format) {
		reportSave(out, set, result)
	}
	return nil
}

// reportSave prints the outcome of a save below the roster table.
func reportSave(w io.Writer, set *attendance.Set, result attendance.SaveResult) {
	fmt.Fprintf(w, "\n%s Saved attendance for %d of %d children.\n", emoji.Success, result.Confirmed, set.Len())
	if len(result.Unconfirmed) > 0 {
		fmt.Fprintf(w, "%s The server did not confirm: %s. Run mark again to retry.\n",
			emoji.Warning, childNames(set, result.Unconfirmed))
	}
	if len(result.EditedDuringSave) > 0 {
		fmt.Fprintf(w, "%s Changed while saving, still pending: %s.\n",
			emoji.Pending, childNames(set, result.EditedDuringSave))
	}
}

func childNames(set *attendance.Set, ids []int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if e, ok := set.Entry(id); ok {
			names = append(names, fmt.Sprintf("%s (#%d)", e.DisplayName, id))
		} else {
			names = append(names, fmt.Sprintf("#%d", id))
		}
	}
	return strings.Join(names, ", ")
}

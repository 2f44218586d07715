package app

import (
	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/cmd/rollcall/cmd/attendance"
	"github.com/kindergarten/rollcall/cmd/rollcall/cmd/auth"
	"github.com/kindergarten/rollcall/cmd/rollcall/cmd/completion"
	"github.com/kindergarten/rollcall/cmd/rollcall/cmd/groups"
)

// NewAttendanceCommand creates the attendance command with app dependencies.
func (a *App) NewAttendanceCommand() *cobra.Command {
	return attendance.NewCommand(a)
}

// NewGroupsCommand creates the groups command with app dependencies.
func (a *App) NewGroupsCommand() *cobra.Command {
	return groups.NewCommand(a)
}

// NewAuthCommand creates the auth command with app dependencies.
func (a *App) NewAuthCommand() *cobra.Command {
	return auth.NewCommand(a)
}

// NewCompletionCommand creates the shell completion command.
func (a *App) NewCompletionCommand() *cobra.Command {
	return completion.NewCommand()
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rollcall %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/pkg/constants"
	"github.com/kindergarten/rollcall/pkg/logging"
)

// Flags holds global common flags across all commands.
type Flags struct {
	Format  string
	Quiet   bool
	Verbose bool
	NoColor bool
}

// Parse extracts global flags from the command hierarchy.
// Subcommands use it to read persistent flags defined on the root command.
func Parse(cmd *cobra.Command) *Flags {
	root := cmd
	for root.Parent() != nil {
		root = root.Parent()
	}

	format, _ := root.PersistentFlags().GetString("format")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")

	return &Flags{
		Format:  format,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
	}
}

// Context returns the command context with logger attached, tagged with the
// operation name and bounded by constants.CommandTimeout.
func Context(cmd *cobra.Command, logger *zerolog.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if logger != nil {
		ctx = logging.WithLogger(ctx, logger)
	}
	ctx = logging.WithOperation(ctx, operation)
	return context.WithTimeout(ctx, constants.CommandTimeout)
}

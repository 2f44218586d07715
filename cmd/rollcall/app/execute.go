package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kindergarten/rollcall/internal/cmd/constants"
	"github.com/kindergarten/rollcall/internal/cmd/output"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// Execute runs the rollcall CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// rootFlags holds the persistent flags until setupCommand folds them into
// the config. Binding flags straight to config fields would reset values
// loaded from files and the environment to the flag defaults.
type rootFlags struct {
	configFile string
	apiURL     string
	verbose    bool
	quiet      bool
	noColor    bool
	format     string
	logLevel   string
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "rollcall",
		Short:   "Kindergarten attendance CLI",
		Version: a.version,
		Long: `Rollcall marks daily attendance for kindergarten groups.

It loads a group's roster together with the attendance already recorded
for a day, applies your marks and saves the whole day in one request.
Log in once with "rollcall auth login"; the token is kept between runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.rollcall.yaml)")
	pf.StringVar(&flags.apiURL, "api-url", "", "kindergarten API base URL")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&flags.format, "format", "o", "", "output format: table, wide, json, yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{constants.FormatTable, constants.FormatWide, constants.FormatJSON, constants.FormatYAML},
		cobra.ShellCompDirectiveNoFileComp,
	))
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", cobra.FixedCompletions(
		[]string{"trace", "debug", "info", "warn", "error"},
		cobra.ShellCompDirectiveNoFileComp,
	))

	rootCmd.SetVersionTemplate("rollcall {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, flags *rootFlags) error {
	if flags.configFile != "" {
		config, err := LoadConfig(flags.configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	if _, err := output.ParseFormat(flags.format); err != nil {
		return errors.WrapValidation("format", err)
	}

	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.format, flags.logLevel, flags.apiURL)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("api_url", a.config.APIURL).
		Str("config_file", a.config.ConfigFile).
		Msg("Command setup complete")

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewAttendanceCommand())
	rootCmd.AddCommand(a.NewGroupsCommand())

	// Management commands
	rootCmd.AddCommand(a.NewAuthCommand())
	rootCmd.AddCommand(a.NewCompletionCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError prints a user-facing message for err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + errors.UserMessage(err) + "\n")
		os.Exit(1)
	}
}

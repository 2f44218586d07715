// Package application provides the application interface for rollcall commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            api, err := app.API()
//	            if err != nil {
//	                return err
//	            }
//	            groups, err := api.GroupsForTeacher(cmd.Context(), teacherID, 0, 0)
//	            // ... render groups
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    APIFunc: func() (application.API, error) {
//	        return fakeAPI, nil
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... test command behavior
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kindergarten/rollcall"
	"github.com/kindergarten/rollcall/internal/auth"
	"github.com/kindergarten/rollcall/pkg/attendance"
)

// API is the subset of the rollcall client that commands use.
// *rollcall.Client satisfies it.
type API interface {
	attendance.Backend

	// Login exchanges a username and password for an access token.
	Login(ctx context.Context, username, password string) (*rollcall.Token, error)

	// CurrentUser returns the account the stored token belongs to.
	CurrentUser(ctx context.Context) (*rollcall.User, error)

	// GroupsForTeacher lists the groups led by a teacher.
	GroupsForTeacher(ctx context.Context, teacherID, skip, limit int) ([]rollcall.Group, error)

	// RosterLimit returns the page size used when fetching a roster.
	RosterLimit() int
}

// Credentials persists the access token between runs.
// *auth.Store satisfies it.
type Credentials interface {
	Load() (*auth.Credentials, error)
	Save(creds *auth.Credentials) error
	Clear() error
	Path() string
}

// Application provides the application interface that commands need.
// The App struct from cmd/rollcall/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// API returns the API client, creating it lazily.
	// The client picks up the token currently in the credentials store.
	API() (API, error)

	// Credentials returns the token store.
	Credentials() Credentials

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Now returns the current time. Commands derive "today" from it.
	Now() time.Time

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

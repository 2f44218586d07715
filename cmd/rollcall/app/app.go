// Package app provides the application context and dependency management
// for the rollcall CLI: configuration, logging, the API client and the
// credentials store live here and are handed to commands through the
// application.Application interface.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kindergarten/rollcall"
	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/internal/auth"
	"github.com/kindergarten/rollcall/internal/transport"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// Compile-time interface checks.
var (
	_ application.Application = (*App)(nil)
	_ application.API         = (*rollcall.Client)(nil)
	_ application.Credentials = (*auth.Store)(nil)
)

// App represents the rollcall application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	now    func() time.Time

	// Lazily initialized
	mu          sync.RWMutex
	api         application.API
	credentials application.Credentials
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations and can be replaced
// using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		now:     time.Now,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Now returns the current time.
func (a *App) Now() time.Time {
	return a.now()
}

// Credentials returns the token store, creating it on first use.
func (a *App) Credentials() application.Credentials {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.credentials == nil {
		path := a.config.TokenFile
		if path == "" {
			path = auth.DefaultPath()
		}
		a.credentials = auth.NewStore(path)
	}
	return a.credentials
}

// API returns the API client, creating it lazily. The client reads the
// token from the credentials store on every request, so a login performed
// through the same App is picked up immediately.
func (a *App) API() (application.API, error) {
	a.mu.RLock()
	if a.api != nil {
		api := a.api
		a.mu.RUnlock()
		return api, nil
	}
	a.mu.RUnlock()

	creds := a.Credentials()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.api != nil {
		return a.api, nil
	}

	client, err := rollcall.New(a.clientOptions(creds)...)
	if err != nil {
		return nil, err
	}
	a.api = client
	return client, nil
}

// Shutdown releases application resources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.api = nil
	return nil
}

// clientOptions builds rollcall client options from the app configuration.
func (a *App) clientOptions(creds application.Credentials) []rollcall.Option {
	opts := []rollcall.Option{
		rollcall.WithBaseURL(a.config.APIURL),
		rollcall.WithHTTPTimeout(a.config.HTTPTimeout),
		rollcall.WithRosterLimit(a.config.RosterLimit),
		rollcall.WithLogger(a.logger),
		rollcall.WithUserAgent("rollcall/" + a.version),
		rollcall.WithTokenSource(tokenSource(creds)),
	}

	// The scheme is fixed when the client is built; a missing file means
	// the default bearer scheme.
	if stored, err := creds.Load(); err == nil && stored.TokenType != "" {
		opts = append(opts, rollcall.WithTokenType(stored.TokenType))
	}
	return opts
}

// tokenSource adapts a credentials store to a transport.TokenSource.
func tokenSource(creds application.Credentials) transport.TokenSource {
	if ts, ok := creds.(transport.TokenSource); ok {
		return ts
	}
	return credentialsTokenSource{creds: creds}
}

type credentialsTokenSource struct {
	creds application.Credentials
}

func (s credentialsTokenSource) Token() (string, error) {
	stored, err := s.creds.Load()
	if errors.IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return stored.AccessToken, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithAPI sets a custom API client (useful for testing).
func WithAPI(api application.API) Option {
	return func(a *App) error {
		a.api = api
		return nil
	}
}

// WithCredentials sets a custom credentials store.
func WithCredentials(creds application.Credentials) Option {
	return func(a *App) error {
		a.credentials = creds
		return nil
	}
}

// WithClock sets the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(a *App) error {
		a.now = now
		return nil
	}
}

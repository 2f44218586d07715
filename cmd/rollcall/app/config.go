package app

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/kindergarten/rollcall/internal/config"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// API configuration
	APIURL      string
	TokenFile   string
	HTTPTimeout time.Duration
	RosterLimit int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (ROLLCALL_*)
//  3. .env and .env.local files
//  4. Config file (path, or ~/.rollcall.yaml when path is empty)
//  5. Defaults
func LoadConfig(path string) (*Config, error) {
	// .env files must be loaded before viper reads the environment
	loadEnvFiles()

	v := config.New()
	if err := config.ReadFile(v, path); err != nil {
		return nil, errors.NewConfigError("file", "cannot read "+path, err)
	}

	cfg := &Config{
		Verbose: v.GetBool(config.KeyVerbose),
		Quiet:   v.GetBool(config.KeyQuiet),
		NoColor: config.GetBool(v, config.KeyNoColor),
		Format:  v.GetString(config.KeyOutput),

		ConfigFile: v.ConfigFileUsed(),

		APIURL:      v.GetString(config.KeyAPIURL),
		TokenFile:   v.GetString(config.KeyTokenFile),
		HTTPTimeout: v.GetDuration(config.KeyHTTPTimeout),
		RosterLimit: v.GetInt(config.KeyRosterLimit),

		LogLevel:  config.GetString(v, config.KeyLogLevel),
		LogFormat: config.GetString(v, config.KeyLogFormat),
		LogOutput: config.GetString(v, config.KeyLogOutput),
	}

	if cfg.RosterLimit <= 0 {
		return nil, errors.NewConfigError(config.KeyRosterLimit, "must be positive", nil)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, errors.NewConfigError(config.KeyHTTPTimeout, "must be positive", nil)
	}

	return cfg, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Empty strings leave the loaded value in place.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, apiURL string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if apiURL != "" {
		c.APIURL = apiURL
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

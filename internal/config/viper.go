// Package config wires viper for rollcall: key names, defaults, environment
// binding and config file discovery.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/kindergarten/rollcall/pkg/constants"
)

// Configuration keys. Each maps to ROLLCALL_<KEY> in the environment.
const (
	KeyAPIURL      = "api_url"
	KeyTokenFile   = "token_file"
	KeyHTTPTimeout = "http_timeout"
	KeyRosterLimit = "roster_limit"
	KeyOutput      = "output"
	KeyVerbose     = "verbose"
	KeyQuiet       = "quiet"
	KeyNoColor     = "no_color"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyLogOutput   = "log_output"
)

// DefaultAPIURL is used when no API URL is configured.
const DefaultAPIURL = "http://localhost:8000/"

// New returns a viper instance reading ROLLCALL_* environment variables
// with the defaults applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyHTTPTimeout, constants.DefaultHTTPTimeout)
	v.SetDefault(KeyRosterLimit, constants.RosterPageSize)
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")
	return v
}

// ReadFile reads the config file. An explicit path must exist; otherwise
// ~/.rollcall.yaml and ./.rollcall.yaml are tried and a missing file is
// not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName("." + constants.AppName)

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// GetString returns a string value from viper.
// It also checks the unprefixed OS variable, so conventional names such as
// NO_COLOR or LOG_LEVEL are honoured when the prefixed one is unset.
func GetString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(strings.ToUpper(key))
}

// GetBool is GetString for booleans. Any non-empty value other than
// "0" or "false" counts as true.
func GetBool(v *viper.Viper, key string) bool {
	if v.GetBool(key) {
		return true
	}
	value := strings.ToLower(strings.TrimSpace(os.Getenv(strings.ToUpper(key))))
	return value != "" && value != "0" && value != "false"
}

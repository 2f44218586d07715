package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindergarten/rollcall/internal/config"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// isolateConfig points HOME at an empty directory and clears the variables
// LoadConfig reads, so the developer's own settings do not leak in.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"ROLLCALL_API_URL", "ROLLCALL_TOKEN_FILE", "ROLLCALL_HTTP_TIMEOUT",
		"ROLLCALL_ROSTER_LIMIT", "ROLLCALL_OUTPUT", "ROLLCALL_VERBOSE",
		"ROLLCALL_QUIET", "ROLLCALL_NO_COLOR", "ROLLCALL_LOG_LEVEL",
		"ROLLCALL_LOG_FORMAT", "ROLLCALL_LOG_OUTPUT",
		"NO_COLOR", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 200, cfg.RosterLimit)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.Equal(t, "stderr", cfg.LogOutput)
	assert.Empty(t, cfg.LogLevel)
	assert.Empty(t, cfg.Format)
	assert.False(t, cfg.NoColor)
}

func TestLoadConfig_Environment(t *testing.T) {
	isolateConfig(t)
	t.Setenv("ROLLCALL_API_URL", "https://kg.example.com/")
	t.Setenv("ROLLCALL_HTTP_TIMEOUT", "5s")
	t.Setenv("ROLLCALL_ROSTER_LIMIT", "50")
	t.Setenv("ROLLCALL_OUTPUT", "json")
	t.Setenv("ROLLCALL_TOKEN_FILE", "/tmp/rollcall-token.yaml")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://kg.example.com/", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 50, cfg.RosterLimit)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "/tmp/rollcall-token.yaml", cfg.TokenFile)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_File(t *testing.T) {
	isolateConfig(t)

	path := filepath.Join(t.TempDir(), "rollcall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://file.example.com/\nroster_limit: 25\noutput: yaml\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com/", cfg.APIURL)
	assert.Equal(t, 25, cfg.RosterLimit)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, path, cfg.ConfigFile)

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("ROLLCALL_API_URL", "https://env.example.com/")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com/", cfg.APIURL)
		assert.Equal(t, 25, cfg.RosterLimit)
	})
}

func TestLoadConfig_HomeFile(t *testing.T) {
	isolateConfig(t)
	home := os.Getenv("HOME")
	require.NoError(t, os.WriteFile(filepath.Join(home, ".rollcall.yaml"), []byte("roster_limit: 40\n"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.RosterLimit)
}

func TestLoadConfig_Errors(t *testing.T) {
	isolateConfig(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		var cfgErr *errors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("non-positive roster limit", func(t *testing.T) {
		t.Setenv("ROLLCALL_ROSTER_LIMIT", "0")
		_, err := LoadConfig("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "roster_limit")
	})
}

func TestConfig_UpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml", APIURL: "http://a/", LogLevel: "warn"}

	cfg.UpdateFromFlags(true, false, true, "", "", "")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "yaml", cfg.Format, "empty flag keeps loaded value")
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg.UpdateFromFlags(false, false, false, "json", "error", "http://b/")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "http://b/", cfg.APIURL)
	assert.True(t, cfg.Verbose, "flags only switch booleans on")
}

package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.NotNil(t, cfg.Fields)
}

func TestParseTimeFormat(t *testing.T) {
	tests := map[string]string{
		"":            time.Kitchen,
		"kitchen":     time.Kitchen,
		"RFC3339":     time.RFC3339,
		"rfc3339nano": time.RFC3339Nano,
		"unix":        "",
		"2006-01-02":  "2006-01-02",
		"garbage":     time.Kitchen,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseTimeFormat(in), "input %q", in)
	}
}

func TestParseFields(t *testing.T) {
	fields := parseFields("app=rollcall, env = dev,broken")
	assert.Equal(t, map[string]any{"app": "rollcall", "env": "dev"}, fields)
	assert.Empty(t, parseFields(""))
}

func TestNewLoggerFromConfigFields(t *testing.T) {
	tl := NewTestLogger(t)
	ctx := tl.With()
	ctx = addField(ctx, "count", 3)
	ctx = addField(ctx, "ok", true)
	ctx = addField(ctx, "error", errors.New("boom"))
	logger := ctx.Logger()
	logger.Info().Msg("fields")

	tl.AssertContains(t, `"count":3`)
	tl.AssertContains(t, `"ok":true`)
	tl.AssertContains(t, `"error":"boom"`)
}

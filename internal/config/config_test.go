package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "python3", cfg.Engine.Interpreter)
	assert.Equal(t, "ocr_cli.py", cfg.Engine.Script)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Batch.Limit)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log level"},
		{"bad output format", func(c *Config) { c.Output.Format = "csv" }, "invalid output format"},
		{"empty interpreter", func(c *Config) { c.Engine.Interpreter = "" }, "engine interpreter"},
		{"empty script", func(c *Config) { c.Engine.Script = "" }, "engine script"},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"zero upload size", func(c *Config) { c.Server.MaxUploadMB = 0 }, "invalid max upload size"},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSec = 0 }, "invalid timeout"},
		{"zero batch limit", func(c *Config) { c.Batch.Limit = 0 }, "invalid batch limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestERPConfig_Enabled(t *testing.T) {
	full := ERPConfig{URL: "https://erp.example.com", Database: "atlas", Username: "svc", APIKey: "secret"}
	assert.True(t, full.Enabled())

	partial := full
	partial.APIKey = ""
	assert.False(t, partial.Enabled())

	assert.False(t, ERPConfig{}.Enabled())
}

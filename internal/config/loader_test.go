package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	return NewLoaderWith(viper.New())
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := newTestLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "python3", cfg.Engine.Interpreter)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("log_level: debug\nengine:\n  script: /opt/atlas/ocr_cli.py\nserver:\n  port: 9090\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "atlas.yaml"), content, 0o600))
	chdir(t, dir)

	cfg, err := newTestLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/atlas/ocr_cli.py", cfg.Engine.Script)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, "python3", cfg.Engine.Interpreter)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ATLAS_LOG_LEVEL", "warn")
	t.Setenv("ATLAS_ERP_API_KEY", "secret")

	cfg, err := newTestLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.ERP.APIKey)
}

func TestLoad_InvalidFileContentFailsValidation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "atlas.yaml"), []byte("log_level: bogus\n"), 0o600))
	chdir(t, dir)

	_, err := newTestLoader().Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  limit: 25\n"), 0o600))

	cfg, err := newTestLoader().LoadWithFile(path)

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Batch.Limit)
}

func TestLoadWithFile_Missing(t *testing.T) {
	_, err := newTestLoader().LoadWithFile("/nonexistent/atlas.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()

	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/atlas")
}

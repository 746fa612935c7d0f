package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Run("should return defaults when config file does not exist", func(t *testing.T) {
		loader := NewLoader(filepath.Join(t.TempDir(), "missing.json"))

		cfg, err := loader.Load()
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "127.0.0.1:8799", cfg.Gateway.Addr)
		assert.Nil(t, cfg.Packages.Enabled)
		assert.True(t, cfg.History.Enabled)
		assert.NotEmpty(t, cfg.DataDir)
		assert.NotEmpty(t, cfg.History.Path)
	})

	t.Run("should load values from config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pastrami.json")
		content := `{
			"logging": {"level": "debug"},
			"gateway": {"addr": "127.0.0.1:9000", "shared_secret": "s3cret"},
			"packages": {"enabled": ["rand", "sci"]},
			"history": {"enabled": false},
			"data_dir": "` + dir + `"
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := NewLoader(path).Load()
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "127.0.0.1:9000", cfg.Gateway.Addr)
		assert.Equal(t, "s3cret", cfg.Gateway.SharedSecret)
		assert.Equal(t, []string{"rand", "sci"}, cfg.Packages.Enabled)
		assert.False(t, cfg.History.Enabled)
		assert.Equal(t, dir, cfg.DataDir)
	})

	t.Run("should reject invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pastrami.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := NewLoader(path).Load()
		assert.Error(t, err)
	})

	t.Run("should reject unknown fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pastrami.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"loggin": {}}`), 0o644))

		_, err := NewLoader(path).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loggin")
	})

	t.Run("should reject invalid log level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pastrami.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"logging": {"level": "verbose"}}`), 0o644))

		_, err := NewLoader(path).Load()
		assert.Error(t, err)
	})

	t.Run("should keep explicit empty package list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pastrami.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"packages": {"enabled": []}}`), 0o644))

		cfg, err := NewLoader(path).Load()
		require.NoError(t, err)

		require.NotNil(t, cfg.Packages.Enabled)
		assert.Empty(t, cfg.Packages.Enabled)
	})

	t.Run("should derive history path from data dir", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pastrami.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"data_dir": "`+dir+`"}`), 0o644))

		cfg, err := NewLoader(path).Load()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "history.db"), cfg.History.Path)
	})
}

func TestValidateBytes(t *testing.T) {
	t.Run("should accept empty object", func(t *testing.T) {
		assert.NoError(t, ValidateBytes([]byte(`{}`)))
	})

	t.Run("should reject wrong field type", func(t *testing.T) {
		err := ValidateBytes([]byte(`{"gateway": {"addr": 42}}`))
		assert.Error(t, err)
	})
}

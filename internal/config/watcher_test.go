package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	writeConfig := func(t *testing.T, path, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	t.Run("should deliver reloaded config on file change", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pastrami.json")
		writeConfig(t, path, `{"packages": {"enabled": ["rand"]}}`)

		loader := NewLoader(path)
		changes := make(chan *Config, 1)

		watcher, err := NewWatcher(loader, func(cfg *Config) error {
			select {
			case changes <- cfg:
			default:
			}
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, watcher.Start())
		defer watcher.Stop()

		writeConfig(t, path, `{"packages": {"enabled": ["rand", "sci"]}}`)

		select {
		case cfg := <-changes:
			assert.Equal(t, []string{"rand", "sci"}, cfg.Packages.Enabled)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for config change")
		}
	})

	t.Run("should ignore invalid config changes", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pastrami.json")
		writeConfig(t, path, `{}`)

		loader := NewLoader(path)
		changes := make(chan *Config, 1)

		watcher, err := NewWatcher(loader, func(cfg *Config) error {
			select {
			case changes <- cfg:
			default:
			}
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, watcher.Start())
		defer watcher.Stop()

		writeConfig(t, path, `{not json`)

		select {
		case <-changes:
			t.Fatal("invalid config should not be delivered")
		case <-time.After(500 * time.Millisecond):
		}
	})

	t.Run("should ignore changes to other files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pastrami.json")
		writeConfig(t, path, `{}`)

		loader := NewLoader(path)
		changes := make(chan *Config, 1)

		watcher, err := NewWatcher(loader, func(cfg *Config) error {
			select {
			case changes <- cfg:
			default:
			}
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, watcher.Start())
		defer watcher.Stop()

		writeConfig(t, filepath.Join(dir, "other.json"), `{}`)

		select {
		case <-changes:
			t.Fatal("unrelated file should not trigger a reload")
		case <-time.After(500 * time.Millisecond):
		}
	})
}

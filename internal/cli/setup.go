package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/cmccomb/pastrami/internal/config"
	"github.com/cmccomb/pastrami/internal/logger"
	"github.com/cmccomb/pastrami/pkg/capability"
	"github.com/cmccomb/pastrami/pkg/history"
	"github.com/cmccomb/pastrami/pkg/session"
)

// loadConfig reads the config file and applies the --log-level override
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// initLogger initializes the global logger. Interactive commands log to file
// only so output does not interleave with the prompt.
func initLogger(cfg *config.Config, console bool) (*logger.Logger, error) {
	logCfg := logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: console,
		Pretty:  cfg.Logging.Pretty,
	}
	if logCfg.File == "" && !console {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		logCfg.File = filepath.Join(cfg.DataDir, "pastrami.log")
	}
	return logger.New(logCfg)
}

// newManager builds a session manager from the curated registry, restricted
// to the configured package set when one is given
func newManager(cfg *config.Config, lg zerolog.Logger) (*session.Manager, error) {
	manager, err := session.NewManager(capability.DefaultRegistry(), session.WithLogger(lg))
	if err != nil {
		return nil, err
	}
	if cfg.Packages.Enabled != nil {
		if err := manager.SetEnabledPackages(cfg.Packages.Enabled); err != nil {
			return nil, err
		}
	}
	return manager, nil
}

// openHistory opens the execution history store, or returns nil when history
// is disabled
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return history.Open(cfg.History.Path)
}
